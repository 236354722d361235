package model

import "fmt"

// VariantEffect is a Sequence-Ontology-backed classification of a variant's
// predicted consequence on a transcript.
type VariantEffect string

const (
	TranscriptAblation         VariantEffect = "transcript_ablation"
	SpliceAcceptorVariant      VariantEffect = "splice_acceptor_variant"
	SpliceDonorVariant         VariantEffect = "splice_donor_variant"
	StopGained                 VariantEffect = "stop_gained"
	FrameshiftVariant          VariantEffect = "frameshift_variant"
	StopLost                   VariantEffect = "stop_lost"
	StartLost                  VariantEffect = "start_lost"
	TranscriptAmplification    VariantEffect = "transcript_amplification"
	InframeInsertion           VariantEffect = "inframe_insertion"
	InframeDeletion            VariantEffect = "inframe_deletion"
	MissenseVariant            VariantEffect = "missense_variant"
	ProteinAlteringVariant     VariantEffect = "protein_altering_variant"
	SpliceRegionVariant        VariantEffect = "splice_region_variant"
	StartRetainedVariant       VariantEffect = "start_retained_variant"
	StopRetainedVariant        VariantEffect = "stop_retained_variant"
	SynonymousVariant          VariantEffect = "synonymous_variant"
	CodingSequenceVariant      VariantEffect = "coding_sequence_variant"
	IntronVariant              VariantEffect = "intron_variant"
	FivePrimeUTRVariant        VariantEffect = "5_prime_UTR_variant"
	ThreePrimeUTRVariant       VariantEffect = "3_prime_UTR_variant"
	NonCodingTranscriptExon    VariantEffect = "non_coding_transcript_exon_variant"
	NonCodingTranscriptVariant VariantEffect = "non_coding_transcript_variant"
	UpstreamGeneVariant        VariantEffect = "upstream_gene_variant"
	DownstreamGeneVariant      VariantEffect = "downstream_gene_variant"
	IntergenicVariant          VariantEffect = "intergenic_variant"
	SequenceVariant            VariantEffect = "sequence_variant"
)

var knownEffects = map[string]VariantEffect{}

func init() {
	for _, e := range []VariantEffect{
		TranscriptAblation, SpliceAcceptorVariant, SpliceDonorVariant,
		StopGained, FrameshiftVariant, StopLost, StartLost,
		TranscriptAmplification, InframeInsertion, InframeDeletion,
		MissenseVariant, ProteinAlteringVariant, SpliceRegionVariant,
		StartRetainedVariant, StopRetainedVariant, SynonymousVariant,
		CodingSequenceVariant, IntronVariant, FivePrimeUTRVariant,
		ThreePrimeUTRVariant, NonCodingTranscriptExon,
		NonCodingTranscriptVariant, UpstreamGeneVariant,
		DownstreamGeneVariant, IntergenicVariant, SequenceVariant,
	} {
		knownEffects[string(e)] = e
	}
}

// ParseVariantEffect maps an SO term name to a VariantEffect, failing on
// names that are not part of the supported vocabulary.
func ParseVariantEffect(name string) (VariantEffect, error) {
	if e, ok := knownEffects[name]; ok {
		return e, nil
	}
	return "", fmt.Errorf("unknown variant effect %q", name)
}

func (e VariantEffect) String() string {
	return string(e)
}
