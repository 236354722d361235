package model

import (
	"fmt"
	"strings"
)

// VariantClass is the structural category of a variant.
type VariantClass string

const (
	ClassSNV VariantClass = "SNV"
	ClassMNV VariantClass = "MNV"
	ClassINS VariantClass = "INS"
	ClassDEL VariantClass = "DEL"
	ClassDUP VariantClass = "DUP"
	ClassINV VariantClass = "INV"
	ClassBND VariantClass = "BND"
)

// ParseVariantClass maps a class name to a VariantClass.
func ParseVariantClass(name string) (VariantClass, error) {
	switch VariantClass(strings.ToUpper(name)) {
	case ClassSNV, ClassMNV, ClassINS, ClassDEL, ClassDUP, ClassINV, ClassBND:
		return VariantClass(strings.ToUpper(name)), nil
	}
	return "", fmt.Errorf("unknown variant class %q", name)
}

// VariantCoordinates pins a sequence or symbolic variant to the genome.
// Start/End are 0-based half-open.
type VariantCoordinates struct {
	Contig string
	Start  int
	End    int
	Strand int8 // +1 or -1
	Ref    string
	Alt    string
	// ChangeLength is alt length minus ref length for sequence variants,
	// or the signed SV length for symbolic alleles.
	ChangeLength int
}

// IsStructural returns true for symbolic alternate alleles such as <DEL>.
func (vc VariantCoordinates) IsStructural() bool {
	return strings.HasPrefix(vc.Alt, "<") && strings.HasSuffix(vc.Alt, ">")
}

// maxKeyAllele is the longest allele rendered verbatim in a variant key.
const maxKeyAllele = 10

// maxKeyLen is the longest variant key rendered without collapsing alleles.
const maxKeyLen = 50

// VariantKey returns a human-readable identifier for the variant. Long
// alleles are collapsed to a "--Nbp--" placeholder when either allele
// exceeds 10bp and the full key would exceed 50 characters.
func (vc VariantCoordinates) VariantKey() string {
	key := fmt.Sprintf("%s_%d_%d_%s_%s", vc.Contig, vc.Start+1, vc.End, vc.Ref, vc.Alt)
	if len(key) <= maxKeyLen || (len(vc.Ref) <= maxKeyAllele && len(vc.Alt) <= maxKeyAllele) {
		return key
	}
	ref, alt := vc.Ref, vc.Alt
	if len(ref) > maxKeyAllele {
		ref = fmt.Sprintf("--%dbp--", len(ref))
	}
	if len(alt) > maxKeyAllele {
		alt = fmt.Sprintf("--%dbp--", len(alt))
	}
	return fmt.Sprintf("%s_%d_%d_%s_%s", vc.Contig, vc.Start+1, vc.End, ref, alt)
}

// Class infers the variant class from symbolic notation or allele lengths.
func (vc VariantCoordinates) Class() VariantClass {
	if strings.ContainsAny(vc.Alt, "[]") {
		return ClassBND
	}
	if vc.IsStructural() {
		switch strings.SplitN(strings.Trim(vc.Alt, "<>"), ":", 2)[0] {
		case "DEL":
			return ClassDEL
		case "DUP":
			return ClassDUP
		case "INS":
			return ClassINS
		case "INV":
			return ClassINV
		case "BND", "TRA":
			return ClassBND
		default:
			return ClassMNV
		}
	}
	switch {
	case len(vc.Ref) == len(vc.Alt) && len(vc.Ref) == 1:
		return ClassSNV
	case len(vc.Ref) == len(vc.Alt):
		return ClassMNV
	case len(vc.Ref) < len(vc.Alt):
		return ClassINS
	default:
		return ClassDEL
	}
}

// ImpreciseSvInfo describes a large structural variant whose breakpoints are
// unknown, as an alternative to exact coordinates.
type ImpreciseSvInfo struct {
	// StructuralType is the SO term CURIE for the SV type,
	// e.g. SO:1000029 for a chromosomal deletion.
	StructuralType string
	Class          VariantClass
	GeneID         string
	GeneSymbol     string
}

// VariantKey returns a human-readable identifier for the imprecise SV.
func (sv ImpreciseSvInfo) VariantKey() string {
	return fmt.Sprintf("%s_%s_%s", sv.StructuralType, sv.GeneID, sv.GeneSymbol)
}

// VariantInfo holds exactly one of precise coordinates or imprecise SV info.
// Use NewVariantInfo to construct; the one-of invariant is enforced there.
type VariantInfo struct {
	coordinates *VariantCoordinates
	svInfo      *ImpreciseSvInfo
}

// NewVariantInfo wraps either coordinates or SV info, rejecting inputs with
// both or neither present.
func NewVariantInfo(coordinates *VariantCoordinates, svInfo *ImpreciseSvInfo) (VariantInfo, error) {
	if (coordinates == nil) == (svInfo == nil) {
		return VariantInfo{}, fmt.Errorf("variant info requires exactly one of coordinates or imprecise SV info")
	}
	return VariantInfo{coordinates: coordinates, svInfo: svInfo}, nil
}

// Coordinates returns the exact coordinates, or nil for an imprecise SV.
func (vi VariantInfo) Coordinates() *VariantCoordinates {
	return vi.coordinates
}

// SvInfo returns the imprecise SV description, or nil for an exact variant.
func (vi VariantInfo) SvInfo() *ImpreciseSvInfo {
	return vi.svInfo
}

// HasCoordinates returns true for variants with exact breakpoints.
func (vi VariantInfo) HasCoordinates() bool {
	return vi.coordinates != nil
}

// VariantKey returns the identifier of whichever payload is present.
func (vi VariantInfo) VariantKey() string {
	if vi.coordinates != nil {
		return vi.coordinates.VariantKey()
	}
	return vi.svInfo.VariantKey()
}

// Class returns the variant class of whichever payload is present.
func (vi VariantInfo) Class() VariantClass {
	if vi.coordinates != nil {
		return vi.coordinates.Class()
	}
	return vi.svInfo.Class
}

// IsStructural returns true for symbolic variants and imprecise SVs.
func (vi VariantInfo) IsStructural() bool {
	return vi.svInfo != nil || vi.coordinates.IsStructural()
}

// TranscriptAnnotation is the predicted consequence of a variant on one
// overlapping transcript.
type TranscriptAnnotation struct {
	GeneID       string
	TranscriptID string
	HGVSc        string // optional
	IsPreferred  bool   // MANE/canonical transcript
	Effects      []VariantEffect
	// Exons lists the 1-based indices of overlapping exons; nil if unknown.
	Exons     []int
	ProteinID string // optional
	HGVSp     string // optional
	// ProteinEffect is the affected amino-acid span, 0-based half-open;
	// nil when the variant does not touch the protein.
	ProteinEffect *Region
}

// HasEffect returns true if the annotation carries the given effect.
func (ta *TranscriptAnnotation) HasEffect(effect VariantEffect) bool {
	for _, e := range ta.Effects {
		if e == effect {
			return true
		}
	}
	return false
}

// OverlapsExon returns true if the 1-based exon index is in the overlap list.
func (ta *TranscriptAnnotation) OverlapsExon(exon int) bool {
	for _, e := range ta.Exons {
		if e == exon {
			return true
		}
	}
	return false
}

// Variant combines position info, per-transcript annotations and per-sample
// genotypes. A Variant may be shared by reference across patients.
type Variant struct {
	Info        VariantInfo
	Annotations []TranscriptAnnotation
	Genotypes   Genotypes
}

// AnnotationFor returns the annotation for the given transcript, or nil.
func (v *Variant) AnnotationFor(txID string) *TranscriptAnnotation {
	for i := range v.Annotations {
		if v.Annotations[i].TranscriptID == txID {
			return &v.Annotations[i]
		}
	}
	return nil
}

// PreferredAnnotation returns the annotation on the MANE/canonical
// transcript, or nil if none is marked preferred.
func (v *Variant) PreferredAnnotation() *TranscriptAnnotation {
	for i := range v.Annotations {
		if v.Annotations[i].IsPreferred {
			return &v.Annotations[i]
		}
	}
	return nil
}

// GenotypeOf returns the zygosity call for the given sample.
func (v *Variant) GenotypeOf(sample string) (Genotype, bool) {
	return v.Genotypes.Of(sample)
}

// VariantKey returns the variant's human-readable identifier.
func (v *Variant) VariantKey() string {
	return v.Info.VariantKey()
}
