// Package cohortio loads cohorts from the preprocessed JSON interchange
// format. Parsing of clinical source formats (phenopackets, VCF) happens
// upstream; this package only validates and assembles the domain records.
package cohortio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/genophen/genophen/internal/model"
)

// Wire format structs. Field names follow the preprocessing pipeline output.

type cohortJSON struct {
	Patients []patientJSON `json:"patients"`
	Excluded int           `json:"excluded_count"`
}

type patientJSON struct {
	ID         string          `json:"id"`
	MetaLabel  string          `json:"meta_label,omitempty"`
	Sex        string          `json:"sex"`
	Phenotypes []phenotypeJSON `json:"phenotypes"`
	Diseases   []diseaseJSON   `json:"diseases"`
	Variants   []variantJSON   `json:"variants"`
}

type phenotypeJSON struct {
	ID       string `json:"id"`
	Observed bool   `json:"observed"`
}

type diseaseJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Observed bool   `json:"observed"`
}

type variantJSON struct {
	Coordinates *coordinatesJSON  `json:"coordinates,omitempty"`
	SvInfo      *svInfoJSON       `json:"sv_info,omitempty"`
	Annotations []annotationJSON  `json:"annotations"`
	Genotypes   map[string]string `json:"genotypes"`
}

type coordinatesJSON struct {
	Contig       string `json:"contig"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	Strand       int8   `json:"strand"`
	Ref          string `json:"ref"`
	Alt          string `json:"alt"`
	ChangeLength int    `json:"change_length"`
}

type svInfoJSON struct {
	StructuralType string `json:"structural_type"`
	Class          string `json:"variant_class"`
	GeneID         string `json:"gene_id"`
	GeneSymbol     string `json:"gene_symbol"`
}

type annotationJSON struct {
	GeneID       string   `json:"gene_id"`
	TranscriptID string   `json:"transcript_id"`
	HGVSc        string   `json:"hgvs_cdna,omitempty"`
	IsPreferred  bool     `json:"is_preferred"`
	Effects      []string `json:"effects"`
	Exons        []int    `json:"exons,omitempty"`
	ProteinID    string   `json:"protein_id,omitempty"`
	HGVSp        string   `json:"hgvs_protein,omitempty"`
	ProteinStart *int     `json:"protein_start,omitempty"`
	ProteinEnd   *int     `json:"protein_end,omitempty"`
}

// Load reads a cohort from a JSON file.
func Load(path string) (*model.Cohort, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cohort file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a cohort from JSON.
func Read(r io.Reader) (*model.Cohort, error) {
	var raw cohortJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode cohort: %w", err)
	}
	if len(raw.Patients) == 0 {
		return nil, fmt.Errorf("cohort has no patients")
	}

	patients := make([]*model.Patient, 0, len(raw.Patients))
	for i, pj := range raw.Patients {
		p, err := buildPatient(pj)
		if err != nil {
			return nil, fmt.Errorf("patient #%d (%s): %w", i, pj.ID, err)
		}
		patients = append(patients, p)
	}
	return model.NewCohort(patients, raw.Excluded), nil
}

func buildPatient(pj patientJSON) (*model.Patient, error) {
	if pj.ID == "" {
		return nil, fmt.Errorf("missing patient id")
	}
	sex, err := parseSex(pj.Sex)
	if err != nil {
		return nil, err
	}
	p := &model.Patient{ID: pj.ID, MetaLabel: pj.MetaLabel, Sex: sex}

	for _, ph := range pj.Phenotypes {
		rec, err := model.NewPhenotype(ph.ID, ph.Observed)
		if err != nil {
			return nil, err
		}
		p.Phenotypes = append(p.Phenotypes, rec)
	}
	for _, d := range pj.Diseases {
		rec, err := model.NewDisease(d.ID, d.Name, d.Observed)
		if err != nil {
			return nil, err
		}
		p.Diseases = append(p.Diseases, rec)
	}
	for i, vj := range pj.Variants {
		v, err := buildVariant(vj)
		if err != nil {
			return nil, fmt.Errorf("variant #%d: %w", i, err)
		}
		p.Variants = append(p.Variants, v)
	}
	return p, nil
}

func buildVariant(vj variantJSON) (*model.Variant, error) {
	var coords *model.VariantCoordinates
	if vj.Coordinates != nil {
		coords = &model.VariantCoordinates{
			Contig:       vj.Coordinates.Contig,
			Start:        vj.Coordinates.Start,
			End:          vj.Coordinates.End,
			Strand:       vj.Coordinates.Strand,
			Ref:          vj.Coordinates.Ref,
			Alt:          vj.Coordinates.Alt,
			ChangeLength: vj.Coordinates.ChangeLength,
		}
	}
	var svInfo *model.ImpreciseSvInfo
	if vj.SvInfo != nil {
		class, err := model.ParseVariantClass(vj.SvInfo.Class)
		if err != nil {
			return nil, err
		}
		svInfo = &model.ImpreciseSvInfo{
			StructuralType: vj.SvInfo.StructuralType,
			Class:          class,
			GeneID:         vj.SvInfo.GeneID,
			GeneSymbol:     vj.SvInfo.GeneSymbol,
		}
	}
	info, err := model.NewVariantInfo(coords, svInfo)
	if err != nil {
		return nil, err
	}

	v := &model.Variant{Info: info}
	for _, aj := range vj.Annotations {
		ann, err := buildAnnotation(aj)
		if err != nil {
			return nil, fmt.Errorf("annotation on %s: %w", aj.TranscriptID, err)
		}
		v.Annotations = append(v.Annotations, ann)
	}

	calls := make(map[string]model.Genotype, len(vj.Genotypes))
	for sample, call := range vj.Genotypes {
		g, err := parseGenotype(call)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", sample, err)
		}
		calls[sample] = g
	}
	v.Genotypes = model.NewGenotypes(calls)
	return v, nil
}

func buildAnnotation(aj annotationJSON) (model.TranscriptAnnotation, error) {
	ann := model.TranscriptAnnotation{
		GeneID:       aj.GeneID,
		TranscriptID: aj.TranscriptID,
		HGVSc:        aj.HGVSc,
		IsPreferred:  aj.IsPreferred,
		Exons:        aj.Exons,
		ProteinID:    aj.ProteinID,
		HGVSp:        aj.HGVSp,
	}
	for _, name := range aj.Effects {
		effect, err := model.ParseVariantEffect(name)
		if err != nil {
			return model.TranscriptAnnotation{}, err
		}
		ann.Effects = append(ann.Effects, effect)
	}
	if (aj.ProteinStart == nil) != (aj.ProteinEnd == nil) {
		return model.TranscriptAnnotation{}, fmt.Errorf("protein_start and protein_end must be given together")
	}
	if aj.ProteinStart != nil {
		region, err := model.NewRegion(*aj.ProteinStart, *aj.ProteinEnd)
		if err != nil {
			return model.TranscriptAnnotation{}, err
		}
		ann.ProteinEffect = &region
	}
	return ann, nil
}

func parseSex(s string) (model.Sex, error) {
	switch s {
	case "FEMALE":
		return model.Female, nil
	case "MALE":
		return model.Male, nil
	case "UNKNOWN", "":
		return model.UnknownSex, nil
	}
	return model.UnknownSex, fmt.Errorf("unknown sex %q", s)
}

func parseGenotype(s string) (model.Genotype, error) {
	switch s {
	case "0/0":
		return model.HomozygousReference, nil
	case "0/1", "1/0":
		return model.Heterozygous, nil
	case "1/1":
		return model.HomozygousAlternate, nil
	case "1":
		return model.Hemizygous, nil
	case ".", "./.":
		return model.NoCall, nil
	}
	return model.NoCall, fmt.Errorf("unknown genotype call %q", s)
}
