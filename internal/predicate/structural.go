package predicate

import (
	"fmt"

	"github.com/genophen/genophen/internal/model"
)

// SoChromosomalDeletion is the SO term denoting a chromosomal deletion.
const SoChromosomalDeletion = "SO:1000029"

// structuralDeletionThreshold is the default change length at or below which
// a precise DEL counts as structural.
const structuralDeletionThreshold = -50

type isStructuralPredicate struct{}

func (isStructuralPredicate) Test(v *model.Variant) bool {
	return v.Info.IsStructural()
}

func (isStructuralPredicate) Question() string {
	return "variant is structural"
}

// IsStructural matches symbolic variants and imprecise SVs.
func IsStructural() VariantPredicate {
	return isStructuralPredicate{}
}

type isLargeImpreciseSvPredicate struct{}

func (isLargeImpreciseSvPredicate) Test(v *model.Variant) bool {
	return v.Info.SvInfo() != nil
}

func (isLargeImpreciseSvPredicate) Question() string {
	return "variant is a large SV with imprecise breakpoints"
}

// IsLargeImpreciseSv matches SVs described without exact breakpoints.
func IsLargeImpreciseSv() VariantPredicate {
	return isLargeImpreciseSvPredicate{}
}

type structuralTypePredicate struct {
	curie string
}

func (p structuralTypePredicate) Test(v *model.Variant) bool {
	sv := v.Info.SvInfo()
	return sv != nil && sv.StructuralType == p.curie
}

func (p structuralTypePredicate) Question() string {
	return fmt.Sprintf("structural type is %s", p.curie)
}

// StructuralType matches imprecise SVs of the given SO structural type.
func StructuralType(soCurie string) VariantPredicate {
	return structuralTypePredicate{curie: soCurie}
}

type structuralDeletionPredicate struct {
	threshold int
}

func (p structuralDeletionPredicate) Test(v *model.Variant) bool {
	if sv := v.Info.SvInfo(); sv != nil {
		return sv.StructuralType == SoChromosomalDeletion || sv.Class == model.ClassDEL
	}
	vc := v.Info.Coordinates()
	return vc.Class() == model.ClassDEL && vc.ChangeLength <= p.threshold
}

func (p structuralDeletionPredicate) Question() string {
	return fmt.Sprintf("structural deletion (change length <= %d)", p.threshold)
}

// IsStructuralDeletion matches chromosomal deletions: imprecise deletion
// SVs, or precise deletions removing at least 50 bases.
func IsStructuralDeletion() VariantPredicate {
	return structuralDeletionPredicate{threshold: structuralDeletionThreshold}
}

// IsStructuralDeletionWithThreshold is IsStructuralDeletion with a custom
// change-length cutoff for precise deletions.
func IsStructuralDeletionWithThreshold(threshold int) VariantPredicate {
	return structuralDeletionPredicate{threshold: threshold}
}
