package predicate

import (
	"fmt"

	"github.com/genophen/genophen/internal/model"
)

type variantEffectPredicate struct {
	effect model.VariantEffect
	txID   string
}

func (p variantEffectPredicate) Test(v *model.Variant) bool {
	ann := v.AnnotationFor(p.txID)
	return ann != nil && ann.HasEffect(p.effect)
}

func (p variantEffectPredicate) Question() string {
	return fmt.Sprintf("%s on %s", p.effect, p.txID)
}

// VariantEffect matches variants annotated with the given effect on the
// given transcript.
func VariantEffect(effect model.VariantEffect, txID string) VariantPredicate {
	return variantEffectPredicate{effect: effect, txID: txID}
}

type variantKeyPredicate struct {
	key string
}

func (p variantKeyPredicate) Test(v *model.Variant) bool {
	return v.VariantKey() == p.key
}

func (p variantKeyPredicate) Question() string {
	return fmt.Sprintf("variant is %s", p.key)
}

// VariantKey matches the variant with the exact given key.
func VariantKey(key string) VariantPredicate {
	return variantKeyPredicate{key: key}
}

type exonPredicate struct {
	exon int
	txID string
}

func (p exonPredicate) Test(v *model.Variant) bool {
	ann := v.AnnotationFor(p.txID)
	return ann != nil && ann.OverlapsExon(p.exon)
}

func (p exonPredicate) Question() string {
	return fmt.Sprintf("overlaps exon %d of %s", p.exon, p.txID)
}

// Exon matches variants overlapping the 1-based exon of the transcript.
// The exon index is validated here, not at test time.
func Exon(exon int, txID string) (VariantPredicate, error) {
	if exon < 1 {
		return nil, fmt.Errorf("exon index must be a positive integer, got %d", exon)
	}
	return exonPredicate{exon: exon, txID: txID}, nil
}

type transcriptPredicate struct {
	txID string
}

func (p transcriptPredicate) Test(v *model.Variant) bool {
	return v.AnnotationFor(p.txID) != nil
}

func (p transcriptPredicate) Question() string {
	return fmt.Sprintf("affects %s", p.txID)
}

// Transcript matches variants with any annotation on the transcript.
func Transcript(txID string) VariantPredicate {
	return transcriptPredicate{txID: txID}
}

type genePredicate struct {
	symbol string
}

func (p genePredicate) Test(v *model.Variant) bool {
	for i := range v.Annotations {
		if v.Annotations[i].GeneID == p.symbol {
			return true
		}
	}
	if sv := v.Info.SvInfo(); sv != nil {
		return sv.GeneSymbol == p.symbol || sv.GeneID == p.symbol
	}
	return false
}

func (p genePredicate) Question() string {
	return fmt.Sprintf("affects %s", p.symbol)
}

// Gene matches variants annotated on the gene, including imprecise SVs that
// name the gene directly.
func Gene(symbol string) VariantPredicate {
	return genePredicate{symbol: symbol}
}

type variantClassPredicate struct {
	class model.VariantClass
}

func (p variantClassPredicate) Test(v *model.Variant) bool {
	return v.Info.Class() == p.class
}

func (p variantClassPredicate) Question() string {
	return fmt.Sprintf("variant class is %s", p.class)
}

// Class matches variants of the given variant class.
func Class(class model.VariantClass) VariantPredicate {
	return variantClassPredicate{class: class}
}

// CmpOp is a comparison operator for change-length predicates.
type CmpOp int8

const (
	Lt CmpOp = iota
	Le
	Eq
	Ne
	Ge
	Gt
)

var cmpOpNames = map[CmpOp]string{Lt: "<", Le: "<=", Eq: "==", Ne: "!=", Ge: ">=", Gt: ">"}

// ParseCmpOp maps an operator literal to a CmpOp.
func ParseCmpOp(s string) (CmpOp, error) {
	for op, name := range cmpOpNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown comparison operator %q", s)
}

func (op CmpOp) String() string {
	return cmpOpNames[op]
}

func (op CmpOp) apply(a, b int) bool {
	switch op {
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Eq:
		return a == b
	case Ne:
		return a != b
	case Ge:
		return a >= b
	default:
		return a > b
	}
}

type changeLengthPredicate struct {
	op CmpOp
	n  int
}

func (p changeLengthPredicate) Test(v *model.Variant) bool {
	vc := v.Info.Coordinates()
	if vc == nil {
		// The change length of an imprecise SV is unknown, so no
		// comparison can hold, not even "!=".
		return false
	}
	return p.op.apply(vc.ChangeLength, p.n)
}

func (p changeLengthPredicate) Question() string {
	return fmt.Sprintf("change length %s %d", p.op, p.n)
}

// ChangeLength matches variants whose change length satisfies the
// comparison. Imprecise SVs never match, regardless of operator.
func ChangeLength(op CmpOp, n int) (VariantPredicate, error) {
	if _, ok := cmpOpNames[op]; !ok {
		return nil, fmt.Errorf("unknown comparison operator %d", op)
	}
	return changeLengthPredicate{op: op, n: n}, nil
}
