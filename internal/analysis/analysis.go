// Package analysis drives a genotype-phenotype correlation run: it selects
// phenotype terms with enough patient support, partitions the cohort into
// genotype-by-phenotype cells per term, runs exact tests on the resulting
// contingency tables and corrects the p-values for multiple testing.
package analysis

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/genophen/genophen/internal/genotype"
	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/ontology"
	"github.com/genophen/genophen/internal/phenotype"
	"github.com/genophen/genophen/internal/predicate"
	"github.com/genophen/genophen/internal/stats"
)

// MissingPolicy controls how NOT_MEASURED patients enter a term's table.
type MissingPolicy int8

const (
	// MergeNotMeasured counts NOT_MEASURED patients as "without phenotype".
	MergeNotMeasured MissingPolicy = iota
	// ExcludeNotMeasured drops NOT_MEASURED patients from the term's table
	// and from the support-fraction denominator.
	ExcludeNotMeasured
)

// Options configures one analysis invocation.
type Options struct {
	// MinTermFrequency is the minimum percentage (1-100) of patients a
	// term must be observed in to be tested. Defaults to 10.
	MinTermFrequency float64
	// Policy selects the NOT_MEASURED handling. Defaults to merging.
	Policy MissingPolicy
	// Correction names the multiple-testing procedure. Defaults to
	// Benjamini-Hochberg ("fdr_bh").
	Correction string
	// GroupSimilarTerms merges terms related by ancestry into one test,
	// represented by the member closest to the ontology root.
	GroupSimilarTerms bool
}

// DefaultMinTermFrequency is the support threshold used when none is given.
const DefaultMinTermFrequency = 10.0

func (o *Options) fillDefaults() error {
	if o.MinTermFrequency == 0 {
		o.MinTermFrequency = DefaultMinTermFrequency
	}
	if o.MinTermFrequency < 1 || o.MinTermFrequency > 100 {
		return fmt.Errorf("minimum term frequency must be between 1 and 100 percent, got %g", o.MinTermFrequency)
	}
	if o.Correction == "" {
		o.Correction = stats.FdrBH
	}
	if _, err := stats.CanonicalMethod(o.Correction); err != nil {
		return err
	}
	return nil
}

// CategoryCount is the phenotype tally for one genotype category of a term.
type CategoryCount struct {
	Category genotype.Categorization
	// WithPhenotype is the number of category patients with the term.
	WithPhenotype int
	// Total is the number of category patients counted for the term.
	Total int
}

// Percent returns the share of category patients with the phenotype.
func (c CategoryCount) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return 100 * float64(c.WithPhenotype) / float64(c.Total)
}

// Row is the result for one tested phenotype term.
type Row struct {
	TermID   string
	TermName string
	Counts   []CategoryCount
	// P is the unadjusted exact-test p-value.
	P float64
	// PAdjusted is P after multiple-testing correction.
	PAdjusted float64
}

// SkippedTerm records a term dropped for a degenerate contingency table.
type SkippedTerm struct {
	TermID string
	Reason string
}

// Result is the outcome of one analysis invocation.
type Result struct {
	// Rows are sorted ascending by adjusted p-value, then raw p-value,
	// then term CURIE.
	Rows []Row
	// Skipped lists terms with degenerate tables, in test order.
	Skipped []SkippedTerm
	// Correction is the canonical name of the applied procedure.
	Correction string
	// TermsTested is the number of simultaneous tests the correction
	// accounted for.
	TermsTested int
}

// Analyzer runs correlation analyses against a fixed ontology.
type Analyzer struct {
	hpo    ontology.Ontology
	pheno  *phenotype.Classifier
	logger *zap.Logger
}

// NewAnalyzer builds an analyzer over the given ontology.
func NewAnalyzer(hpo ontology.Ontology) *Analyzer {
	return &Analyzer{
		hpo:    hpo,
		pheno:  phenotype.NewClassifier(hpo),
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for per-term warnings.
func (a *Analyzer) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Analyze tests every sufficiently supported phenotype term for association
// with the genotype categories of clf across the cohort.
//
// Configuration and data-sufficiency problems fail the whole call; a term
// whose contingency table has a zero margin is skipped with a warning and
// the analysis continues.
func (a *Analyzer) Analyze(cohort *model.Cohort, clf genotype.Classifier, opts Options) (*Result, error) {
	if err := opts.fillDefaults(); err != nil {
		return nil, err
	}
	if cohort.Size() == 0 {
		return nil, fmt.Errorf("cohort is empty")
	}
	if err := a.checkClassifiable(cohort, clf); err != nil {
		return nil, err
	}

	terms, err := a.selectTerms(cohort, opts)
	if err != nil {
		return nil, err
	}
	if opts.GroupSimilarTerms {
		terms, err = a.groupSimilarTerms(terms)
		if err != nil {
			return nil, err
		}
	}

	result := &Result{Correction: mustCanonical(opts.Correction)}
	var pvals []float64
	for _, term := range terms {
		row, skip := a.testTerm(cohort, clf, term, opts.Policy)
		if skip != nil {
			a.logger.Warn("skipping phenotype term with degenerate contingency table",
				zap.String("term", skip.TermID),
				zap.String("reason", skip.Reason))
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		result.Rows = append(result.Rows, *row)
		pvals = append(pvals, row.P)
	}

	if len(result.Rows) == 0 {
		return nil, fmt.Errorf("all %d selected terms were skipped for degenerate contingency tables; no association could be tested", len(result.Skipped))
	}

	result.TermsTested = len(result.Rows)
	adjusted, err := stats.AdjustPValues(pvals, opts.Correction)
	if err != nil {
		return nil, err
	}
	for i := range result.Rows {
		result.Rows[i].PAdjusted = adjusted[i]
	}
	sort.SliceStable(result.Rows, func(i, j int) bool {
		ri, rj := result.Rows[i], result.Rows[j]
		if ri.PAdjusted != rj.PAdjusted {
			return ri.PAdjusted < rj.PAdjusted
		}
		if ri.P != rj.P {
			return ri.P < rj.P
		}
		return ri.TermID < rj.TermID
	})
	return result, nil
}

// variantTargeted is satisfied by classifiers driven by a variant
// predicate, e.g. the allele count family.
type variantTargeted interface {
	Target() predicate.VariantPredicate
}

// checkClassifiable fails when the classifier's target predicate matches no
// cohort variant, or when the classifier cannot place a single cohort
// member. Without the first check a dominant partition would put every
// patient in the zero-allele column and each term would be silently skipped
// for a degenerate carrier margin.
func (a *Analyzer) checkClassifiable(cohort *model.Cohort, clf genotype.Classifier) error {
	if vt, ok := clf.(variantTargeted); ok {
		target := vt.Target()
		found := false
		for _, v := range cohort.AllVariants() {
			if target.Test(v) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no cohort variant satisfies %s; the configured predicate or transcript does not occur in this cohort", target.Question())
		}
	}
	for _, p := range cohort.Members() {
		if clf.Test(p) != nil {
			return nil
		}
	}
	return fmt.Errorf("genotype classifier %q categorized no cohort member; the configured predicate or transcript may not occur in this cohort", clf.Summary())
}

// testTerm builds and tests the contingency table for one term. It returns
// either a result row or a skip record for a degenerate table.
func (a *Analyzer) testTerm(cohort *model.Cohort, clf genotype.Classifier, term string, policy MissingPolicy) (*Row, *SkippedTerm) {
	categories := clf.Categories()
	// rows: 0 = with phenotype, 1 = without; columns follow category IDs.
	table := make([][]int, 2)
	for i := range table {
		table[i] = make([]int, len(categories))
	}
	for _, p := range cohort.Members() {
		obs, ok := a.pheno.Classify(p, term)
		if !ok {
			continue
		}
		if obs == phenotype.NotMeasured && policy == ExcludeNotMeasured {
			continue
		}
		cat := clf.Test(p)
		if cat == nil {
			continue
		}
		if obs == phenotype.Observed {
			table[0][cat.ID]++
		} else {
			table[1][cat.ID]++
		}
	}

	if reason := degenerateMargin(table); reason != "" {
		return nil, &SkippedTerm{TermID: term, Reason: reason}
	}

	var p float64
	var err error
	if len(categories) == 2 {
		p = stats.FisherExact2x2(table[0][0], table[0][1], table[1][0], table[1][1])
	} else {
		p, err = stats.FisherExactMultiWay(table)
		if err != nil {
			return nil, &SkippedTerm{TermID: term, Reason: err.Error()}
		}
	}

	row := &Row{TermID: term, TermName: a.hpo.Label(term), P: p}
	for j, cat := range categories {
		row.Counts = append(row.Counts, CategoryCount{
			Category:      cat,
			WithPhenotype: table[0][j],
			Total:         table[0][j] + table[1][j],
		})
	}
	return row, nil
}

// degenerateMargin reports why the table cannot be tested, or "".
func degenerateMargin(table [][]int) string {
	for i, row := range table {
		sum := 0
		for _, n := range row {
			sum += n
		}
		if sum == 0 {
			if i == 0 {
				return "no patient with the phenotype in any genotype category"
			}
			return "no patient without the phenotype in any genotype category"
		}
	}
	for j := range table[0] {
		sum := 0
		for i := range table {
			sum += table[i][j]
		}
		if sum == 0 {
			return fmt.Sprintf("no patient in genotype category #%d", j)
		}
	}
	return ""
}

func mustCanonical(method string) string {
	m, err := stats.CanonicalMethod(method)
	if err != nil {
		// fillDefaults validated the name already.
		panic(err)
	}
	return m
}
