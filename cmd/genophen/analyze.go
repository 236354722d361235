package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/genophen/genophen/internal/analysis"
	"github.com/genophen/genophen/internal/cohortio"
	"github.com/genophen/genophen/internal/genotype"
	"github.com/genophen/genophen/internal/hpostore"
	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/ontology"
	"github.com/genophen/genophen/internal/predicate"
)

type analyzeOptions struct {
	cohortPath        string
	hpoPath           string
	transcript        string
	effect            string
	mode              string
	minFrequency      float64
	correction        string
	excludeUnmeasured bool
	groupSimilar      bool
	outputFile        string
	verbose           bool
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a genotype-phenotype correlation analysis",
		Long: `Run a correlation analysis over a preprocessed cohort.

The genotype predicate is built from --effect and --transcript: dominant mode
compares patients with at least one qualifying allele against patients with
none; recessive mode classifies patients with exactly two qualifying alleles
into homozygous and compound-heterozygous groups.`,
		Example: `  genophen analyze --cohort cohort.json --hpo hp.duckdb --transcript NM_013275.6 --effect missense_variant
  genophen analyze --cohort cohort.json --hpo hp.duckdb --transcript NM_013275.6 --effect frameshift_variant --mode recessive --correction bonferroni`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd, &opts)
			return runAnalyze(opts)
		},
	}

	cmd.Flags().StringVar(&opts.cohortPath, "cohort", "", "Cohort JSON file (required)")
	cmd.Flags().StringVar(&opts.hpoPath, "hpo", "", "HPO DuckDB store (required)")
	cmd.Flags().StringVar(&opts.transcript, "transcript", "", "Analysis transcript ID (required)")
	cmd.Flags().StringVar(&opts.effect, "effect", "", "Variant effect SO term, e.g. missense_variant (required)")
	cmd.Flags().StringVar(&opts.mode, "mode", "dominant", "Genotype mode: dominant or recessive")
	cmd.Flags().Float64Var(&opts.minFrequency, "min-frequency", analysis.DefaultMinTermFrequency, "Minimum percent of patients a term must be observed in")
	cmd.Flags().StringVar(&opts.correction, "correction", "fdr_bh", "Multiple-testing correction method")
	cmd.Flags().BoolVar(&opts.excludeUnmeasured, "exclude-unmeasured", false, "Drop not-measured patients from each term's table")
	cmd.Flags().BoolVar(&opts.groupSimilar, "group-similar", false, "Merge ancestor/descendant terms into one test")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Output TSV file (default: stdout)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")
	for _, flag := range []string{"cohort", "hpo", "transcript", "effect"} {
		cobra.CheckErr(cmd.MarkFlagRequired(flag))
	}

	return cmd
}

func runAnalyze(opts analyzeOptions) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	cohort, err := cohortio.Load(opts.cohortPath)
	if err != nil {
		return err
	}
	hpo, err := loadOntology(opts.hpoPath)
	if err != nil {
		return err
	}

	effect, err := model.ParseVariantEffect(opts.effect)
	if err != nil {
		return err
	}
	target := predicate.VariantEffect(effect, opts.transcript)

	var clf genotype.Classifier
	switch strings.ToLower(opts.mode) {
	case "dominant":
		clf = genotype.AutosomalDominant(target)
	case "recessive":
		clf, err = genotype.Biallelic(target, predicate.Not(target), opts.effect, "other", nil)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown genotype mode %q (want dominant or recessive)", opts.mode)
	}

	analyzer := analysis.NewAnalyzer(hpo)
	analyzer.SetLogger(logger)
	result, err := analyzer.Analyze(cohort, clf, analysis.Options{
		MinTermFrequency:  opts.minFrequency,
		Policy:            missingPolicy(opts.excludeUnmeasured),
		Correction:        opts.correction,
		GroupSimilarTerms: opts.groupSimilar,
	})
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if opts.outputFile != "" {
		f, err := os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	return writeResult(out, clf, result)
}

// applyConfigDefaults overlays configured values onto flags the user did
// not set on the command line.
func applyConfigDefaults(cmd *cobra.Command, opts *analyzeOptions) {
	if !cmd.Flags().Changed("correction") && viper.IsSet(keyCorrection) {
		opts.correction = viper.GetString(keyCorrection)
	}
	if !cmd.Flags().Changed("min-frequency") && viper.IsSet(keyMinFrequency) {
		opts.minFrequency = viper.GetFloat64(keyMinFrequency)
	}
	if !cmd.Flags().Changed("exclude-unmeasured") && viper.IsSet(keyExcludeUnmeasured) {
		opts.excludeUnmeasured = viper.GetBool(keyExcludeUnmeasured)
	}
	if !cmd.Flags().Changed("group-similar") && viper.IsSet(keyGroupSimilar) {
		opts.groupSimilar = viper.GetBool(keyGroupSimilar)
	}
}

func missingPolicy(exclude bool) analysis.MissingPolicy {
	if exclude {
		return analysis.ExcludeNotMeasured
	}
	return analysis.MergeNotMeasured
}

func loadOntology(path string) (ontology.Ontology, error) {
	store, err := hpostore.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LoadOntology()
}

// writeResult renders the result table as TSV: per-category (count, percent)
// pairs followed by raw and adjusted p-values.
func writeResult(out io.Writer, clf genotype.Classifier, result *analysis.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := []string{"term_id", "term_name"}
	for _, cat := range clf.Categories() {
		header = append(header, cat.Name+"_count", cat.Name+"_percent")
	}
	header = append(header, "p_value", "p_adjusted")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range result.Rows {
		fields := []string{row.TermID, row.TermName}
		for _, c := range row.Counts {
			fields = append(fields,
				fmt.Sprintf("%d/%d", c.WithPhenotype, c.Total),
				fmt.Sprintf("%.1f%%", c.Percent()))
		}
		fields = append(fields,
			fmt.Sprintf("%.6g", row.P),
			fmt.Sprintf("%.6g", row.PAdjusted))
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d term(s) with degenerate tables:\n", len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", s.TermID, s.Reason)
		}
	}
	return nil
}
