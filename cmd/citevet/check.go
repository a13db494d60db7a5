package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matsen/citevet/internal/citation"
)

var checkFlags struct {
	doi     string
	pmid    string
	url     string
	title   string
	authors []string
	year    int
	journal string
	legacy  bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify a single citation",
	Long: `Verify a single citation against Crossref, with OpenAlex fallback.

Provide a DOI, PMID, or URL for an exact lookup, or a title (optionally
with authors, year, and journal) for a fuzzy search. Verification by
identifier is conclusive; fuzzy matches carry reduced confidence.`,
	Example: `  citevet check --doi 10.1038/nature12373
  citevet check --pmid 23883930
  citevet check --title "Attention Is All You Need" --author Vaswani --year 2017`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFlags.doi, "doi", "", "DOI to verify")
	checkCmd.Flags().StringVar(&checkFlags.pmid, "pmid", "", "PubMed ID to verify")
	checkCmd.Flags().StringVar(&checkFlags.url, "url", "", "URL to extract a DOI from")
	checkCmd.Flags().StringVar(&checkFlags.title, "title", "", "Title for fuzzy search")
	checkCmd.Flags().StringArrayVar(&checkFlags.authors, "author", nil, "Author name (repeatable)")
	checkCmd.Flags().IntVar(&checkFlags.year, "year", 0, "Publication year")
	checkCmd.Flags().StringVar(&checkFlags.journal, "journal", "", "Journal name")
	checkCmd.Flags().BoolVar(&checkFlags.legacy, "legacy", false, "Emit the flat legacy result shape")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	in := citation.Input{
		DOI:     checkFlags.doi,
		PMID:    checkFlags.pmid,
		URL:     checkFlags.url,
		Title:   checkFlags.title,
		Authors: checkFlags.authors,
		Year:    checkFlags.year,
		Journal: checkFlags.journal,
	}
	if !in.HasIdentifier() && in.Title == "" {
		exitWithError(ExitError, "nothing to verify: provide --doi, --pmid, --url, or --title")
	}

	cfg := mustLoadConfig()
	engine := buildEngine(cfg)

	result := engine.Verify(context.Background(), in)

	if humanOutput {
		printResultHuman(result)
		return nil
	}
	if checkFlags.legacy {
		return outputJSON(result.Legacy())
	}
	return outputJSON(result)
}
