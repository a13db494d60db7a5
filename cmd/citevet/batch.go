package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citevet/internal/batch"
)

var batchFlags struct {
	window  int
	cacheDB string
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Verify a batch of citations from JSONL",
	Long: `Verify citations read as JSONL from a file or stdin.

Each input line is one citation object with optional "id" and "context"
fields alongside the citation fields (doi, pmid, url, title, authors,
year, journal). One result line is written per input line, in input
order. Lookups run concurrently within a bounded window; duplicate
identifiers within a batch are verified once.`,
	Example: `  citevet batch references.jsonl
  cat refs.jsonl | citevet batch --window 10 --cache-db ~/.cache/citevet.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchFlags.window, "window", 0, "Concurrent lookups per window (default from config)")
	batchCmd.Flags().StringVar(&batchFlags.cacheDB, "cache-db", "", "Path to persistent result database")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitWithError(ExitDataError, "opening input: %v", err)
		}
		defer f.Close()
		in = f
	}

	items, err := readItems(in)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	cfg := mustLoadConfig()
	coord, closeStore := buildCoordinator(cfg, batchFlags.cacheDB, batchFlags.window)
	if closeStore != nil {
		defer closeStore()
	}

	results := coord.CheckItems(context.Background(), items)

	if humanOutput {
		for _, r := range results {
			if r.ID != "" {
				fmt.Printf("%s: ", r.ID)
			}
			printResultHuman(r.Result)
		}
		return nil
	}

	for _, r := range results {
		if err := outputJSONCompact(r); err != nil {
			return err
		}
	}
	return nil
}

// readItems parses one batch item per non-blank JSONL line. Items without
// an explicit id are numbered by line position.
func readItems(r io.Reader) ([]batch.Item, error) {
	var items []batch.Item

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var item batch.Item
		if err := json.Unmarshal([]byte(text), &item); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("line-%d", line)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return items, nil
}
