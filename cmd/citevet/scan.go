package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citevet/internal/batch"
	"github.com/matsen/citevet/internal/citation"
	"github.com/matsen/citevet/internal/pdfscan"
)

var scanFlags struct {
	pages    int
	listOnly bool
	window   int
	cacheDB  string
}

var scanCmd = &cobra.Command{
	Use:   "scan <pdf>",
	Short: "Extract and verify DOIs from a PDF",
	Long: `Extract every DOI cited in a PDF and verify each one.

DOIs are collected in order of first appearance across the document.
With --list-only the DOIs are printed without verification.`,
	Example: `  citevet scan manuscript.pdf
  citevet scan manuscript.pdf --list-only`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanFlags.pages, "pages", 0, "Maximum pages to scan (0 = all)")
	scanCmd.Flags().BoolVar(&scanFlags.listOnly, "list-only", false, "Print extracted DOIs without verifying")
	scanCmd.Flags().IntVar(&scanFlags.window, "window", 0, "Concurrent lookups per window (default from config)")
	scanCmd.Flags().StringVar(&scanFlags.cacheDB, "cache-db", "", "Path to persistent result database")
	rootCmd.AddCommand(scanCmd)
}

// ScanResponse is the response for scan --list-only.
type ScanResponse struct {
	File string   `json:"file"`
	DOIs []string `json:"dois"`
}

func runScan(cmd *cobra.Command, args []string) error {
	dois, err := pdfscan.ScanFile(args[0], scanFlags.pages)
	if err != nil {
		exitWithError(ExitDataError, "scanning %s: %v", args[0], err)
	}

	if scanFlags.listOnly {
		if humanOutput {
			for _, d := range dois {
				fmt.Println(d)
			}
			return nil
		}
		return outputJSON(ScanResponse{File: args[0], DOIs: dois})
	}

	items := make([]batch.Item, len(dois))
	for i, d := range dois {
		items[i] = batch.Item{ID: d, Input: citation.Input{DOI: d}}
	}

	cfg := mustLoadConfig()
	coord, closeStore := buildCoordinator(cfg, scanFlags.cacheDB, scanFlags.window)
	if closeStore != nil {
		defer closeStore()
	}

	results := coord.CheckItems(context.Background(), items)

	if humanOutput {
		for _, r := range results {
			fmt.Printf("%s: ", r.ID)
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
