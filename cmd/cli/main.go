package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"dimcheck/adapters/excel"
	"dimcheck/adapters/report"
	"dimcheck/adapters/vision"
	"dimcheck/app"
	"dimcheck/domain/spec"
	"dimcheck/internal/config"
	"dimcheck/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "dimcheck",
		Short: "Cross-check product image dimensions against a reference spreadsheet",
	}

	rootCmd.AddCommand(
		newTableCmd(),
		newMatchCmd(),
		newValidateCmd(),
		newBatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rangeFlags(cmd *cobra.Command, start, end *string) {
	cmd.Flags().StringVar(start, "start-column", "", "First dimension column letter (e.g. D)")
	cmd.Flags().StringVar(end, "end-column", "", "Last dimension column letter (e.g. F)")
}

func loadReferences(sheetPath, start, end string) (*app.ReferenceService, error) {
	var rng *spec.ColumnRange
	if start != "" || end != "" {
		rng = &spec.ColumnRange{Start: start, End: end}
	}
	refs := app.NewReferenceService()
	if err := refs.LoadFrom(excel.NewSheetReader(sheetPath), filepath.Base(sheetPath), rng); err != nil {
		return nil, err
	}
	return refs, nil
}

func newTableCmd() *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "table <reference.xlsx>",
		Short: "Parse a reference sheet and print the normalized table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := loadReferences(args[0], start, end)
			if err != nil {
				return err
			}
			for _, entry := range refs.Snapshot() {
				fmt.Printf("%-40s %-20s %v\n", entry.ProductName, entry.Size, entry.ExpectedDimensions)
			}
			return nil
		},
	}
	rangeFlags(cmd, &start, &end)
	return cmd
}

func newMatchCmd() *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "match <reference.xlsx> <file-name>",
		Short: "Show the ranked reference entries matching a file name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := loadReferences(args[0], start, end)
			if err != nil {
				return err
			}
			matches := spec.FindMatches(args[1], refs.Snapshot())
			if len(matches) == 0 {
				fmt.Println("no matching reference entry")
				return nil
			}
			for i, m := range matches {
				fmt.Printf("%d. %s (%s) %v\n", i+1, m.ProductName, m.ProductSlug, m.ExpectedDimensions)
			}
			return nil
		},
	}
	rangeFlags(cmd, &start, &end)
	return cmd
}

func newValidateCmd() *cobra.Command {
	var start, end, detectedFlag string
	cmd := &cobra.Command{
		Use:   "validate <reference.xlsx> <file-name> --detected 24,12,30",
		Short: "Validate known measurements against the reference, no model call",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			detected, err := parseFloats(detectedFlag)
			if err != nil {
				return err
			}
			refs, err := loadReferences(args[0], start, end)
			if err != nil {
				return err
			}

			svc := app.NewBatchService(refs, nil, nil, 1)
			outcomes := svc.CheckFile(args[1], detected)
			return printJSON(outcomes)
		},
	}
	rangeFlags(cmd, &start, &end)
	cmd.Flags().StringVar(&detectedFlag, "detected", "", "Comma-separated detected dimensions")
	_ = cmd.MarkFlagRequired("detected")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var start, end, exportPath string
	var parallelism int
	cmd := &cobra.Command{
		Use:   "batch <reference.xlsx> <image-dir>",
		Short: "Run extraction and validation over every image in a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.RequireVision(); err != nil {
				return err
			}
			refs, err := loadReferences(args[0], start, end)
			if err != nil {
				return err
			}

			items, err := collectImages(args[1])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no images found in %s", args[1])
			}

			svc := app.NewBatchService(refs, vision.NewClient(cfg.Vision), nil, parallelism)
			result, err := svc.Run(context.Background(), items)
			if err != nil {
				return err
			}

			fmt.Print(report.RenderMarkdown(&result.Batch, result.Items))
			if exportPath != "" {
				return report.WriteWorkbook(exportPath, &result.Batch, result.Items)
			}
			return nil
		},
	}
	rangeFlags(cmd, &start, &end)
	cmd.Flags().StringVar(&exportPath, "export", "", "Write an xlsx report to this path")
	cmd.Flags().IntVar(&parallelism, "parallelism", 4, "Concurrent extraction calls")
	return cmd
}

func collectImages(dir string) ([]ports.ExtractionItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	var items []ports.ExtractionItem
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		items = append(items, ports.ExtractionItem{
			FileName:  e.Name(),
			ImagePath: filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].FileName < items[j].FileName })
	return items, nil
}

func parseFloats(csv string) ([]float64, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	var out []float64
	for _, part := range strings.Split(csv, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dimension %q: %w", part, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
