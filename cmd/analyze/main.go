package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/KodyMike/rndSequencer/internal/analysis"
	"github.com/KodyMike/rndSequencer/internal/featureflags"
	"github.com/KodyMike/rndSequencer/internal/log"
	"github.com/KodyMike/rndSequencer/internal/resultstore"
	"github.com/KodyMike/rndSequencer/internal/utils"
	"github.com/KodyMike/rndSequencer/internal/worker"
	"github.com/KodyMike/rndSequencer/pkg/report"
	"github.com/KodyMike/rndSequencer/pkg/runidentifier"
)

var (
	localCaptures = flag.String("local", "", "local capture document path (JSON array of token captures)")
	target        = flag.String("target", "", "target the tokens were captured from")
	parameter     = flag.String("parameter", "", "parameter the tokens were extracted from (cookie, header, JSON key)")
	runID         = flag.String("run-id", "", "opaque id for this capture run")
	upload        = flag.String("upload", "", "bucket path for uploading analysis results")
	exportCSV     = flag.String("export-csv", "", "local path for a CSV export of the capture list")
	listModes     = flag.Bool("list-modes", false, "prints out a list of available analysis modes")
	features      = flag.String("features", "", "override features that are enabled/disabled by default")
	listFeatures  = flag.Bool("list-features", false, "list available features that can be toggled")
	help          = flag.Bool("help", false, "print help on available options")
	analysisMode  = utils.CommaSeparatedFlags("mode", []string{"full"},
		"list of analysis modes to run, separated by commas. Use -list-modes to see available options")
)

func makeResultStores() worker.ResultStores {
	rs := worker.ResultStores{}
	if *upload != "" {
		rs.AnalysisResults = resultstore.New(*upload, resultstore.ConstructPath())
	}
	return rs
}

func printAnalysisModes() {
	fmt.Println("Available analysis modes:")
	for _, mode := range analysis.AllModes() {
		fmt.Println(mode)
	}
	fmt.Println()
}

func printFeatureFlags() {
	fmt.Printf("Feature List\n\n")
	fmt.Printf("%-30s %s\n", "Name", "Default")
	fmt.Printf("----------------------------------------\n")

	// print features in sorted order
	state := featureflags.State()
	sortedFeatures := maps.Keys(state)
	slices.Sort(sortedFeatures)

	// print Off/On rather than 'false' and 'true'
	stateStrings := map[bool]string{false: "Off", true: "On"}
	for _, feature := range sortedFeatures {
		fmt.Printf("%-30s %s\n", feature, stateStrings[state[feature]])
	}

	fmt.Println()
}

func exportCaptureCSV(path string, captures []report.TokenCapture) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, captures); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	log.Initialize(os.Getenv("LOGGER_ENV"))

	analysisMode.InitFlag()
	flag.Parse()

	if err := featureflags.Update(*features); err != nil {
		slog.Error("Failed to parse flags", "error", err)
		return
	}

	if *help {
		flag.Usage()
		return
	}

	if *listModes {
		printAnalysisModes()
		return
	}

	if *listFeatures {
		printFeatureFlags()
		return
	}

	if *localCaptures == "" {
		flag.Usage()
		return
	}

	run := runidentifier.RunIdentifier{
		Target:    *target,
		Parameter: *parameter,
		RunID:     *runID,
	}
	ctx := log.ContextWithAttrs(context.Background(),
		slog.String("target", run.Target),
		slog.String("parameter", run.Parameter))

	runMode := make(map[analysis.Mode]bool)
	for _, modeName := range analysisMode.Values {
		mode, ok := analysis.ModeFromString(strings.ToLower(modeName))
		if !ok {
			slog.ErrorContext(ctx, "Unknown analysis mode: "+modeName)
			printAnalysisModes()
			return
		}
		runMode[mode] = true
	}

	captures, err := worker.LoadLocalCaptures(*localCaptures)
	if err != nil {
		slog.ErrorContext(ctx, "Error loading captures", "error", err)
		os.Exit(1)
	}

	if *exportCSV != "" {
		if err := exportCaptureCSV(*exportCSV, captures); err != nil {
			slog.ErrorContext(ctx, "CSV export error", "error", err)
			os.Exit(1)
		}
	}

	resultStores := makeResultStores()

	for _, mode := range analysis.AllModes() {
		if !runMode[mode] {
			continue
		}
		result := worker.RunAnalysis(ctx, run, captures, mode)

		if resultStores.AnalysisResults != nil {
			filename := resultstore.MakeFilename(run, string(mode))
			if err := resultStores.AnalysisResults.SaveWithFilename(ctx, run, filename, result); err != nil {
				slog.ErrorContext(ctx, "Upload error", "error", err)
				os.Exit(1)
			}
		} else {
			if err := report.WriteJSON(os.Stdout, captures, result); err != nil {
				slog.ErrorContext(ctx, "Error encoding result", "error", err)
				os.Exit(1)
			}
		}
	}
}
