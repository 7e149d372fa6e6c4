package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Obayne/AutoFireBase-sub001/pkg/pipeline"
	"github.com/Obayne/AutoFireBase-sub001/pkg/plan"
	"github.com/Obayne/AutoFireBase-sub001/pkg/validation"
)

func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runSolve(ctx context.Context, planPath string, jsonOut bool, workers int, verbose bool) error {
	runner := pipeline.NewRunner(newLogger(verbose))
	runner.Workers = workers

	result, err := runner.RunFile(ctx, planPath)
	if errors.Is(err, pipeline.ErrInvalidPlan) {
		printValidationReport(result.Document.Validation)
		return err
	}
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Document)
	}

	printDocument(result.Document)
	if result.Document.Summary.ZonesFailed > 0 {
		return fmt.Errorf("%d zone(s) failed placement", result.Document.Summary.ZonesFailed)
	}
	return nil
}

func runVerify(ctx context.Context, planPath string) error {
	runner := pipeline.NewRunner(newLogger(false))

	result, err := runner.RunFile(ctx, planPath)
	if errors.Is(err, pipeline.ErrInvalidPlan) {
		printValidationReport(result.Document.Validation)
		return err
	}
	if err != nil {
		return err
	}

	printVerdicts(result.Document)
	if result.Document.Summary.VerdictsFail > 0 {
		return fmt.Errorf("%d compliance failure(s)", result.Document.Summary.VerdictsFail)
	}
	return nil
}

func runValidate(planPath string) error {
	fp, err := plan.Load(planPath)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	report := validation.ValidateSchema(fp)
	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}
