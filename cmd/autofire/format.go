package main

import (
	"fmt"

	"github.com/Obayne/AutoFireBase-sub001/pkg/report"
	"github.com/Obayne/AutoFireBase-sub001/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printVerdicts(doc *report.Document) {
	for _, v := range doc.Verdicts {
		fmt.Printf("  [%s] %-22s %-18s %s\n", v.Status, v.Scope, v.Code, v.Detail)
	}
	fmt.Println()
	s := doc.Summary
	fmt.Printf("Compliance: %d pass, %d warn, %d fail\n",
		s.VerdictsPass, s.VerdictsWarn, s.VerdictsFail)
}

func printDocument(doc *report.Document) {
	fmt.Printf("Plan: %s  (run %s)\n", doc.PlanName, doc.RunID)
	fmt.Println()

	fmt.Printf("%-22s %-11s %-22s %10s %-10s %7s\n",
		"Zone", "Type", "Room", "Area", "State", "Devices")
	for _, z := range doc.Zones {
		marker := ""
		if z.ReviewNeeded {
			marker = " (review)"
		}
		if z.Error != "" {
			marker = " (error)"
		}
		fmt.Printf("%-22s %-11s %-22s %10.0f %-10s %7d%s\n",
			z.ID, z.Type, z.RoomName, z.AreaSqFt, z.State, len(z.DeviceIDs), marker)
	}
	fmt.Println()

	if doc.Summary.VerdictsFail > 0 || doc.Summary.VerdictsWarn > 0 {
		fmt.Println("Findings:")
		for _, v := range doc.Verdicts {
			if v.Status == "pass" {
				continue
			}
			fmt.Printf("  [%s] %s %s: %s\n", v.Status, v.Scope, v.Code, v.Detail)
		}
		fmt.Println()
	}

	s := doc.Summary
	fmt.Printf("Zones: %d (%d validated, %d exhausted, %d failed)\n",
		s.Zones, s.ZonesValidated, s.ZonesExhausted, s.ZonesFailed)
	fmt.Printf("Devices placed: %d\n", s.Devices)
	fmt.Printf("Compliance: %d pass, %d warn, %d fail\n",
		s.VerdictsPass, s.VerdictsWarn, s.VerdictsFail)
}
