package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Obayne/AutoFireBase-sub001/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "autofire",
		Short: "Fire alarm device placement and compliance engine",
	}

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	var jsonOut bool
	var workers int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "solve [plan-file]",
		Short: "Classify zones, place devices, and verify compliance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), args[0], jsonOut, workers, verbose)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the full report document as JSON")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "zones placed concurrently (0 = plan tunable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a floor plan without placing devices",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [plan-file]",
		Short: "Solve a plan and report only the compliance findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [plan-file]",
		Short: "Serve solve results over HTTP for the drawing frontend",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(args[0], port, log.Default())
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
