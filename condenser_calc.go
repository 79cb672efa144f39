package main

import (
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"condenser_calc/condenser"
	"condenser_calc/property"
)

/*
Runs one condenser calculation.

	Args:
	    configPath: case file (.ini, .yaml, .yml or .json), empty for the reference coil
	    outputDir: output folder, empty to skip result files
	    asJSON: print the full result as JSON instead of the text summary
	    out: summary destination
*/
func run(configPath, outputDir string, asJSON bool, out io.Writer) error {
	c, err := LoadCase(configPath)
	if err != nil {
		return err
	}

	svc, err := property.NewTable()
	if err != nil {
		return fmt.Errorf("load property tables: %w", err)
	}

	start := time.Now()
	res, err := condenser.Calculate(c.Input, c.Options, svc)
	if err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start)).Info("calculation finished")

	rec := NewRecorder(outputDir, out)
	if asJSON {
		return rec.PrintJSON(res)
	}
	return rec.Record(c, res)
}

func newRootCmd(out io.Writer) *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "condenser_calc",
		Short:         "Air-cooled refrigerant condenser heat-transfer calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd(out))
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

func runCmd(out io.Writer) *cobra.Command {
	var (
		configPath string
		outputDir  string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Calculate h, U and zone duties for one coil",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath, outputDir, asJSON, out)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "case file (.ini, .yaml, .json); reference coil if omitted")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output folder for result_zones.csv and result.json")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer calculation requests over a websocket at /ws",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, err := property.NewTable()
			if err != nil {
				return fmt.Errorf("load property tables: %w", err)
			}
			return NewServer(addr, svc).Serve()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9000", "listen address")
	return cmd
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
