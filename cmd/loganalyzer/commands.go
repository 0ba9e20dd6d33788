package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log-analyzer/internal/app"
	"log-analyzer/internal/shared/configs"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "./configs/configs.yml"

type rootOptions struct {
	configPath string
	file       string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	report := &app.ReportOptions{}

	rootCmd := &cobra.Command{
		Use:   "loganalyzer",
		Short: "Analyze web access logs by hour, day, month and year",
		Long: `Reads a web access log and prints how many accesses fell into each hour of the day.
Without a subcommand it runs "report".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts, report)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "YAML config file; an empty value uses defaults and LOGANALYZER_* variables only")
	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "log file relative to file_storage.root_dir (default source.file_name)")
	addReportFlags(rootCmd, report)

	rootCmd.AddCommand(
		newReportCommand(opts),
		newDumpCommand(opts),
		newGenerateCommand(opts),
		newServeCommand(opts),
	)
	return rootCmd
}

func addReportFlags(cmd *cobra.Command, report *app.ReportOptions) {
	cmd.Flags().BoolVar(&report.Summary, "summary", false, "print busiest and quietest periods after the hourly counts")
	cmd.Flags().BoolVar(&report.Chart, "chart", false, "draw the hourly counts as an ASCII chart")
}

func newReportCommand(opts *rootOptions) *cobra.Command {
	report := &app.ReportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the hourly access counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts, report)
		},
	}
	addReportFlags(cmd, report)
	return cmd
}

func runReport(cmd *cobra.Command, opts *rootOptions, report *app.ReportOptions) error {
	application, err := newApp(opts)
	if err != nil {
		return err
	}
	report.File = opts.file
	return application.Report(cmd.Context(), cmd.OutOrStdout(), *report)
}

func newDumpCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the raw lines of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := newApp(opts)
			if err != nil {
				return err
			}
			return application.Dump(cmd.Context(), cmd.OutOrStdout(), opts.file)
		},
	}
}

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	generate := &app.GenerateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic access log in text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := newApp(opts)
			if err != nil {
				return err
			}
			generate.File = opts.file
			result, err := application.Generate(cmd.Context(), *generate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s (%d bytes, compression %s)\n",
				result.Records, result.FileKey, result.Size, result.Compression)
			return nil
		},
	}
	cmd.Flags().IntVarP(&generate.Count, "count", "n", 0, "number of records (default generator.count)")
	cmd.Flags().BoolVar(&generate.Overwrite, "force", false, "replace an existing file")
	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve analyses over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := newApp(opts)
			if err != nil {
				return err
			}

			serverErr := make(chan error, 1)
			go func() {
				if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			select {
			case err, ok := <-serverErr:
				if ok {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-quit:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return application.Shutdown(ctx)
		},
	}
}

// newApp loads config and wires the application. Logs go to stderr so stdout carries
// only report output.
func newApp(opts *rootOptions) (*app.App, error) {
	cfg, err := configs.LoadConfig(configPath(opts.configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	application, err := app.New(cfg, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return application, nil
}

// configPath drops the default path when the file is absent, so the binary runs
// from any directory on defaults alone.
func configPath(path string) string {
	if path != defaultConfigPath {
		return path
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
