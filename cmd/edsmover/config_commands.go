package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"edsmover/internal/config"
	"edsmover/internal/preflight"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigCheckCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "init [PATH]",
		Short:       "Write a sample paths.txt",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.DefaultPath
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				target = strings.TrimSpace(args[0])
			}

			if dir := filepath.Dir(target); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create config directory %q: %w", dir, err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintf(out, "Edit %s, %s and %s before starting edsmover.\n",
				config.KeySourcePath, config.KeyTargetPath, config.KeyCheckInterval)
			return nil
		},
	}
}

func newConfigCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and show the resolved values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration valid: %s\n", cfg.Path)
			status := newStatusPrinter(out)
			for _, result := range preflight.RunAll(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				status.line(result.Name, kind, result.Detail)
			}
			writeTable(out,
				[]column{textCol("Setting"), textCol("Value")},
				[][]string{
					{config.KeySourcePath, cfg.SourceDir},
					{config.KeyTargetPath, cfg.TargetDir},
					{config.KeyCheckInterval, cfg.CheckInterval.String()},
					{"pattern", cfg.Pattern},
					{"logging.level", cfg.Logging.Level},
					{"logging.format", cfg.Logging.Format},
				},
			)
			return nil
		},
	}
}
