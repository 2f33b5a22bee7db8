package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"edsmover/internal/mover"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Preview what the next pass would move",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			matcher, err := mover.NewMatcher(cfg.Pattern)
			if err != nil {
				return err
			}
			candidates, err := mover.New(mover.WithMatcher(matcher)).Scan(cfg.SourceDir, cfg.TargetDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintf(out, "No files matching %s in %s\n", cfg.Pattern, cfg.SourceDir)
				return nil
			}
			rows := make([][]string, 0, len(candidates))
			for _, c := range candidates {
				rows = append(rows, []string{c.Name, humanize.Bytes(uint64(c.Size)), yesNo(c.InUse), c.TargetName})
			}
			writeTable(out,
				[]column{textCol("File"), numCol("Size"), textCol("In use"), textCol("Target")},
				rows,
			)
			return nil
		},
	}
}
