package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"edsmover/internal/fileutil"
	"edsmover/internal/journal"
)

func newHistoryCommand() *cobra.Command {
	var journalPath string
	var limit int

	cmd := &cobra.Command{
		Use:         "history",
		Short:       "Show moves recorded in a journal",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(journalPath)
			if path == "" {
				return errors.New("--journal is required")
			}
			if !fileutil.Exists(path) {
				return fmt.Errorf("journal %s does not exist", path)
			}
			store, err := journal.Open(path)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No moves recorded")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10),
					e.MovedAt.Local().Format(time.DateTime),
					e.SourcePath,
					e.TargetPath,
					humanize.Bytes(uint64(e.SizeBytes)),
					string(e.Method),
				})
			}
			writeTable(out,
				[]column{numCol("ID"), textCol("Moved"), textCol("Source"), textCol("Target"), numCol("Size"), textCol("Method")},
				rows,
			)
			total, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Showing %d of %d recorded move(s)\n", len(entries), total)
			return nil
		},
	}
	cmd.Flags().StringVar(&journalPath, "journal", "", "Journal database path")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of moves to show (newest first)")
	return cmd
}
