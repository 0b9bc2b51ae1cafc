package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roadlink/conflate/internal/stream"
)

func newDropCmd() *cobra.Command {
	var inPath, outPath string
	var id int64

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Write a copy of a GeoJSON-lines file with one feature id removed",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadMemstore(inPath)
			if err != nil {
				return fmt.Errorf("loading store: %w", err)
			}

			if _, ok, err := st.Get(context.Background(), id); err != nil {
				return fmt.Errorf("looking up feature %d: %w", id, err)
			} else if !ok {
				return fmt.Errorf("feature %d not found in %s", id, inPath)
			}

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer out.Close()

			w := stream.NewWriter(out)
			for _, f := range st.All() {
				if f.ID == id {
					continue
				}
				if err := w.Write(f); err != nil {
					return fmt.Errorf("writing feature %d: %w", f.ID, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "file", "", "path to GeoJSON-lines file")
	cmd.Flags().StringVar(&outPath, "out", "", "output path")
	cmd.Flags().Int64Var(&id, "id", 0, "feature id to drop")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("out")
	cmd.MarkFlagRequired("id")
	return cmd
}
