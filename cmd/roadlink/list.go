package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every feature in a GeoJSON-lines file, one JSON object per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadMemstore(path)
			if err != nil {
				return fmt.Errorf("loading store: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			for _, f := range st.All() {
				if err := enc.Encode(f); err != nil {
					return fmt.Errorf("encoding feature %d: %w", f.ID, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "path to GeoJSON-lines file")
	cmd.MarkFlagRequired("file")
	return cmd
}
