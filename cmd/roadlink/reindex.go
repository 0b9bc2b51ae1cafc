package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roadlink/conflate/internal/config"
	"github.com/roadlink/conflate/internal/store/searchindex"
)

// newReindexCmd rebuilds the free-text search index from a master network
// file, for the /v1/search route served by the "serve" command.
func newReindexCmd() *cobra.Command {
	var masterPath string

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the free-text search index from a master network file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.C.Meili.Host == "" {
				return fmt.Errorf("reindex: meili.host is not configured")
			}

			master, err := loadMemstore(masterPath)
			if err != nil {
				return fmt.Errorf("loading master network: %w", err)
			}

			idx, err := searchindex.New(searchindex.Config{
				Host:      config.C.Meili.Host,
				APIKey:    config.C.Meili.APIKey,
				IndexName: config.C.Meili.IndexName,
				Timeout:   30 * time.Second,
			}, logger)
			if err != nil {
				return fmt.Errorf("connecting to search index: %w", err)
			}

			features := master.All()
			if err := idx.Rebuild(context.Background(), features); err != nil {
				return fmt.Errorf("rebuilding search index: %w", err)
			}

			logger.Info("reindex complete", zap.Int("features", len(features)))
			return nil
		},
	}

	cmd.Flags().StringVar(&masterPath, "master", "", "path to master-side GeoJSON-lines file")
	cmd.MarkFlagRequired("master")

	return cmd
}
