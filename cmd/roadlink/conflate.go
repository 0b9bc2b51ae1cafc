package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roadlink/conflate/internal/conflate"
	"github.com/roadlink/conflate/internal/store"
)

func newConflateCmd() *cobra.Command {
	var masterPath, newerPath, outPath string
	var bufferMeters float64
	var strict bool
	var workers int

	cmd := &cobra.Command{
		Use:   "conflate",
		Short: "Match every feature in --newer against --master",
		RunE: func(cmd *cobra.Command, args []string) error {
			master, err := loadMemstore(masterPath)
			if err != nil {
				return fmt.Errorf("loading master network: %w", err)
			}
			newer, err := loadMemstore(newerPath)
			if err != nil {
				return fmt.Errorf("loading new network: %w", err)
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			enc := json.NewEncoder(out)

			eng := conflate.New(master, newer, nil, logger, conflate.Options{
				BufferMeters: bufferMeters,
				Strict:       strict,
				Workers:      workers,
			})

			var matched, unmatched int
			err = eng.Run(context.Background(), func(d store.ConflationDecision) error {
				if d.Matched {
					matched++
				} else {
					unmatched++
				}
				return enc.Encode(d)
			})
			if err != nil {
				return fmt.Errorf("running conflation: %w", err)
			}

			logger.Info("conflation complete",
				zap.Int("matched", matched),
				zap.Int("unmatched", unmatched))
			return nil
		},
	}

	cmd.Flags().StringVar(&masterPath, "master", "", "path to master-side GeoJSON-lines file")
	cmd.Flags().StringVar(&newerPath, "newer", "", "path to new-side GeoJSON-lines file")
	cmd.Flags().StringVar(&outPath, "out", "", "decisions output path (default stdout)")
	cmd.Flags().Float64Var(&bufferMeters, "buffer-meters", 25.0, "candidate search radius in meters")
	cmd.Flags().BoolVar(&strict, "strict", false, "enable the stricter cardinal/way-type match gate")
	cmd.Flags().IntVar(&workers, "workers", 8, "worker pool size")
	cmd.MarkFlagRequired("master")
	cmd.MarkFlagRequired("newer")

	return cmd
}
