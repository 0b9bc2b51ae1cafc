// Command roadlink drives the conflation engine from line-delimited
// GeoJSON files: match a new-side network against a master network, list
// a file's features, or drop one before a re-run.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roadlink/conflate/internal/config"
	"github.com/roadlink/conflate/internal/logging"
	"github.com/roadlink/conflate/internal/text"
	"github.com/roadlink/conflate/internal/types"
)

var (
	cfgFile string
	env     string

	logger  *zap.Logger
	nameCtx *types.Context
)

func main() {
	root := &cobra.Command{
		Use:   "roadlink",
		Short: "Conflate road-network segments against a master network",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(cfgFile); err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			var err error
			logger, err = logging.New(env)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}

			language := "en"
			if len(config.C.Languages) > 0 {
				language = config.C.Languages[0]
			}
			tbl, err := text.LoadAbbreviationTable(language)
			if err != nil {
				return fmt.Errorf("loading abbreviation table for %q: %w", language, err)
			}
			nameCtx = types.NewContext(config.C.Country, config.C.Region, tbl)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logger != nil {
				_ = logger.Sync()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "config/roadlink.yaml", "path to config YAML")
	root.PersistentFlags().StringVar(&env, "env", "development", "development or production logging profile")

	root.AddCommand(newConflateCmd(), newListCmd(), newDropCmd(), newServeCmd(), newReindexCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
