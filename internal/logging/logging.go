// Package logging builds the process-wide structured logger, the same way
// the teacher's main.go initLogger does: production JSON config when env is
// "production", console-friendly development config for any other value.
package logging

import "go.uber.org/zap"

// New builds a *zap.Logger for env ("development" or "production").
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
