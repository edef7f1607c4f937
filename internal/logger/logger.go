package logger

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/internal/config"
)

// New returns a production logger for the production environment and a
// development logger everywhere else.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg != nil && cfg.IsProduction() {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
