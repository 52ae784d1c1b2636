package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger for mode ("prod"/"production" or anything else for
// development) and installs it as the global logger used via zap.S().
func New(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	case "quiet":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	// Reports go to stdout; keep logs off it.
	cfg.OutputPaths = []string{"stderr"}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(zapLogger)
	return zapLogger.Sugar(), nil
}
