package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. Production uses JSON output at info
// level, anything else the colored development encoder.
func New(environment string) (*zap.Logger, error) {
	var zapConfig zap.Config
	if environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.EncoderConfig.FunctionKey = "func"

	return zapConfig.Build(zap.AddCaller())
}
