// Package telemetry builds the process logger and the metrics registry.
package telemetry

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/infrastructure/config"
)

// NewLogger builds a zap logger. Format "json" selects the production encoder;
// anything else gets a compact console encoder. Unknown levels fall back to info.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

// LogObserver writes every lifecycle event at debug level.
type LogObserver struct {
	log *zap.Logger
}

func NewLogObserver(log *zap.Logger) *LogObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogObserver{log: log.Named("events")}
}

func (o *LogObserver) OnEvent(ev entity.EventContext) {
	if ce := o.log.Check(zapcore.DebugLevel, ev.Kind.String()); ce != nil {
		fields := []zap.Field{
			zap.String("object", ev.Object),
			zap.Uint32("index", ev.Handle.Index()),
			zap.Uint32("generation", ev.Handle.Generation()),
		}
		if ev.Component != nil {
			fields = append(fields, zap.String("component", fmt.Sprintf("%T", ev.Component)))
		}
		ce.Write(fields...)
	}
}
