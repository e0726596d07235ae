// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/curtisos/curtisos/internal/config"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger, or a colored console logger when
// the format is console or auto on a terminal.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	return build(cfg, isTerminal(os.Stderr))
}

func build(cfg config.LogConfig, tty bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var zc zap.Config
	if useConsole(cfg.Format, tty) {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}

func useConsole(format string, tty bool) bool {
	switch format {
	case config.FormatConsole:
		return true
	case config.FormatJSON:
		return false
	default:
		return tty
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
