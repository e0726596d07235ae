package llm

import "go.uber.org/zap"

// CallEvent records metadata about a single model invocation.
type CallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about model calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// ZapObserver writes call events to a zap logger.
type ZapObserver struct {
	log *zap.Logger
}

func NewZapObserver(log *zap.Logger) *ZapObserver {
	return &ZapObserver{log: log.Named("llm")}
}

func (o *ZapObserver) OnCallComplete(e CallEvent) {
	fields := []zap.Field{
		zap.String("task", string(e.Task)),
		zap.String("provider", string(e.Provider)),
		zap.String("model", e.Model),
		zap.Int64("latency_ms", e.LatencyMs),
		zap.Int("attempts", e.Attempts),
	}
	if e.Success {
		o.log.Info("llm call", fields...)
		return
	}
	o.log.Warn("llm call failed", append(fields, zap.String("error_code", e.ErrorCode))...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
