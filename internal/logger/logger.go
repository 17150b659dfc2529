package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.Mutex
	log *zap.Logger
)

// Init builds the process logger. Production emits JSON on stdout for
// log shipping; any other environment gets the colored console output.
func Init(env string) {
	mu.Lock()
	defer mu.Unlock()
	log = build(env)
}

func build(env string) *zap.Logger {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	return l
}

// L returns the process logger, initializing it from APP_ENV on first use.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = build(os.Getenv("APP_ENV"))
	}
	return log
}

// Sync flushes buffered entries.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		_ = log.Sync()
	}
}
