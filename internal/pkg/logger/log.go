package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Messages carries encoded log entries to whoever consumes them,
// either the TUI feeder or a plain stdout printer.
var Messages = make(chan []byte, 128)

const (
	ErrorLvl   = 0
	WarningLvl = 1
	InfoLvl    = 2
	KeysLvl    = 3
	AnalogLvl  = 4

	DebugLvl = 256
)

var (
	Error   = zap.Int("level", ErrorLvl)
	Warning = zap.Int("level", WarningLvl)
	Info    = zap.Int("level", InfoLvl)
	Keys    = zap.Int("level", KeysLvl)
	Analog  = zap.Int("level", AnalogLvl)

	Debug = zap.Int("level", DebugLvl)
)

type chanWriter struct {
	sync.Mutex
}

func (w *chanWriter) Write(p []byte) (n int, err error) {
	w.Lock()
	var entry = make([]byte, len(p))
	copy(entry, p)
	Messages <- entry
	w.Unlock()
	return len(p), nil
}

func (w *chanWriter) Sync() error {
	return nil
}

func GetLogger() *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.SkipLineEnding = true
	cfg.EncodeTime = zapcore.EpochNanosTimeEncoder
	cfg.LevelKey = ""
	encoder := zapcore.NewJSONEncoder(cfg)
	writer := zapcore.Lock(&chanWriter{})

	return zap.New(
		zapcore.NewCore(encoder, writer, zap.DebugLevel),
		zap.AddCaller(),
	)
}
