package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// serviceName campo fijo presente en cada línea de log del servicio.
const serviceName = "inventario-ledger"

// Config opciones del logger.
type Config struct {
	Env    string    // development -> consola legible; cualquier otro -> JSON por línea
	Level  string    // debug, info, warn, error (default info)
	Output io.Writer // default os.Stdout
}

// Logger logger estructurado del servicio.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger con el nombre del servicio como campo fijo.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	zl := zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	// Librerías que usan el logger global de zerolog escriben por la misma
	// salida; con Output propio (tests) el global no se toca.
	if cfg.Output == nil {
		log.Logger = zl
	}

	return &Logger{zl: zl}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug, Info, Warn, Error y Fatal delegados a zerolog.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
