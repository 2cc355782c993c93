package patch

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologAdapter wraps a zerolog.Logger to implement the Logger interface.
//
//	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
//	logger := patch.NewZerologAdapter(zerolog.New(output).With().Timestamp().Logger())
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new ZerologAdapter.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Debug implements Logger.
func (z *ZerologAdapter) Debug(msg string, attrs ...any) {
	withAttrs(z.logger.Debug(), attrs).Msg(msg)
}

// Info implements Logger.
func (z *ZerologAdapter) Info(msg string, attrs ...any) {
	withAttrs(z.logger.Info(), attrs).Msg(msg)
}

// Warn implements Logger.
func (z *ZerologAdapter) Warn(msg string, attrs ...any) {
	withAttrs(z.logger.Warn(), attrs).Msg(msg)
}

// Error implements Logger.
func (z *ZerologAdapter) Error(msg string, attrs ...any) {
	withAttrs(z.logger.Error(), attrs).Msg(msg)
}

// With implements Logger.
func (z *ZerologAdapter) With(attrs ...any) Logger {
	zc := z.logger.With()
	for i := 0; i+1 < len(attrs); i += 2 {
		zc = zc.Interface(fmt.Sprint(attrs[i]), attrs[i+1])
	}
	return &ZerologAdapter{logger: zc.Logger()}
}

// withAttrs adds key-value pairs to e. A trailing key without a value is
// ignored.
func withAttrs(e *zerolog.Event, attrs []any) *zerolog.Event {
	for i := 0; i+1 < len(attrs); i += 2 {
		e = e.Interface(fmt.Sprint(attrs[i]), attrs[i+1])
	}
	return e
}

// Ensure ZerologAdapter implements Logger at compile time.
var _ Logger = (*ZerologAdapter)(nil)
