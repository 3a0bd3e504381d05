package flagutil

import (
	"log/slog"

	"github.com/jessevdk/go-flags"
)

// LogLevel extends slog.Level and implements flags.Unmarshaler.
type LogLevel struct {
	slog.Level
	set bool
}

var _ flags.Unmarshaler = (*LogLevel)(nil)

// UnmarshalFlag calls UnmarshalText for go-flags compatibility.
func (l *LogLevel) UnmarshalFlag(value string) error {
	if err := l.UnmarshalText([]byte(value)); err != nil {
		return err
	}
	l.set = true
	return nil
}

// IsSet reports whether the level came from the command line.
func (l *LogLevel) IsSet() bool {
	return l.set
}
