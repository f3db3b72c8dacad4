// Package zerolog adapts rs/zerolog to the pairwatch logger facade.
package zerolog

import (
	"os"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
)

// New builds a zerolog-backed logger. With jsonFormat disabled the output is
// a goterm-colored console line; with it enabled, raw structured JSON.
func New(level, timeFormat string, colored, jsonFormat bool) (*Adapter, error) {
	logMode, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(logMode)

	var logger zerolog.Logger
	if jsonFormat {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{
			Out:         os.Stdout,
			NoColor:     !colored,
			TimeFormat:  timeFormat,
			FormatLevel: formatLevel,
			FormatTimestamp: func(i interface{}) string {
				return formatTimestamp(i, timeFormat)
			},
		}
		logger = zerolog.New(output).With().Timestamp().Logger()
	}

	return NewAdapter(&logger), nil
}

func formatLevel(i interface{}) string {
	level, ok := i.(string)
	if !ok {
		return term.Whitef("[UNK]")
	}

	switch level {
	case zerolog.LevelDebugValue:
		return term.Cyanf("[DBG]")
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WAR]")
	case zerolog.LevelErrorValue:
		return term.Redf("[ERR]")
	case zerolog.LevelFatalValue:
		return term.Redf("[FTL]")
	default:
		return term.Whitef("[UNK]")
	}
}

func formatTimestamp(i interface{}, timeFormat string) string {
	raw, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	ts, err := time.ParseInLocation(time.RFC3339, raw, time.Local)
	if err != nil {
		return term.Cyanf("[%s]", raw)
	}
	return term.Cyanf("[%s]", ts.In(time.Local).Format(timeFormat))
}
