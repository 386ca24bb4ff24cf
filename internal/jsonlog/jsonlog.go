package jsonlog

import (
	"io"
	"os"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Define a Level type to represent the severity level for a log entry.
type Level int8

// Initialize constants which represent a specific severity level. We use the iota keyword as a shortcut to
// assign successive integer values to the constants.
const (
	LevelInfo  Level = iota // Has the value 0.
	LevelError              // Has the value 1.
	LevelFatal              // Has the value 2.
	LevelOff                // Has the value 3.
)

// Return a human-friendly string for the severity level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return ""
	}
}

// ParseLevel converts a level name as given on the command line. Unknown names fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "ERROR":
		return LevelError
	case "FATAL":
		return LevelFatal
	case "OFF":
		return LevelOff
	default:
		return LevelInfo
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		// zerolog's own FatalLevel calls os.Exit from inside the event, we do that ourselves in PrintFatal.
		return zerolog.FatalLevel
	default:
		return zerolog.Disabled
	}
}

// Logger holds the zerolog logger that the entries are written through and the minimum severity level that
// entries will be written for.
type Logger struct {
	zl       zerolog.Logger
	minLevel Level
	exit     func(code int)
}

// New returns a new Logger instance which writes log entries at or above a minimum severity level to a
// specific output destination.
func New(out io.Writer, minLevel Level) *Logger {
	zl := zerolog.New(out).
		Level(minLevel.zerolog()).
		With().
		Timestamp().
		Logger()

	return &Logger{
		zl:       zl,
		minLevel: minLevel,
		exit:     os.Exit,
	}
}

// Declare some helper methods for writing log entries at the different levels. Notice that these all accept
// a map as the second parameter which can contain any arbitrary 'properties' that you want to appear in the
// log entry.
func (l *Logger) PrintInfo(message string, properties map[string]string) {
	l.print(LevelInfo, message, properties)
}

func (l *Logger) PrintError(err error, properties map[string]string) {
	l.print(LevelError, err.Error(), properties)
}

func (l *Logger) PrintFatal(err error, properties map[string]string) {
	l.print(LevelFatal, err.Error(), properties)
	l.exit(1) // For entries at the FATAL level, we also terminate the application.
}

// Print is an internal method for writing the log entry.
func (l *Logger) print(level Level, message string, properties map[string]string) {
	// If the severity level of the log entry is below the minimum severity for the logger, then return with
	// no further action.
	if level < l.minLevel {
		return
	}

	var event *zerolog.Event
	switch level {
	case LevelInfo:
		event = l.zl.Info()
	case LevelError:
		event = l.zl.Error()
	default:
		event = l.zl.WithLevel(zerolog.FatalLevel)
	}
	if event == nil {
		return
	}

	if len(properties) > 0 {
		// Sort the keys so that entries for the same properties always serialize identically.
		keys := make([]string, 0, len(properties))
		for key := range properties {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		dict := zerolog.Dict()
		for _, key := range keys {
			dict = dict.Str(key, properties[key])
		}
		event = event.Dict("properties", dict)
	}

	// Include a stack trace for entries at the ERROR and FATAL levels.
	if level >= LevelError {
		event = event.Str("trace", string(debug.Stack()))
	}

	event.Msg(message)
}

// We also implement a Write() method on our Logger type so that it satisfies the io.Writer interface. This
// writes a log entry at the ERROR level with no additional properties, which lets us hand the logger to
// http.Server as its ErrorLog destination.
func (l *Logger) Write(message []byte) (n int, err error) {
	l.print(LevelError, strings.TrimSpace(string(message)), nil)
	return len(message), nil
}
