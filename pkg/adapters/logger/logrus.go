package logger

import (
	"fmt"
	"io"

	"github.com/ideamans/go-l10n"
	"github.com/sirupsen/logrus"
	"github.com/user/ffpp/pkg/ports"
)

// Format selects the logrus formatter.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// LogrusLogger writes structured log entries through logrus.
// The component is carried as a field instead of a prefix.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrus creates a logrus-backed logger writing to out.
func NewLogrus(level ports.LogLevel, format Format, out io.Writer) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrusLevel(level))
	if format == FormatJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

func logrusLevel(level ports.LogLevel) logrus.Level {
	switch level {
	case ports.LevelDebug:
		return logrus.DebugLevel
	case ports.LevelInfo:
		return logrus.InfoLevel
	case ports.LevelWarn:
		return logrus.WarnLevel
	case ports.LevelError:
		return logrus.ErrorLevel
	default:
		// quiet: nothing the ports API emits reaches panic level
		return logrus.PanicLevel
	}
}

func (l *LogrusLogger) Debug(msg string, args ...interface{}) {
	if l.entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
		l.entry.Debug(l10n.F(msg, args...))
	}
}

func (l *LogrusLogger) Info(msg string, args ...interface{}) {
	if l.entry.Logger.IsLevelEnabled(logrus.InfoLevel) {
		l.entry.Info(l10n.F(msg, args...))
	}
}

func (l *LogrusLogger) Warn(msg string, args ...interface{}) {
	if l.entry.Logger.IsLevelEnabled(logrus.WarnLevel) {
		l.entry.Warn(l10n.F(msg, args...))
	}
}

func (l *LogrusLogger) Error(msg string, args ...interface{}) {
	if l.entry.Logger.IsLevelEnabled(logrus.ErrorLevel) {
		l.entry.Error(l10n.F(msg, args...))
	}
}

// WithComponent returns a logger that tags entries with component.
func (l *LogrusLogger) WithComponent(component string) ports.Logger {
	return &LogrusLogger{entry: l.entry.WithField("component", component)}
}

// New picks an implementation by format name: "console" (default), "text"
// or "json". Quiet wins over everything.
func New(level ports.LogLevel, format string, quiet bool, out io.Writer) (ports.Logger, error) {
	if quiet || level == ports.LevelQuiet {
		return NewNoop(), nil
	}
	switch Format(format) {
	case "", "console":
		return NewConsole(level), nil
	case FormatText, FormatJSON:
		return NewLogrus(level, Format(format), out), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

var (
	_ ports.Logger = (*LogrusLogger)(nil)
	_ ports.Logger = (*ConsoleLogger)(nil)
	_ ports.Logger = (*NoopLogger)(nil)
)
