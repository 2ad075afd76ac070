package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type LogStatus int

const (
	VERBOSE LogStatus = iota
	DEBUG
	INFO
	SUCCESS
	NEW
	REMOVE
	WARNING
	ERROR
)

// styles is indexed by LogStatus.
var styles = [...]struct {
	name  string
	label string
	color *color.Color
}{
	VERBOSE: {"verbose", "V", color.New(color.FgWhite, color.Italic)},
	DEBUG:   {"debug", "D", color.New(color.FgWhite, color.Italic)},
	INFO:    {"info", "I", color.New(color.FgWhite)},
	SUCCESS: {"success", "✓", color.New(color.FgHiGreen)},
	NEW:     {"new", "+", color.New(color.FgGreen, color.Italic)},
	REMOVE:  {"remove", "-", color.New(color.FgYellow, color.Italic)},
	WARNING: {"warning", "!", color.New(color.FgYellow, color.Underline)},
	ERROR:   {"error", "!!", color.New(color.FgHiRed, color.Bold)},
}

func (e LogStatus) valid() bool { return e >= 0 && int(e) < len(styles) }

func (e LogStatus) String() string {
	if !e.valid() {
		return "?"
	}
	return styles[e].label
}

func (e LogStatus) Color() *color.Color {
	if !e.valid() {
		return styles[ERROR].color
	}
	return styles[e].color
}

// ParseLevel maps a configuration string such as "debug" or "WARNING" to
// its LogStatus.
func ParseLevel(level string) (LogStatus, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warn" {
		level = "warning"
	}
	for status, style := range styles {
		if style.name == level {
			return LogStatus(status), nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q", level)
}

type Logger interface {
	Emit(LogStatus, string, ...interface{})
}

type loggerImpl struct {
	name string
}

func (l *loggerImpl) Emit(status LogStatus, message string, interpolations ...interface{}) {
	Log.Emit(status, l.name, message, interpolations...)
}

type LoggerManager interface {
	GetLogger(string) Logger
	Emit(LogStatus, string, string, ...interface{})
	SetLevel(LogStatus)
	SetOutput(io.Writer)
}

var Log LoggerManager = &loggerMgr{
	min: INFO,
	out: os.Stderr,
}

type loggerMgr struct {
	mu     sync.Mutex
	offset int
	min    LogStatus
	out    io.Writer
}

func (l *loggerMgr) GetLogger(name string) Logger {
	return &loggerImpl{name: name}
}

func (l *loggerMgr) Emit(status LogStatus, name string, message string, interpolations ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if status < l.min {
		return
	}

	if len(name) > l.offset {
		l.offset = len(name)
	}
	text := strings.TrimSuffix(fmt.Sprintf(message, interpolations...), "\n")
	_, _ = status.Color().Fprintf(l.out, "[%s] %-*s(%s) %s\n", name, l.offset-len(name), "", status, text)
}

func (l *loggerMgr) SetLevel(status LogStatus) {
	l.mu.Lock()
	l.min = status
	l.mu.Unlock()
}

func (l *loggerMgr) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	l.mu.Lock()
	l.out = w
	l.mu.Unlock()
}

func Get(name string) Logger {
	return Log.GetLogger(name)
}

func SetLevel(status LogStatus) { Log.SetLevel(status) }

func SetOutput(w io.Writer) { Log.SetOutput(w) }
