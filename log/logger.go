// Package log provides named, leveled loggers that share a single output
// sink and verbosity setting.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// Verbosity levels, from most to least verbose.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// Level names and their backend equivalents, indexed by Level.
var levelTable = [...]struct {
	name    string
	backend logging.Level
}{
	Debug:   {"debug", logging.DEBUG},
	Info:    {"info", logging.INFO},
	Notice:  {"notice", logging.NOTICE},
	Warning: {"warning", logging.WARNING},
	Error:   {"error", logging.ERROR},
}

// Alternative spellings accepted by ParseLevel.
var levelAliases = map[string]Level{
	"":     Notice,
	"warn": Warning,
}

func (l Level) String() string {
	if l < Debug || l > Error {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelTable[l].name
}

// Parse a level name (debug, info, notice, warning, error). Case and
// surrounding whitespace are ignored; an empty name selects Notice.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if level, ok := levelAliases[name]; ok {
		return level, nil
	}
	for level, entry := range levelTable {
		if entry.name == name {
			return Level(level), nil
		}
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

// A Logger emits messages tagged with its module name.
type Logger interface {
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Noticef(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

// Create a new named logger.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

var lineFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:-7s} [%{module}]%{color:reset} %{message}`,
)

// Output configuration shared by all loggers.
var output = struct {
	sync.Mutex
	sink  io.Writer
	level Level
}{
	sink:  os.Stdout,
	level: Notice,
}

// Redirect all loggers to sink. The current level is kept.
func SetSink(sink io.Writer) {
	output.Lock()
	defer output.Unlock()
	output.sink = sink
	install()
}

// Set the minimum level of messages that are emitted.
func SetLevel(level Level) {
	output.Lock()
	defer output.Unlock()
	output.level = level
	install()
}

// Rebuild the backend from the output configuration. Must be called with
// the output lock held.
func install() {
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(output.sink, "", 0), lineFormat)
	leveled := logging.AddModuleLevel(formatted)
	if output.level >= Debug && output.level <= Error {
		leveled.SetLevel(levelTable[output.level].backend, "")
	}
	logging.SetBackend(leveled)
}

func init() {
	output.Lock()
	install()
	output.Unlock()
}
