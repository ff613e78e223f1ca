package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled logger shared by the whole service.
// Level is set once at startup from LOG_LEVEL (debug|info|warn|error|fatal)
// and defaults to info.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu        sync.RWMutex
	out             = log.New(os.Stdout, "", 0)
	min Level       = LevelInfo
)

// Init sets the global log level. Unrecognised values fall back to info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		min = LevelDebug
	case "warn", "warning":
		min = LevelWarn
	case "error":
		min = LevelError
	case "fatal":
		min = LevelFatal
	default:
		min = LevelInfo
	}
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= min
}

func emit(lvl string, format string, v ...interface{}) {
	prefix := fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(lvl))
	out.Printf(prefix+format, v...)
}

func Debugf(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		emit("debug", format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		emit("info", format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		emit("warn", format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if enabled(LevelError) {
		emit("error", format, v...)
	}
}

func Fatalf(format string, v ...interface{}) {
	emit("fatal", format, v...)
	os.Exit(1)
}

// Single-string convenience variants.
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString reports the current level as text (used in startup logs).
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch min {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
