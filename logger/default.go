package logger

import (
	"fmt"
	"sync/atomic"
)

var std atomic.Pointer[Engine]

func init() {
	std.Store(New(Config{}))
}

// Init replaces the default engine.
func Init(config Config) {
	std.Store(New(config))
}

// Default returns the engine used by the package-level functions.
func Default() *Engine {
	return std.Load()
}

// Print logs msg on the default engine at the last level and type.
func Print(msg string) {
	if !Enabled {
		return
	}
	Default().emit(callerSite(2), UnknownLevel, UnknownType, msg, true)
}

// Log logs msg on the default engine.
func Log(level Level, typ Type, msg string) {
	if !Enabled {
		return
	}
	Default().emit(callerSite(2), level, typ, msg, false)
}

// Logf logs a message formatted with fmt.Sprintf on the default engine.
func Logf(level Level, typ Type, format string, v ...any) {
	if !Enabled {
		return
	}
	Default().emit(callerSite(2), level, typ, fmt.Sprintf(format, v...), false)
}

// SetIgnoreType updates the ignored types of the default engine.
func SetIgnoreType(typ Type, remove bool) {
	Default().SetIgnoreType(typ, remove)
}

// SetIgnoreLevel updates the ignored levels of the default engine.
func SetIgnoreLevel(level Level, remove bool) {
	Default().SetIgnoreLevel(level, remove)
}

// SetErrorHandler replaces the error handler of the default engine.
func SetErrorHandler(handler func(string)) {
	Default().SetErrorHandler(handler)
}
