package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"
)

// Dependency injection point for testing output.
var outStdout io.Writer = os.Stdout

// Engine filters, formats and writes log records to the console.
// The zero value is not usable; call New.
//
// A single mutex guards the configuration and the console write, so records
// from concurrent goroutines never interleave. The error handler runs after
// the lock is released, on the calling goroutine.
type Engine struct {
	mu sync.Mutex

	out     io.Writer
	journal bool
	now     func() time.Time

	format        compiledFormat
	ignoredLevels map[Level]struct{}
	ignoredTypes  map[Type]struct{}
	styles        map[Level]lipgloss.Style

	// lastLevel and lastType feed Print. Nothing updates them, so Print
	// always logs at UnknownLevel with UnknownType.
	lastLevel Level
	lastType  Type

	errorHandler func(string)
	limiter      *rate.Limiter
}

// New creates an engine writing to config.Output, or stdout when unset.
func New(config Config) *Engine {
	out := config.Output
	if out == nil {
		out = outStdout
	}
	e := &Engine{
		out:       out,
		now:       time.Now,
		lastLevel: UnknownLevel,
		lastType:  UnknownType,
	}
	e.journal = journalStream(e.out)
	e.apply(config)
	return e
}

// Apply replaces the format, ignore-sets, colorization and handler rate.
// The error handler is replaced only when config carries one.
func (e *Engine) Apply(config Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(config)
}

func (e *Engine) apply(config Config) {
	e.format = compileFormat(resolveFormat(config.Format))
	e.ignoredLevels = resolveIgnoredLevels(config.IgnoreLevels)
	e.ignoredTypes = resolveIgnoredTypes(config.IgnoreTypes)

	e.styles = nil
	if config.Colorize {
		e.styles = newLevelStyles(e.out)
	}

	e.limiter = nil
	if config.HandlerRate > 0 {
		burst := config.HandlerBurst
		if burst <= 0 {
			burst = 1
		}
		e.limiter = rate.NewLimiter(rate.Limit(config.HandlerRate), burst)
	}

	if config.ErrorHandler != nil {
		e.errorHandler = config.ErrorHandler
	}
}

// Print logs msg at the last level and type, which are UnknownLevel and
// UnknownType.
func (e *Engine) Print(msg string) {
	if !Enabled {
		return
	}
	e.emit(callerSite(2), UnknownLevel, UnknownType, msg, true)
}

// PrintAt is Print with an explicit call site.
func (e *Engine) PrintAt(site CallSite, msg string) {
	if !Enabled {
		return
	}
	e.emit(site, UnknownLevel, UnknownType, msg, true)
}

// Log writes msg at level and type, unless either is ignored.
// WarnLevel and FatalLevel records are also passed to the error handler.
func (e *Engine) Log(level Level, typ Type, msg string) {
	if !Enabled {
		return
	}
	e.emit(callerSite(2), level, typ, msg, false)
}

// LogAt is Log with an explicit call site.
func (e *Engine) LogAt(site CallSite, level Level, typ Type, msg string) {
	if !Enabled {
		return
	}
	e.emit(site, level, typ, msg, false)
}

// Logf formats the message with fmt.Sprintf and logs it.
func (e *Engine) Logf(level Level, typ Type, format string, v ...any) {
	if !Enabled {
		return
	}
	e.emit(callerSite(2), level, typ, fmt.Sprintf(format, v...), false)
}

// Debugf logs a debug message formatted with fmt.Sprintf.
func (e *Engine) Debugf(typ Type, format string, v ...any) {
	if !Enabled {
		return
	}
	e.emit(callerSite(2), DebugLevel, typ, fmt.Sprintf(format, v...), false)
}

// Infof logs an informational message formatted with fmt.Sprintf.
func (e *Engine) Infof(typ Type, format string, v ...any) {
	if !Enabled {
		return
	}
	e.emit(callerSite(2), InfoLevel, typ, fmt.Sprintf(format, v...), false)
}

// Warnf logs a warning formatted with fmt.Sprintf and notifies the error handler.
func (e *Engine) Warnf(typ Type, format string, v ...any) {
	if !Enabled {
		return
	}
	e.emit(callerSite(2), WarnLevel, typ, fmt.Sprintf(format, v...), false)
}

// Errorf logs a fatal-level message formatted with fmt.Sprintf and notifies
// the error handler. It does not exit.
func (e *Engine) Errorf(typ Type, format string, v ...any) {
	if !Enabled {
		return
	}
	e.emit(callerSite(2), FatalLevel, typ, fmt.Sprintf(format, v...), false)
}

// Tracef logs a trace message formatted with fmt.Sprintf.
func (e *Engine) Tracef(typ Type, format string, v ...any) {
	if !Enabled {
		return
	}
	e.emit(callerSite(2), TraceLevel, typ, fmt.Sprintf(format, v...), false)
}

func (e *Engine) emit(site CallSite, level Level, typ Type, msg string, useLast bool) {
	e.mu.Lock()
	if useLast {
		level, typ = e.lastLevel, e.lastType
	}
	if e.suppressed(level, typ) {
		e.mu.Unlock()
		return
	}

	rec := newRecord(site, levelLabel(e.styles, level), typ.String(), e.now(), msg)
	text := e.format.render(rec)
	if e.journal {
		text = prefixLines(journalPriority(level), text)
	}
	_, _ = io.WriteString(e.out, text+"\n")

	handler := e.handlerFor(level)
	e.mu.Unlock()

	if handler != nil {
		handler(msg)
	}
}

func (e *Engine) suppressed(level Level, typ Type) bool {
	if _, ok := e.ignoredLevels[level]; ok {
		return true
	}
	_, ok := e.ignoredTypes[typ]
	return ok
}

// handlerFor returns the error handler when level warrants a notification
// and the limiter allows it.
func (e *Engine) handlerFor(level Level) func(string) {
	if level != FatalLevel && level != WarnLevel {
		return nil
	}
	if e.errorHandler == nil {
		return nil
	}
	if e.limiter != nil && !e.limiter.Allow() {
		return nil
	}
	return e.errorHandler
}

// SetIgnoreType adds typ to the ignored types, or removes it when remove is
// true. Both directions are idempotent.
func (e *Engine) SetIgnoreType(typ Type, remove bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if remove {
		delete(e.ignoredTypes, typ)
		return
	}
	e.ignoredTypes[typ] = struct{}{}
}

// SetIgnoreLevel adds level to the ignored levels, or removes it when remove
// is true. Both directions are idempotent.
func (e *Engine) SetIgnoreLevel(level Level, remove bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if remove {
		delete(e.ignoredLevels, level)
		return
	}
	e.ignoredLevels[level] = struct{}{}
}

// IgnoredLevels returns the ignored levels in ascending order.
func (e *Engine) IgnoredLevels() []Level {
	e.mu.Lock()
	defer e.mu.Unlock()
	levels := make([]Level, 0, len(e.ignoredLevels))
	for level := range e.ignoredLevels {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}

// IgnoredTypes returns the ignored types in ascending order.
func (e *Engine) IgnoredTypes() []Type {
	e.mu.Lock()
	defer e.mu.Unlock()
	types := make([]Type, 0, len(e.ignoredTypes))
	for typ := range e.ignoredTypes {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// SetErrorHandler replaces the error handler. nil removes it.
func (e *Engine) SetErrorHandler(handler func(string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errorHandler = handler
}

// SetFormat replaces the record template. It takes effect on the next call.
// Empty restores DefaultFormat.
func (e *Engine) SetFormat(format string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if format == "" {
		format = DefaultFormat
	}
	e.format = compileFormat(format)
}

// Format returns the current record template.
func (e *Engine) Format() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.format.format
}
