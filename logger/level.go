package logger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownLevel is returned when a level name cannot be parsed.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownType is returned when a type name cannot be parsed.
	ErrUnknownType = errors.New("unknown log type")
)

// Level is the severity of a log record.
type Level int

const (
	// UnknownLevel is the zero value and the starting level of Print.
	UnknownLevel Level = iota
	// DebugLevel is for debug builds.
	DebugLevel
	// ReleaseLevel marks records relevant to release behavior.
	ReleaseLevel
	// InfoLevel is for informational records.
	InfoLevel
	// WarnLevel is a warning; it triggers the error handler.
	WarnLevel
	// FatalLevel is a serious error; it triggers the error handler.
	FatalLevel
	// TraceLevel is more detailed than debug.
	TraceLevel
)

// Type is the category of a log record.
type Type int

const (
	// UnknownType is the zero value and the starting type of Print.
	UnknownType Type = iota
	NetworkType
	ActionType
	ParsingType
	LoadType
	PlayerType
	WebType
	ViewType
	DownloadType
)

var levelLabels = [...]string{
	UnknownLevel: "UNKNOWN",
	DebugLevel:   "DEBUG",
	ReleaseLevel: "RELEASE",
	InfoLevel:    "INFO",
	WarnLevel:    "WARNING",
	FatalLevel:   "ERROR",
	TraceLevel:   "TRACE",
}

var typeLabels = [...]string{
	UnknownType:  "UNKNOWN",
	NetworkType:  "NETWORK",
	ActionType:   "ACTION",
	ParsingType:  "PARSING",
	LoadType:     "LOAD",
	PlayerType:   "PLAYER",
	WebType:      "WEB",
	ViewType:     "VIEW",
	DownloadType: "DOWNLOAD",
}

// String returns the display label used in rendered records.
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelLabels) {
		return levelLabels[UnknownLevel]
	}
	return levelLabels[l]
}

// String returns the display label used in rendered records.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeLabels) {
		return typeLabels[UnknownType]
	}
	return typeLabels[t]
}

// AllLevels returns all supported levels.
func AllLevels() []Level {
	return []Level{
		DebugLevel,
		ReleaseLevel,
		InfoLevel,
		WarnLevel,
		FatalLevel,
		TraceLevel,
		UnknownLevel,
	}
}

// AllTypes returns all supported types.
func AllTypes() []Type {
	return []Type{
		NetworkType,
		ActionType,
		ParsingType,
		LoadType,
		PlayerType,
		WebType,
		ViewType,
		DownloadType,
		UnknownType,
	}
}

// ParseLevel accepts a display label or a lowercase level name.
// "warn" and "warning" both map to WarnLevel; "fatal" and "error" to FatalLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "RELEASE":
		return ReleaseLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "FATAL", "ERROR":
		return FatalLevel, nil
	case "TRACE":
		return TraceLevel, nil
	case "UNKNOWN":
		return UnknownLevel, nil
	}
	return UnknownLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ParseType accepts a display label or a lowercase type name.
func ParseType(s string) (Type, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, label := range typeLabels {
		if label == name {
			return Type(i), nil
		}
	}
	return UnknownType, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// parseLevels parses a comma-separated list of level names.
// Blank entries are skipped. Valid entries are returned even when some fail.
func parseLevels(s string) ([]Level, error) {
	var levels []Level
	var errs []error
	for _, p := range strings.Split(s, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		l, err := ParseLevel(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		levels = append(levels, l)
	}
	return levels, errors.Join(errs...)
}

// parseTypes parses a comma-separated list of type names.
func parseTypes(s string) ([]Type, error) {
	var types []Type
	var errs []error
	for _, p := range strings.Split(s, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		t, err := ParseType(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		types = append(types, t)
	}
	return types, errors.Join(errs...)
}
