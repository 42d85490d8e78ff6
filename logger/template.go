package logger

import (
	"strconv"
	"strings"
	"time"
)

// Template tokens recognized in a format string.
const (
	TokenLevel    = "{$level}"
	TokenType     = "{$type}"
	TokenTime     = "{$time}"
	TokenFunction = "{$function}"
	TokenFile     = "{$file}"
	TokenLine     = "{$line}"
	TokenMessage  = "{$message}"
)

// DefaultFormat frames each record between "===" lines.
const DefaultFormat = "===\n[{$level}][{$type}]{$time}\n{$function} ({$file}, {$line})\n{$message}\n==="

// CompactFormat puts the header on one line and the message on the next.
const CompactFormat = "[{$time}][{$level}][{$type}][{$function} ({$file}, {$line})]\n{$message}"

// timeLayout is local wall-clock time with truncated milliseconds.
// The trailing space is part of the rendered value.
const timeLayout = "15:04:05.000 "

// record holds the replacement value for every token.
type record struct {
	level    string
	typ      string
	time     string
	function string
	file     string
	line     string
	message  string
}

func newRecord(site CallSite, level, typ string, now time.Time, msg string) record {
	return record{
		level:    level,
		typ:      typ,
		time:     formatTime(now),
		function: site.Function,
		file:     site.File,
		line:     strconv.Itoa(site.Line),
		message:  msg,
	}
}

// segment is a literal run of the format or one token.
type segment struct {
	tok  token
	text string
}

type token int

const (
	literal token = iota
	levelToken
	typeToken
	timeToken
	functionToken
	fileToken
	lineToken
	messageToken
)

var tokens = []struct {
	text string
	tok  token
}{
	{TokenLevel, levelToken},
	{TokenType, typeToken},
	{TokenTime, timeToken},
	{TokenFunction, functionToken},
	{TokenFile, fileToken},
	{TokenLine, lineToken},
	{TokenMessage, messageToken},
}

// compiledFormat is a format string split at its token positions. It is
// built when the format is set; rendering only fills in values.
type compiledFormat struct {
	format   string
	segments []segment
}

func compileFormat(format string) compiledFormat {
	cf := compiledFormat{format: format}
	start := 0
	for i := 0; i < len(format); {
		tok, n := matchToken(format[i:])
		if n == 0 {
			i++
			continue
		}
		if i > start {
			cf.segments = append(cf.segments, segment{tok: literal, text: format[start:i]})
		}
		cf.segments = append(cf.segments, segment{tok: tok})
		i += n
		start = i
	}
	if start < len(format) {
		cf.segments = append(cf.segments, segment{tok: literal, text: format[start:]})
	}
	return cf
}

func matchToken(s string) (token, int) {
	if !strings.HasPrefix(s, "{$") {
		return literal, 0
	}
	for _, t := range tokens {
		if strings.HasPrefix(s, t.text) {
			return t.tok, len(t.text)
		}
	}
	return literal, 0
}

// render fills every token position with its value. Values are written as
// they are, so a message containing "{$level}" stays literal. Unknown
// tokens are part of the literal runs.
func (cf compiledFormat) render(r record) string {
	var b strings.Builder
	b.Grow(len(cf.format) + len(r.message) + len(r.file) + len(r.function))
	for _, seg := range cf.segments {
		switch seg.tok {
		case literal:
			b.WriteString(seg.text)
		case levelToken:
			b.WriteString(r.level)
		case typeToken:
			b.WriteString(r.typ)
		case timeToken:
			b.WriteString(r.time)
		case functionToken:
			b.WriteString(r.function)
		case fileToken:
			b.WriteString(r.file)
		case lineToken:
			b.WriteString(r.line)
		case messageToken:
			b.WriteString(r.message)
		}
	}
	return b.String()
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}
