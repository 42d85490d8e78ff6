package logger

import (
	"io"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
)

// journalStream reports whether out is stdout connected to the journal.
// Tests replace it.
var journalStream = func(out io.Writer) bool {
	if out != os.Stdout {
		return false
	}
	ok, err := journal.StdoutIsJournalStream()
	return err == nil && ok
}

// journalPriority maps a level to the syslog priority prefix understood by
// journald on stdout.
func journalPriority(level Level) string {
	switch level {
	case FatalLevel:
		return "<3>"
	case WarnLevel:
		return "<4>"
	case ReleaseLevel:
		return "<5>"
	case InfoLevel, UnknownLevel:
		return "<6>"
	case DebugLevel, TraceLevel:
		return "<7>"
	default:
		return ""
	}
}

// prefixLines prepends prefix to every line of record.
func prefixLines(prefix, record string) string {
	if prefix == "" || record == "" {
		return record
	}
	buf := make([]byte, 0, len(record)+len(prefix)*2)
	buf = append(buf, prefix...)
	for i := 0; i < len(record); i++ {
		buf = append(buf, record[i])
		if record[i] == '\n' && i != len(record)-1 {
			buf = append(buf, prefix...)
		}
	}
	return string(buf)
}
