// Copyright © 2018 The ELPS authors

package maltest

import (
	"bytes"
	"io"
	"testing"
)

// Logger is an io.Writer which sends each complete line written to it to
// a test log.  A partial final line is held until Flush.
type Logger struct {
	t      testing.TB
	prefix string
	buf    bytes.Buffer
}

var _ io.Writer = (*Logger)(nil)

// NewLogger returns a Logger for t.  Lines are logged with prefix, which
// may be empty.  Any partial line is logged when t finishes.
func NewLogger(t testing.TB, prefix string) *Logger {
	l := &Logger{t: t, prefix: prefix}
	t.Cleanup(l.Flush)
	return l
}

func (l *Logger) Write(b []byte) (int, error) {
	l.buf.Write(b)
	for {
		line, err := l.buf.ReadBytes('\n')
		if err != nil {
			// put back the incomplete line
			rest := append([]byte(nil), line...)
			l.buf.Reset()
			l.buf.Write(rest)
			return len(b), nil
		}
		l.t.Log(l.prefix + string(line[:len(line)-1]))
	}
}

// Flush logs any buffered partial line.
func (l *Logger) Flush() {
	if l.buf.Len() == 0 {
		return
	}
	l.t.Log(l.prefix + l.buf.String())
	l.buf.Reset()
}
