package store

import (
	"fmt"
	"os"
	"time"
)

// AppendErrorLog records a crash or top-level failure with a timestamp and,
// when available, a stack trace. Failures to write are swallowed: the error
// log must never become a second failure.
func (s Store) AppendErrorLog(v any, stack []byte) {
	if err := s.Ensure(); err != nil {
		return
	}
	f, err := os.OpenFile(s.ErrorLogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "[%s] %v\n", time.Now().Format(time.RFC3339), v)
	if len(stack) > 0 {
		f.Write(stack)
		fmt.Fprintln(f)
	}
}
