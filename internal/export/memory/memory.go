// Package memory provides an in-memory row appender used by tests and by the
// worker when no Google Sheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"tally/internal/core"
)

type Appender struct {
	mu   sync.Mutex
	rows []core.Record
}

func New() *Appender {
	return &Appender{}
}

// AppendRecord stores the record and returns a synthetic row reference.
func (a *Appender) AppendRecord(_ context.Context, r core.Record) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows = append(a.rows, r)
	return fmt.Sprintf("mem:%d", len(a.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (a *Appender) Rows() []core.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]core.Record(nil), a.rows...)
}
