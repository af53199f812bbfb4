package catlog

import "sync"

// History is the ordered list of records accepted since the last
// initialization, kept alongside their rendered lines.
//
// Appending a record and persisting the rendered lines happen inside one
// critical section, so the log file always holds a prefix of the append order.
type History struct {
	mu      sync.RWMutex
	records []Record
	lines   []string
	retired bool
}

func newHistory() *History {
	return &History{}
}

// commit appends r and, when persist is non-nil, calls it with the full list
// of rendered lines before releasing the lock. The lines slice must not be
// retained by persist.
//
// commit reports false when the history has been retired.
func (h *History) commit(r Record, persist func(lines []string) error) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.retired {
		return false, nil
	}

	h.records = append(h.records, r)
	h.lines = append(h.lines, r.String())

	if persist == nil {
		return true, nil
	}
	return true, persist(h.lines)
}

// retire stops the history from accepting records. It waits for an in-flight
// commit to finish.
func (h *History) retire() {
	h.mu.Lock()
	h.retired = true
	h.mu.Unlock()
}

// Len returns the number of records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Records returns a copy of the records, oldest first.
func (h *History) Records() []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Lines returns a copy of the rendered lines, oldest first.
func (h *History) Lines() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}
