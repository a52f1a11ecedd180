package workflow

import "sync"

// workflowLocks serializes mutations per workflow ID. Entries are created
// on demand and removed once the last holder releases.
type workflowLocks struct {
	mu      sync.Mutex
	entries map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newWorkflowLocks() *workflowLocks {
	return &workflowLocks{entries: make(map[int64]*lockEntry)}
}

// lock acquires the mutex for a workflow and returns its release func.
func (l *workflowLocks) lock(workflowID int64) func() {
	l.mu.Lock()
	entry, ok := l.entries[workflowID]
	if !ok {
		entry = &lockEntry{}
		l.entries[workflowID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, workflowID)
		}
		l.mu.Unlock()
	}
}
