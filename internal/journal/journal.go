// Package journal records notable cart events (logins, merges, checkouts) to
// a JSON-lines file and tails them back for the activity view.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Entry is one activity record: a merge, a checkout, a login or logout.
type Entry struct {
	Time   time.Time `json:"ts"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail"`
}

// Journal appends activity entries to a JSON-lines file. Writes are
// best-effort; a failed append is logged and dropped.
type Journal struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
	now  func() time.Time
}

// New returns a journal writing to the file at path.
func New(path string, log *zap.Logger) *Journal {
	if log == nil {
		log = zap.NewNop()
	}
	return &Journal{path: path, log: log, now: time.Now}
}

// Record appends one entry.
func (j *Journal) Record(kind, detail string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := Entry{Time: j.now(), Kind: kind, Detail: detail}
	line, err := json.Marshal(entry)
	if err != nil {
		j.log.Warn("journal encode failed", zap.Error(err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		j.log.Warn("journal dir create failed", zap.Error(err))
		return
	}
	file, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		j.log.Warn("journal open failed", zap.Error(err))
		return
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Write(append(line, '\n')); err != nil {
		j.log.Warn("journal append failed", zap.Error(err))
	}
}

// Tail returns at most maxLines entries from the end of the journal at path.
// Unparseable lines are skipped.
func Tail(path string, maxLines int) ([]Entry, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	ring := make([]Entry, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		ring[idx] = entry
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	entries := make([]Entry, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			entries[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(entries, ring[:count])
	}
	return entries, nil
}
