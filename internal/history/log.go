// Package history keeps the ordered list of chat items shown in the chat view.
package history

import (
	"sort"
	"sync"

	"github.com/diogo/playground/internal/models"
)

// Log is the conversation as displayed. Streaming transcripts arrive as a
// series of non-final items that are superseded in place until the final
// one lands, so Add merges instead of blindly appending.
type Log struct {
	mu    sync.RWMutex
	items []models.ChatItem
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Add merges item into the log and reports whether it was kept.
//
// Per UserID: an item not newer than the last final item is dropped;
// otherwise it replaces the pending non-final item, or is appended.
// The log stays ordered by Time.
func (l *Log) Add(item models.ChatItem) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	lastFinal, lastPending := -1, -1
	for i := len(l.items) - 1; i >= 0; i-- {
		if l.items[i].UserID != item.UserID {
			continue
		}
		if l.items[i].IsFinal {
			if lastFinal < 0 {
				lastFinal = i
			}
		} else if lastPending < 0 {
			lastPending = i
		}
		if lastFinal >= 0 && lastPending >= 0 {
			break
		}
	}

	if lastFinal >= 0 && item.Time <= l.items[lastFinal].Time {
		return false
	}

	if lastPending >= 0 {
		l.items[lastPending] = item
	} else {
		l.items = append(l.items, item)
	}

	sort.SliceStable(l.items, func(i, j int) bool {
		return l.items[i].Time < l.items[j].Time
	})
	return true
}

// Items returns a copy of the log in display order.
func (l *Log) Items() []models.ChatItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.ChatItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Last returns the most recent item of the given type.
func (l *Log) Last(typ models.ChatType) (models.ChatItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.items) - 1; i >= 0; i-- {
		if l.items[i].Type == typ {
			return l.items[i], true
		}
	}
	return models.ChatItem{}, false
}

// Pending reports whether the newest agent item is still being streamed.
func (l *Log) Pending() bool {
	last, ok := l.Last(models.ChatTypeAgent)
	return ok && !last.IsFinal
}

// Clear empties the log.
func (l *Log) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}
