package game

import "redblack/internal/model"

// history keeps the newest settled rounds first
type history struct {
	limit   int
	entries []model.CardHistoryEntry
}

func newHistory(limit int) *history {
	return &history{
		limit:   limit,
		entries: make([]model.CardHistoryEntry, 0, limit),
	}
}

func (h *history) push(e model.CardHistoryEntry) {
	h.entries = append(h.entries, model.CardHistoryEntry{})
	copy(h.entries[1:], h.entries)
	h.entries[0] = e
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// resize changes the capacity. Growing keeps everything, shrinking drops the oldest.
func (h *history) resize(limit int) {
	h.limit = limit
	if len(h.entries) > limit {
		h.entries = h.entries[:limit]
	}
}

func (h *history) list() []model.CardHistoryEntry {
	return append([]model.CardHistoryEntry(nil), h.entries...)
}
