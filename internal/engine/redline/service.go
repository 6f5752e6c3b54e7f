package redline

import (
	"log/slog"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/logging"
)

// timestampLayout renders redline timestamps the way the collection
// reports them to callers.
const timestampLayout = "2006-01-02T15:04:05"

// textCap bounds the anchor text included per listed change.
const textCap = 500

// Change is one listed tracked change. Index is only valid until the
// collection next mutates.
type Change struct {
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Text        string `json:"text"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Status reports the track-changes mode flags and backlog size.
type Status struct {
	Recording bool `json:"recording"`
	Showing   bool `json:"showing"`
	Pending   int  `json:"pending_count"`
}

// Service exposes the tracked-change collection. The collection is
// index-volatile, so every operation re-reads count and items from the
// host instead of caching a snapshot.
type Service struct {
	log *slog.Logger
}

// NewService creates the tracked-change service.
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{log: log}
}

// List returns every pending change with resolved attributes. Items the
// host cannot read are skipped; an empty collection is an empty list.
func (s *Service) List(h *document.Handle) ([]Change, error) {
	rl, err := h.Redlines()
	if err != nil {
		return nil, err
	}

	count := rl.Count()
	out := make([]Change, 0, count)
	for i := 0; i < count; i++ {
		item, err := rl.At(i)
		if err != nil {
			s.log.Warn("tracked change read failed", "index", i, "error", err)
			continue
		}
		text := ""
		if anchor := item.Anchor(); anchor != nil {
			if t, err := anchor.Text(); err == nil {
				text = truncate(t, textCap)
			}
		}
		out = append(out, Change{
			Index:       i,
			Type:        string(item.Type()),
			Text:        text,
			Author:      item.Author(),
			Date:        item.Timestamp().Format(timestampLayout),
			Description: item.Comment(),
		})
	}
	return out, nil
}

// Accept makes the change at index permanent. The host reports an index
// outside 0..count-1 as ErrOutOfRange naming the valid bound.
func (s *Service) Accept(h *document.Handle, index int) error {
	rl, err := h.Redlines()
	if err != nil {
		return err
	}
	return rl.Accept(index)
}

// Reject undoes the change at index.
func (s *Service) Reject(h *document.Handle, index int) error {
	rl, err := h.Redlines()
	if err != nil {
		return err
	}
	return rl.Reject(index)
}

// AcceptAll accepts every pending change and returns how many resolved.
// Resolution runs highest index first: each resolve removes an entry
// from the live collection, which shifts the indices after it.
// Per-item failures are logged and skipped.
func (s *Service) AcceptAll(h *document.Handle) (int, error) {
	rl, err := h.Redlines()
	if err != nil {
		return 0, err
	}

	resolved := 0
	for i := rl.Count() - 1; i >= 0; i-- {
		if i >= rl.Count() {
			continue
		}
		if err := rl.Accept(i); err != nil {
			s.log.Warn("accept tracked change failed", "index", i, "error", err)
			continue
		}
		resolved++
	}
	return resolved, nil
}

// RejectAll rejects every pending change and returns how many resolved,
// with the same descending order and lenient per-item handling as
// AcceptAll.
func (s *Service) RejectAll(h *document.Handle) (int, error) {
	rl, err := h.Redlines()
	if err != nil {
		return 0, err
	}

	resolved := 0
	for i := rl.Count() - 1; i >= 0; i-- {
		if i >= rl.Count() {
			continue
		}
		if err := rl.Reject(i); err != nil {
			s.log.Warn("reject tracked change failed", "index", i, "error", err)
			continue
		}
		resolved++
	}
	return resolved, nil
}

// Status returns the mode flags and pending count.
func (s *Service) Status(h *document.Handle) (Status, error) {
	rl, err := h.Redlines()
	if err != nil {
		return Status{}, err
	}
	return Status{Recording: rl.Recording(), Showing: rl.Showing(), Pending: rl.Count()}, nil
}

// SetTracking sets both mode flags and returns the resulting status.
func (s *Service) SetTracking(h *document.Handle, enabled, show bool) (Status, error) {
	rl, err := h.Redlines()
	if err != nil {
		return Status{}, err
	}
	rl.SetRecording(enabled)
	rl.SetShowing(show)
	return Status{Recording: rl.Recording(), Showing: rl.Showing(), Pending: rl.Count()}, nil
}

// truncate caps s at max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
