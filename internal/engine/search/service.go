// Package search implements track-changes-aware find and replace. Every
// call reads the recording flag once at entry: with recording off,
// replace-all delegates to the host's native bulk replace; with it on,
// the engine walks matches one at a time, classifying each against the
// pending deletions and skipping the ones inside them.
package search

import (
	"fmt"
	"log/slog"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/engine/redline"
	"github.com/dshills/redline/internal/logging"
)

// Service is the search/replace engine.
type Service struct {
	log *slog.Logger
}

// NewService creates the engine.
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{log: log}
}

// Match is one visible occurrence: its 0-indexed character offset from
// document start and the matched text.
type Match struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// FindResult lists the visible matches. TrackActive tells the caller
// whether recording filtered the result, which changes how completeness
// is interpreted.
type FindResult struct {
	Matches     []Match
	TrackActive bool
}

// ReplaceResult reports a replace-first outcome. Replaced false is a
// valid outcome, not a failure; Position is only meaningful when
// Replaced is true and holds the match offset measured before the
// mutation.
type ReplaceResult struct {
	Replaced    bool
	Position    int
	TrackActive bool
}

// ReplaceAllResult reports a replace-all outcome. With TrackActive set,
// a zero count can mean every match sat inside a tracked deletion.
type ReplaceAllResult struct {
	Count       int
	TrackActive bool
}

// Find locates every occurrence of query. When recording or showing is
// active, matches fully inside a tracked deletion are filtered out.
func (s *Service) Find(h *document.Handle, query string) (FindResult, error) {
	if query == "" {
		return FindResult{}, fmt.Errorf("%w: search query must not be empty", document.ErrInvalidArgument)
	}
	text, err := h.Text()
	if err != nil {
		return FindResult{}, err
	}

	// Documents without the redline capability search unfiltered.
	var rl document.Redlines
	recording := false
	filter := false
	if r, err := h.Redlines(); err == nil {
		rl = r
		recording = rl.Recording()
		filter = recording || rl.Showing()
	}

	result := FindResult{Matches: []Match{}, TrackActive: recording}
	for _, m := range text.FindAll(query) {
		if filter && redline.InTrackedDeletion(m, rl) {
			continue
		}
		pos, err := text.OffsetOf(m)
		if err != nil {
			s.log.Warn("find: match offset failed", "query", query, "error", err)
			continue
		}
		matched, err := m.Text()
		if err != nil {
			continue
		}
		result.Matches = append(result.Matches, Match{Position: pos, Text: matched})
	}
	return result, nil
}

// ReplaceFirst replaces the first visible occurrence of old. With
// recording active, occurrences inside tracked deletions are skipped by
// re-searching from each skipped match's end. Finding nothing visible
// reports Replaced false without error.
func (s *Service) ReplaceFirst(h *document.Handle, old, new string) (ReplaceResult, error) {
	if old == "" {
		return ReplaceResult{}, fmt.Errorf("%w: search text must not be empty", document.ErrInvalidArgument)
	}
	text, err := h.Text()
	if err != nil {
		return ReplaceResult{}, err
	}

	rl, recording := recordingState(h)
	result := ReplaceResult{TrackActive: recording}

	for r := text.FindFirst(old); r != nil; r = text.FindNext(old, r) {
		if recording && redline.InTrackedDeletion(r, rl) {
			continue
		}
		pos, err := text.OffsetOf(r)
		if err != nil {
			s.log.Warn("replace: match offset failed", "error", err)
			continue
		}
		if err := text.ReplaceRange(r, new); err != nil {
			return result, err
		}
		result.Replaced = true
		result.Position = pos
		return result, nil
	}
	return result, nil
}

// ReplaceAll replaces every visible occurrence of old. With recording
// off it delegates to the host's native bulk replace and trusts its
// count. With recording on, native replace would plow through tracked
// deletions, so the engine iterates: find the next occurrence after the
// previous match, classify, replace if visible, skip otherwise. Each
// replacement mutates the document, so the loop re-issues the search
// from the replaced region instead of reusing stale match handles.
func (s *Service) ReplaceAll(h *document.Handle, old, new string) (ReplaceAllResult, error) {
	if old == "" {
		return ReplaceAllResult{}, fmt.Errorf("%w: search text must not be empty", document.ErrInvalidArgument)
	}
	text, err := h.Text()
	if err != nil {
		return ReplaceAllResult{}, err
	}

	rl, recording := recordingState(h)
	if !recording {
		return ReplaceAllResult{Count: text.ReplaceAllRaw(old, new)}, nil
	}

	result := ReplaceAllResult{TrackActive: true}
	for r := text.FindFirst(old); r != nil; r = text.FindNext(old, r) {
		if redline.InTrackedDeletion(r, rl) {
			continue
		}
		// ReplaceRange remaps r over the replacement region, so the next
		// search starts after both the struck original and the new text.
		if err := text.ReplaceRange(r, new); err != nil {
			return result, err
		}
		result.Count++
	}
	return result, nil
}

// recordingState reads the redline capability if the handle carries it.
func recordingState(h *document.Handle) (document.Redlines, bool) {
	rl, err := h.Redlines()
	if err != nil {
		return nil, false
	}
	return rl, rl.Recording()
}
