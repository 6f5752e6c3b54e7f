package redline

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/redline/internal/document"
)

// Preview summarizes the pending changeset as a diff between the
// reject-all view (every change undone) and the accept-all view (every
// change applied) of the content.
type Preview struct {
	Pending    int    `json:"pending_count"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
	Hunks      []Hunk `json:"hunks"`
}

// Hunk is one changed run in the preview diff.
type Hunk struct {
	Op   string `json:"op"` // insert or delete
	Text string `json:"text"`
}

// changeSpan is a redline's anchor resolved to content offsets.
type changeSpan struct {
	start int
	end   int
	typ   document.RedlineType
}

// Preview computes the changes preview. Redlines whose anchors cannot
// be resolved are skipped, matching the lenient per-item policy of the
// batch operations.
func (s *Service) Preview(h *document.Handle) (Preview, error) {
	text, err := h.Text()
	if err != nil {
		return Preview{}, err
	}
	rl, err := h.Redlines()
	if err != nil {
		return Preview{}, err
	}

	raw := []rune(text.Content())
	count := rl.Count()
	spans := make([]changeSpan, 0, count)
	for i := 0; i < count; i++ {
		item, err := rl.At(i)
		if err != nil {
			s.log.Warn("preview: tracked change read failed", "index", i, "error", err)
			continue
		}
		typ := item.Type()
		if typ != document.RedlineInsert && typ != document.RedlineDelete {
			continue
		}
		anchor := item.Anchor()
		if anchor == nil {
			continue
		}
		off, err := text.OffsetOf(anchor)
		if err != nil {
			s.log.Warn("preview: anchor offset failed", "index", i, "error", err)
			continue
		}
		anchored, err := anchor.Text()
		if err != nil {
			continue
		}
		spans = append(spans, changeSpan{start: off, end: off + len([]rune(anchored)), typ: typ})
	}

	rejected := renderView(raw, spans, document.RedlineInsert)
	accepted := renderView(raw, spans, document.RedlineDelete)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(rejected, accepted, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	p := Preview{Pending: count, Hunks: []Hunk{}}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			p.Insertions++
			p.Hunks = append(p.Hunks, Hunk{Op: "insert", Text: d.Text})
		case diffmatchpatch.DiffDelete:
			p.Deletions++
			p.Hunks = append(p.Hunks, Hunk{Op: "delete", Text: d.Text})
		}
	}
	return p, nil
}

// renderView returns raw with every span of the dropped type elided.
func renderView(raw []rune, spans []changeSpan, drop document.RedlineType) string {
	if len(spans) == 0 {
		return string(raw)
	}
	elided := make([]bool, len(raw))
	for _, sp := range spans {
		if sp.typ != drop {
			continue
		}
		for i := max(sp.start, 0); i < sp.end && i < len(raw); i++ {
			elided[i] = true
		}
	}
	out := make([]rune, 0, len(raw))
	for i, r := range raw {
		if !elided[i] {
			out = append(out, r)
		}
	}
	return string(out)
}
