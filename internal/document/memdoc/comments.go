package memdoc

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/redline/internal/document"
)

// annotation is one stored comment. Anchor offsets are adjusted as the
// content mutates.
type annotation struct {
	id     string
	author string
	at     time.Time
	text   string
	start  int
	end    int
}

// commentItem is a snapshot of an annotation handed to callers.
type commentItem struct {
	id     string
	author string
	at     time.Time
	text   string
	anchor *mark
}

// ID implements document.Comment.
func (c commentItem) ID() string { return c.id }

// Author implements document.Comment.
func (c commentItem) Author() string { return c.author }

// Timestamp implements document.Comment.
func (c commentItem) Timestamp() time.Time { return c.at }

// Text implements document.Comment.
func (c commentItem) Text() string { return c.text }

// Anchor implements document.Comment.
func (c commentItem) Anchor() document.Range { return c.anchor }

// commentView implements document.Comments.
type commentView struct {
	d *Doc
}

// List implements document.Comments.
func (v *commentView) List() []document.Comment {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()

	sorted := make([]*annotation, len(v.d.comments))
	copy(sorted, v.d.comments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	out := make([]document.Comment, len(sorted))
	for i, a := range sorted {
		out[i] = commentItem{
			id:     a.id,
			author: a.author,
			at:     a.at,
			text:   a.text,
			anchor: v.d.markLocked(a.start, a.end),
		}
	}
	return out
}

// AddAtCursor implements document.Comments. The comment anchors to the
// selection when one is active, otherwise it collapses at the cursor.
func (v *commentView) AddAtCursor(text, author string) (document.Comment, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()

	start, end := v.d.cursor, v.d.cursor
	if v.d.selActive {
		start, end = v.d.selStart, v.d.selEnd
	}
	a := &annotation{
		id:     uuid.NewString(),
		author: author,
		at:     v.d.now(),
		text:   text,
		start:  start,
		end:    end,
	}
	v.d.comments = append(v.d.comments, a)
	v.d.modified = true
	return commentItem{
		id:     a.id,
		author: a.author,
		at:     a.at,
		text:   a.text,
		anchor: v.d.markLocked(a.start, a.end),
	}, nil
}
