// Package memdoc is an in-memory host implementing the full document
// capability contract. It models the behavior the engine expects from a
// live editor: a raw character buffer that includes pending insertions
// and deletions while changes are recorded, an index-volatile redline
// collection ordered by document position, a single view cursor and
// selection, anchored comments, and character format runs.
//
// Offsets are 0-indexed rune counts over the raw content. Paragraphs are
// separated by '\n'. Range views handed out are revision-stamped: any
// content mutation invalidates outstanding views except the one passed
// to ReplaceRange, which is remapped to span the replacement region.
package memdoc

import (
	"sync"
	"time"

	"github.com/dshills/redline/internal/document"
)

// Doc is one in-memory document. It implements document.Metadata; the
// capability interfaces are implemented by small views over it, wired
// together by Handle.
type Doc struct {
	mu sync.RWMutex

	content []rune
	styles  []string // one per paragraph, parallel to '\n' splits
	rev     int64

	cursor    int
	selStart  int
	selEnd    int
	selActive bool

	records  []*record
	comments []*annotation
	formats  []formatRun
	nextRun  int

	recording bool
	showing   bool

	title    string
	url      string
	author   string
	modified bool
	now      func() time.Time
}

// Option configures a Doc.
type Option func(*Doc)

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(d *Doc) { d.title = title }
}

// WithURL sets the document's source URL.
func WithURL(url string) Option {
	return func(d *Doc) { d.url = url }
}

// WithAuthor sets the author stamped on redlines the host records.
func WithAuthor(author string) Option {
	return func(d *Doc) { d.author = author }
}

// WithClock sets the time source used for redline and comment
// timestamps. Tests use this to get stable timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Doc) { d.now = now }
}

// New creates an empty document: one empty paragraph, recording off,
// showing on.
func New(opts ...Option) *Doc {
	d := &Doc{
		styles:  []string{DefaultStyle},
		showing: true,
		author:  "Unknown",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle wraps the document in a handle declaring the full text
// capability set.
func (d *Doc) Handle() *document.Handle {
	return document.NewHandle(document.KindText, d,
		document.WithText(&textView{d}),
		document.WithParagraphs(&paraView{d}),
		document.WithRedlines(&redlineView{d}),
		document.WithSelection(&selView{d}),
		document.WithComments(&commentView{d}),
	)
}

// Title implements document.Metadata.
func (d *Doc) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

// URL implements document.Metadata.
func (d *Doc) URL() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.url
}

// Modified implements document.Metadata.
func (d *Doc) Modified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modified
}

// clampLocked clamps an offset into [0, len(content)].
func (d *Doc) clampLocked(off int) int {
	if off < 0 {
		return 0
	}
	if off > len(d.content) {
		return len(d.content)
	}
	return off
}

// spliceInsertLocked inserts text at off and adjusts every tracked
// position: records, comments, format runs, selection, and cursor.
// It bumps the revision, invalidating outstanding range views.
func (d *Doc) spliceInsertLocked(off int, text []rune) {
	n := len(text)
	if n == 0 {
		return
	}

	para := d.paragraphAtLocked(off)
	newlines := countNewlines(text)

	d.content = append(d.content[:off:off], append(append([]rune{}, text...), d.content[off:]...)...)

	if newlines > 0 {
		// Paragraphs split at the insertion point inherit its style.
		inherited := make([]string, newlines)
		for i := range inherited {
			inherited[i] = d.styles[para]
		}
		d.styles = append(d.styles[:para+1:para+1], append(inherited, d.styles[para+1:]...)...)
	}

	for _, r := range d.records {
		r.start = adjustInsert(r.start, off, n)
		r.end = adjustInsertEnd(r.end, off, n)
	}
	for _, c := range d.comments {
		c.start = adjustInsert(c.start, off, n)
		c.end = adjustInsertEnd(c.end, off, n)
	}
	for i := range d.formats {
		d.formats[i].start = adjustInsert(d.formats[i].start, off, n)
		d.formats[i].end = adjustInsertEnd(d.formats[i].end, off, n)
	}
	if d.selActive {
		d.selStart = adjustInsert(d.selStart, off, n)
		d.selEnd = adjustInsertEnd(d.selEnd, off, n)
	}
	if d.cursor >= off {
		d.cursor += n
	}

	d.rev++
	d.modified = true
}

// spliceDeleteLocked removes [start, end) and adjusts every tracked
// position. Records collapsing to nothing are dropped. It bumps the
// revision, invalidating outstanding range views.
func (d *Doc) spliceDeleteLocked(start, end int) {
	if end <= start {
		return
	}

	removedNewlines := countNewlines(d.content[start:end])
	para := d.paragraphAtLocked(start)

	d.content = append(d.content[:start:start], d.content[end:]...)

	if removedNewlines > 0 {
		// Paragraphs merged into the first one keep its style.
		d.styles = append(d.styles[:para+1:para+1], d.styles[para+1+removedNewlines:]...)
	}

	kept := d.records[:0]
	for _, r := range d.records {
		r.start = adjustDelete(r.start, start, end)
		r.end = adjustDelete(r.end, start, end)
		if r.end > r.start {
			kept = append(kept, r)
		}
	}
	d.records = kept

	for _, c := range d.comments {
		c.start = adjustDelete(c.start, start, end)
		c.end = adjustDelete(c.end, start, end)
	}

	keptRuns := d.formats[:0]
	for _, f := range d.formats {
		f.start = adjustDelete(f.start, start, end)
		f.end = adjustDelete(f.end, start, end)
		if f.end > f.start {
			keptRuns = append(keptRuns, f)
		}
	}
	d.formats = keptRuns

	if d.selActive {
		d.selStart = adjustDelete(d.selStart, start, end)
		d.selEnd = adjustDelete(d.selEnd, start, end)
		if d.selEnd <= d.selStart {
			d.selActive = false
		}
	}
	d.cursor = adjustDelete(d.cursor, start, end)

	d.rev++
	d.modified = true
}

// paragraphAtLocked returns the 0-indexed paragraph containing off.
func (d *Doc) paragraphAtLocked(off int) int {
	para := 0
	for i := 0; i < off && i < len(d.content); i++ {
		if d.content[i] == '\n' {
			para++
		}
	}
	return para
}

// adjustInsert shifts a position for an insertion of n runes at off.
func adjustInsert(p, off, n int) int {
	if p >= off {
		return p + n
	}
	return p
}

// adjustInsertEnd shifts a span end for an insertion at off. Text
// inserted exactly at the end stays outside the span.
func adjustInsertEnd(p, off, n int) int {
	if p > off {
		return p + n
	}
	return p
}

// adjustDelete shifts a position for the removal of [start, end).
// Positions inside the removed span collapse to start.
func adjustDelete(p, start, end int) int {
	switch {
	case p <= start:
		return p
	case p >= end:
		return p - (end - start)
	default:
		return start
	}
}

func countNewlines(text []rune) int {
	n := 0
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}
