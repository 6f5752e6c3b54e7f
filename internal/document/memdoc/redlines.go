package memdoc

import (
	"fmt"
	"time"

	"github.com/dshills/redline/internal/document"
)

// record is one pending tracked change. Spans are raw content offsets,
// adjusted whenever content before them moves.
type record struct {
	typ    document.RedlineType
	start  int
	end    int
	author string
	at     time.Time
	note   string
	runID  int // format records: the run to drop on reject
}

// formatRun is one applied character format span. Later runs win where
// runs overlap.
type formatRun struct {
	id    int
	start int
	end   int
	f     document.Format
}

// insertLocked inserts text at off. While recording it also records an
// insert redline over the new text.
func (d *Doc) insertLocked(off int, text []rune) {
	if len(text) == 0 {
		return
	}
	d.spliceInsertLocked(off, text)
	if d.recording {
		d.addRecordLocked(&record{
			typ:    document.RedlineInsert,
			start:  off,
			end:    off + len(text),
			author: d.author,
			at:     d.now(),
		})
	}
}

// deleteSpanLocked deletes [start, end). While recording the text stays
// in place and a delete redline is recorded over it instead.
func (d *Doc) deleteSpanLocked(start, end int) {
	if end <= start {
		return
	}
	if d.recording {
		d.addRecordLocked(&record{
			typ:    document.RedlineDelete,
			start:  start,
			end:    end,
			author: d.author,
			at:     d.now(),
		})
		d.modified = true
		return
	}
	d.spliceDeleteLocked(start, end)
}

// replaceSpanLocked replaces [start, end) with text and returns the end
// of the replacement region. While recording, the original stays in
// place as a pending deletion and the new text is inserted after it, so
// the region reads struck-original then replacement.
func (d *Doc) replaceSpanLocked(start, end int, text []rune) int {
	if d.recording {
		d.deleteSpanLocked(start, end)
		d.insertLocked(end, text)
		newEnd := end + len(text)
		d.cursor = newEnd
		return newEnd
	}

	d.spliceDeleteLocked(start, end)
	d.spliceInsertLocked(start, text)
	newEnd := start + len(text)
	d.cursor = newEnd
	return newEnd
}

// applyFormatLocked applies a character format run over [start, end).
// Formatting moves no content, so outstanding range views stay valid.
// While recording it records a format redline remembering the run.
func (d *Doc) applyFormatLocked(start, end int, f document.Format) {
	run := formatRun{id: d.nextRun, start: start, end: end, f: f}
	d.nextRun++
	d.formats = append(d.formats, run)
	d.modified = true

	if d.recording {
		d.addRecordLocked(&record{
			typ:    document.RedlineFormat,
			start:  start,
			end:    end,
			author: d.author,
			at:     d.now(),
			runID:  run.id,
		})
	}
}

// addRecordLocked inserts a record keeping the collection ordered by
// document position.
func (d *Doc) addRecordLocked(r *record) {
	idx := len(d.records)
	for i, existing := range d.records {
		if existing.start > r.start || (existing.start == r.start && existing.end > r.end) {
			idx = i
			break
		}
	}
	d.records = append(d.records[:idx:idx], append([]*record{r}, d.records[idx:]...)...)
	d.modified = true
}

// FormatAt returns the effective character format at off, resolving
// overlapping runs by recency. Zero Format means unformatted. Tests use
// this to observe formatting without a read-back operation.
func (d *Doc) FormatAt(off int) document.Format {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out document.Format
	for _, run := range d.formats {
		if off < run.start || off >= run.end {
			continue
		}
		if run.f.Bold != nil {
			out.Bold = run.f.Bold
		}
		if run.f.Italic != nil {
			out.Italic = run.f.Italic
		}
		if run.f.Underline != nil {
			out.Underline = run.f.Underline
		}
		if run.f.Size != nil {
			out.Size = run.f.Size
		}
		if run.f.Font != nil {
			out.Font = run.f.Font
		}
	}
	return out
}

// redlineItem is a point-in-time snapshot of one record. The anchor is a
// range view issued when the snapshot was taken.
type redlineItem struct {
	typ    document.RedlineType
	author string
	at     time.Time
	note   string
	anchor *mark
}

func (r redlineItem) Type() document.RedlineType { return r.typ }
func (r redlineItem) Anchor() document.Range     { return r.anchor }
func (r redlineItem) Author() string             { return r.author }
func (r redlineItem) Timestamp() time.Time       { return r.at }
func (r redlineItem) Comment() string            { return r.note }

// redlineView implements document.Redlines.
type redlineView struct {
	d *Doc
}

// Recording implements document.Redlines.
func (v *redlineView) Recording() bool {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	return v.d.recording
}

// SetRecording implements document.Redlines.
func (v *redlineView) SetRecording(on bool) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	v.d.recording = on
}

// Showing implements document.Redlines.
func (v *redlineView) Showing() bool {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	return v.d.showing
}

// SetShowing implements document.Redlines.
func (v *redlineView) SetShowing(on bool) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	v.d.showing = on
}

// Count implements document.Redlines.
func (v *redlineView) Count() int {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	return len(v.d.records)
}

// At implements document.Redlines.
func (v *redlineView) At(i int) (document.Redline, error) {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	if err := v.d.checkIndexLocked(i); err != nil {
		return nil, err
	}
	r := v.d.records[i]
	return redlineItem{
		typ:    r.typ,
		author: r.author,
		at:     r.at,
		note:   r.note,
		anchor: v.d.markLocked(r.start, r.end),
	}, nil
}

// Accept implements document.Redlines: the change becomes permanent.
func (v *redlineView) Accept(i int) error {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	if err := v.d.checkIndexLocked(i); err != nil {
		return err
	}

	r := v.d.records[i]
	v.d.removeRecordLocked(i)

	if r.typ == document.RedlineDelete {
		v.d.spliceDeleteLocked(r.start, r.end)
	}
	v.d.modified = true
	return nil
}

// Reject implements document.Redlines: the change is undone.
func (v *redlineView) Reject(i int) error {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	if err := v.d.checkIndexLocked(i); err != nil {
		return err
	}

	r := v.d.records[i]
	v.d.removeRecordLocked(i)

	switch r.typ {
	case document.RedlineInsert:
		v.d.spliceDeleteLocked(r.start, r.end)
	case document.RedlineFormat:
		v.d.removeRunLocked(r.runID)
	}
	v.d.modified = true
	return nil
}

func (d *Doc) checkIndexLocked(i int) error {
	count := len(d.records)
	if count == 0 {
		return fmt.Errorf("%w: no tracked changes in document", document.ErrOutOfRange)
	}
	if i < 0 || i >= count {
		return fmt.Errorf("%w: index %d out of range (valid 0..%d)", document.ErrOutOfRange, i, count-1)
	}
	return nil
}

func (d *Doc) removeRecordLocked(i int) {
	d.records = append(d.records[:i:i], d.records[i+1:]...)
}

func (d *Doc) removeRunLocked(id int) {
	for i, run := range d.formats {
		if run.id == id {
			d.formats = append(d.formats[:i:i], d.formats[i+1:]...)
			return
		}
	}
}
