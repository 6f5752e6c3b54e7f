package memdoc

import (
	"fmt"

	"github.com/dshills/redline/internal/document"
)

// mark is a revision-stamped range view. Any content mutation after the
// mark was issued makes it stale; stale marks fail their methods with
// ErrHostOperationFailed. The mark passed to ReplaceRange is remapped
// instead and stays valid.
type mark struct {
	d     *Doc
	start int
	end   int
	rev   int64
}

func (d *Doc) markLocked(start, end int) *mark {
	return &mark{d: d, start: start, end: end, rev: d.rev}
}

// staleLocked reports whether the mark no longer matches the document
// revision.
func (m *mark) staleLocked() bool { return m.rev != m.d.rev }

// Text implements document.Range.
func (m *mark) Text() (string, error) {
	m.d.mu.RLock()
	defer m.d.mu.RUnlock()
	if m.staleLocked() {
		return "", fmt.Errorf("%w: stale range view", document.ErrHostOperationFailed)
	}
	return string(m.d.content[m.start:m.end]), nil
}

// CompareStarts implements document.Range.
func (m *mark) CompareStarts(other document.Range) (int, error) {
	o, err := m.sibling(other)
	if err != nil {
		return 0, err
	}
	m.d.mu.RLock()
	defer m.d.mu.RUnlock()
	if m.staleLocked() || o.staleLocked() {
		return 0, fmt.Errorf("%w: stale range view", document.ErrHostOperationFailed)
	}
	return compare(m.start, o.start), nil
}

// CompareEnds implements document.Range.
func (m *mark) CompareEnds(other document.Range) (int, error) {
	o, err := m.sibling(other)
	if err != nil {
		return 0, err
	}
	m.d.mu.RLock()
	defer m.d.mu.RUnlock()
	if m.staleLocked() || o.staleLocked() {
		return 0, fmt.Errorf("%w: stale range view", document.ErrHostOperationFailed)
	}
	return compare(m.end, o.end), nil
}

// sibling asserts that other is a mark over the same document.
func (m *mark) sibling(other document.Range) (*mark, error) {
	o, ok := other.(*mark)
	if !ok || o.d != m.d {
		return nil, fmt.Errorf("%w: ranges belong to different documents", document.ErrHostOperationFailed)
	}
	return o, nil
}

func compare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// textView implements document.TextContent.
type textView struct {
	d *Doc
}

// Length implements document.TextContent.
func (v *textView) Length() int {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	return len(v.d.content)
}

// Content implements document.TextContent.
func (v *textView) Content() string {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	return string(v.d.content)
}

// CursorOffset implements document.TextContent.
func (v *textView) CursorOffset() int {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	return v.d.cursor
}

// MoveCursor implements document.TextContent.
func (v *textView) MoveCursor(offset int) int {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	v.d.cursor = v.d.clampLocked(offset)
	return v.d.cursor
}

// InsertAt implements document.TextContent. The offset is clamped to
// content length; the cursor lands after the inserted text.
func (v *textView) InsertAt(offset int, text string) error {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	off := v.d.clampLocked(offset)
	v.d.insertLocked(off, []rune(text))
	v.d.cursor = off + len([]rune(text))
	return nil
}

// ReplaceRange implements document.TextContent.
func (v *textView) ReplaceRange(r document.Range, text string) error {
	m, ok := r.(*mark)
	if !ok || m.d != v.d {
		return fmt.Errorf("%w: range belongs to a different document", document.ErrHostOperationFailed)
	}

	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	if m.staleLocked() {
		return fmt.Errorf("%w: stale range view", document.ErrHostOperationFailed)
	}

	start, end := m.start, m.end
	newEnd := v.d.replaceSpanLocked(start, end, []rune(text))

	m.start = start
	m.end = newEnd
	m.rev = v.d.rev
	return nil
}

// ApplyFormat implements document.TextContent.
func (v *textView) ApplyFormat(r document.Range, f document.Format) error {
	if f.IsZero() {
		return fmt.Errorf("%w: no formatting attributes given", document.ErrInvalidArgument)
	}
	m, ok := r.(*mark)
	if !ok || m.d != v.d {
		return fmt.Errorf("%w: range belongs to a different document", document.ErrHostOperationFailed)
	}

	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	if m.staleLocked() {
		return fmt.Errorf("%w: stale range view", document.ErrHostOperationFailed)
	}
	v.d.applyFormatLocked(m.start, m.end, f)
	return nil
}

// OffsetOf implements document.TextContent.
func (v *textView) OffsetOf(r document.Range) (int, error) {
	m, ok := r.(*mark)
	if !ok || m.d != v.d {
		return 0, fmt.Errorf("%w: range belongs to a different document", document.ErrHostOperationFailed)
	}
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	if m.staleLocked() {
		return 0, fmt.Errorf("%w: stale range view", document.ErrHostOperationFailed)
	}
	return m.start, nil
}

// FindFirst implements document.TextContent.
func (v *textView) FindFirst(query string) document.Range {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	return v.d.findLocked(query, 0)
}

// FindNext implements document.TextContent.
func (v *textView) FindNext(query string, after document.Range) document.Range {
	m, ok := after.(*mark)
	if !ok || m.d != v.d {
		return nil
	}
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	if m.staleLocked() {
		return nil
	}
	return v.d.findLocked(query, m.end)
}

// FindAll implements document.TextContent.
func (v *textView) FindAll(query string) []document.Range {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()

	var out []document.Range
	from := 0
	for {
		m := v.d.findLocked(query, from)
		if m == nil {
			return out
		}
		out = append(out, m)
		from = m.(*mark).end
	}
}

// ReplaceAllRaw implements document.TextContent. It splices directly,
// without consulting redlines: text inside pending deletions is replaced
// like any other.
func (v *textView) ReplaceAllRaw(old, new string) int {
	if old == "" {
		return 0
	}
	v.d.mu.Lock()
	defer v.d.mu.Unlock()

	oldRunes := []rune(old)
	newRunes := []rune(new)
	count := 0
	from := 0
	for {
		idx := indexRunes(v.d.content, oldRunes, from)
		if idx < 0 {
			return count
		}
		v.d.spliceDeleteLocked(idx, idx+len(oldRunes))
		v.d.spliceInsertLocked(idx, newRunes)
		from = idx + len(newRunes)
		count++
	}
}

// findLocked returns a fresh mark over the first occurrence of query at
// or after from, or nil.
func (d *Doc) findLocked(query string, from int) document.Range {
	if query == "" {
		return nil
	}
	idx := indexRunes(d.content, []rune(query), from)
	if idx < 0 {
		return nil
	}
	return d.markLocked(idx, idx+len([]rune(query)))
}

// indexRunes returns the rune offset of the first occurrence of needle
// in haystack at or after from, or -1.
func indexRunes(haystack, needle []rune, from int) int {
	if from < 0 {
		from = 0
	}
	if len(needle) == 0 || from+len(needle) > len(haystack) {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
