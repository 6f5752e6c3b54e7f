package memdoc

import "github.com/dshills/redline/internal/document"

// selView implements document.Selection.
type selView struct {
	d *Doc
}

// Active implements document.Selection.
func (v *selView) Active() bool {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	return v.d.selActive
}

// Select implements document.Selection. Offsets are clamped to the
// content and swapped if reversed; the cursor moves to the selection
// end. A collapsed span only moves the cursor.
func (v *selView) Select(start, end int) error {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()

	start = v.d.clampLocked(start)
	end = v.d.clampLocked(end)
	if end < start {
		start, end = end, start
	}
	v.d.selStart, v.d.selEnd = start, end
	v.d.selActive = end > start
	v.d.cursor = end
	return nil
}

// Clear implements document.Selection.
func (v *selView) Clear() {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	v.d.selActive = false
}

// Text implements document.Selection.
func (v *selView) Text() (string, error) {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	if !v.d.selActive {
		return "", nil
	}
	return string(v.d.content[v.d.selStart:v.d.selEnd]), nil
}

// Range implements document.Selection. Returns nil when nothing is
// selected.
func (v *selView) Range() (document.Range, error) {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()
	if !v.d.selActive {
		return nil, nil
	}
	return v.d.markLocked(v.d.selStart, v.d.selEnd), nil
}

// Replace implements document.Selection. With change recording on the
// old text is kept as a pending deletion and the new text inserted
// after it; otherwise the span is replaced outright. The selection is
// cleared and the cursor lands after the inserted text.
func (v *selView) Replace(text string) error {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	if !v.d.selActive {
		return nil
	}
	start, end := v.d.selStart, v.d.selEnd
	v.d.selActive = false
	v.d.cursor = v.d.replaceSpanLocked(start, end, []rune(text))
	return nil
}
