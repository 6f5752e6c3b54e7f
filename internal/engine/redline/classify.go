// Package redline implements the tracked-change layer: classifying text
// ranges against pending deletions, and listing, resolving, and
// previewing the document's redline collection.
package redline

import "github.com/dshills/redline/internal/document"

// InTrackedDeletion reports whether target is fully contained in the
// anchor of some pending deletion. A comparison failure on a given
// redline means that redline does not claim the range: classification
// fails open so a search never dies on a view that went stale
// mid-operation. Linear scan; pending redlines number in the tens.
func InTrackedDeletion(target document.Range, rl document.Redlines) bool {
	if target == nil || rl == nil {
		return false
	}
	count := rl.Count()
	for i := 0; i < count; i++ {
		item, err := rl.At(i)
		if err != nil {
			continue
		}
		if item.Type() != document.RedlineDelete {
			continue
		}
		if containedIn(target, item.Anchor()) {
			return true
		}
	}
	return false
}

// containedIn reports whether target lies fully inside anchor: target
// starts at or after anchor's start and ends at or before anchor's end.
func containedIn(target, anchor document.Range) bool {
	if anchor == nil {
		return false
	}
	starts, err := target.CompareStarts(anchor)
	if err != nil {
		return false
	}
	ends, err := target.CompareEnds(anchor)
	if err != nil {
		return false
	}
	return starts >= 0 && ends <= 0
}
