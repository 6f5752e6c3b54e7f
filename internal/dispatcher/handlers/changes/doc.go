// Package changes provides handlers for track-changes tools.
//
// This package exposes the tracked-change collection of the active
// document: reading and switching recording state, listing pending
// changes, resolving them one at a time or in bulk, and previewing the
// pending changeset as a diff.
//
// # Change Operations
//
// The ChangesHandler type provides:
//   - get_track_changes_status: Recording and display flags, backlog size
//   - set_track_changes: Switch recording on or off
//   - get_tracked_changes: List pending changes with attribution
//   - accept_tracked_change: Resolve one change by index, keeping it
//   - reject_tracked_change: Resolve one change by index, undoing it
//   - accept_all_changes: Resolve the whole backlog, keeping everything
//   - reject_all_changes: Resolve the whole backlog, undoing everything
//   - get_changes_preview: Diff of the reject-all view against the
//     accept-all view
//
// # Index Volatility
//
// Change indexes are positions in a live collection. Resolving a change
// renumbers the rest, so callers accepting or rejecting several changes
// should re-list between calls or work highest index first.
//
// # Usage
//
// Register the handler with the dispatcher:
//
//	h := changes.NewChangesHandler()
//	d.RegisterHandler(h, h.Names()...)
package changes
