// Package search provides handlers for find and replace tools.
//
// Searches run against the visible text: while change recording or
// display is active, matches that sit entirely inside pending tracked
// deletions are skipped, and replacements record new tracked changes
// instead of rewriting content silently. Every payload carries a
// track_changes_active flag so callers know when replacements are
// being recorded.
//
// # Search Operations
//
// The SearchHandler type provides:
//   - find_text: List every visible occurrence with positions
//   - find_and_replace: Replace the first visible occurrence
//   - find_and_replace_all: Replace every visible occurrence
//
// find_and_replace reports replaced false when nothing visible matched;
// that is an outcome, not an error.
package search
