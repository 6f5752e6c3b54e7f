// Package content implements whole-document inspection and annotation
// operations: document info, full text retrieval, and the comment list.
package content

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/engine/paragraph"
	"github.com/dshills/redline/internal/engine/redline"
	"github.com/dshills/redline/internal/logging"
)

const timestampLayout = "2006-01-02T15:04:05"

// Service is the inspection operation set.
type Service struct {
	log *slog.Logger
}

// NewService creates the service.
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{log: log}
}

// Info summarizes one open document. Counts are zero for documents
// without the corresponding capability.
type Info struct {
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	Kind           string         `json:"type"`
	Modified       bool           `json:"modified"`
	WordCount      int            `json:"word_count"`
	CharacterCount int            `json:"character_count"`
	ParagraphCount int            `json:"paragraph_count"`
	TrackChanges   redline.Status `json:"track_changes"`
	HasSelection   bool           `json:"has_selection"`
}

// TextData is the document's full text. Visible is set only while
// changes are recorded, with pending deletions elided.
type TextData struct {
	Content string  `json:"content"`
	Length  int     `json:"length"`
	Visible *string `json:"visible_content,omitempty"`
}

const anchorCap = 100

// CommentInfo describes one annotation. AnchorText is the first stretch
// of the text the comment is attached to, empty for a collapsed anchor.
type CommentInfo struct {
	ID         string `json:"id"`
	Author     string `json:"author"`
	Content    string `json:"content"`
	Date       string `json:"date"`
	AnchorText string `json:"anchor_text"`
	Paragraph  int    `json:"paragraph"`
}

// Info reports document metadata and content statistics. Fields whose
// capability the document lacks stay at their zero values; only a
// missing document is an error.
func (s *Service) Info(h *document.Handle) (Info, error) {
	if h == nil {
		return Info{}, document.ErrNoActiveDocument
	}

	info := Info{Kind: string(h.Kind())}
	if meta := h.Metadata(); meta != nil {
		info.Title = meta.Title()
		info.URL = meta.URL()
		info.Modified = meta.Modified()
	}
	if text, err := h.Text(); err == nil {
		info.WordCount = len(strings.Fields(text.Content()))
		info.CharacterCount = text.Length()
	}
	if paras, err := paragraph.Paragraphs(h); err == nil {
		info.ParagraphCount = len(paras)
	}
	if rl, err := h.Redlines(); err == nil {
		info.TrackChanges = redline.Status{
			Recording: rl.Recording(),
			Showing:   rl.Showing(),
			Pending:   rl.Count(),
		}
	}
	if sel, err := h.Selection(); err == nil {
		info.HasSelection = sel.Active()
	}
	return info, nil
}

// Text returns the full raw content. While changes are recorded it also
// computes the visible rendition so callers can tell what the document
// reads like with pending deletions stripped.
func (s *Service) Text(h *document.Handle) (TextData, error) {
	tc, err := h.Text()
	if err != nil {
		return TextData{}, err
	}

	data := TextData{Content: tc.Content(), Length: tc.Length()}

	rl, err := h.Redlines()
	if err != nil || !rl.Recording() {
		return data, nil
	}
	paras, err := paragraph.Paragraphs(h)
	if err != nil {
		s.log.Warn("visible content unavailable", "error", err)
		return data, nil
	}

	parts := make([]string, len(paras))
	for i, p := range paras {
		parts[i] = paragraph.VisibleText(p, rl)
	}
	visible := strings.Join(parts, "\n")
	data.Visible = &visible
	return data, nil
}

// Comments lists the document's annotations in document order.
func (s *Service) Comments(h *document.Handle) ([]CommentInfo, error) {
	cms, err := h.Comments()
	if err != nil {
		return nil, err
	}

	list := cms.List()
	infos := make([]CommentInfo, 0, len(list))
	for _, c := range list {
		infos = append(infos, s.describe(h, c))
	}
	return infos, nil
}

// AddComment anchors a new comment at the view cursor, or over the
// active selection when the host supports that.
func (s *Service) AddComment(h *document.Handle, text, author string) (CommentInfo, error) {
	if strings.TrimSpace(text) == "" {
		return CommentInfo{}, fmt.Errorf("%w: comment text must not be empty", document.ErrInvalidArgument)
	}
	cms, err := h.Comments()
	if err != nil {
		return CommentInfo{}, err
	}

	c, err := cms.AddAtCursor(text, author)
	if err != nil {
		return CommentInfo{}, fmt.Errorf("%w: add comment: %v", document.ErrHostOperationFailed, err)
	}
	return s.describe(h, c), nil
}

// describe resolves one comment's attributes. Anchor text and paragraph
// are best effort: empty and 0 when the anchor can no longer be located.
func (s *Service) describe(h *document.Handle, c document.Comment) CommentInfo {
	info := CommentInfo{
		ID:      c.ID(),
		Author:  c.Author(),
		Content: c.Text(),
		Date:    c.Timestamp().Format(timestampLayout),
	}
	if anchored, err := c.Anchor().Text(); err == nil {
		info.AnchorText = truncate(anchored, anchorCap)
	}

	tc, err := h.Text()
	if err != nil {
		return info
	}
	paras, err := paragraph.Paragraphs(h)
	if err != nil {
		return info
	}
	offset, err := tc.OffsetOf(c.Anchor())
	if err != nil {
		s.log.Warn("comment anchor unreadable", "id", c.ID(), "error", err)
		return info
	}
	info.Paragraph = paragraph.NumberAt(paras, offset)
	return info
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
