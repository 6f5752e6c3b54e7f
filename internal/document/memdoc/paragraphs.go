package memdoc

import (
	"sort"

	"github.com/dshills/redline/internal/document"
)

// DefaultStyle is the paragraph style applied where no other style is
// set.
const DefaultStyle = "Default Paragraph Style"

// paraView implements document.ParagraphStructure.
type paraView struct {
	d *Doc
}

// Elements implements document.ParagraphStructure. Every element is a
// paragraph; spans are captured at enumeration time.
func (v *paraView) Elements() []document.Element {
	v.d.mu.RLock()
	defer v.d.mu.RUnlock()

	spans := v.d.paragraphSpansLocked()
	out := make([]document.Element, len(spans))
	for i, span := range spans {
		out[i] = &memPara{
			d:     v.d,
			text:  string(v.d.content[span[0]:span[1]]),
			style: v.d.styles[i],
			start: span[0],
			end:   span[1],
			rev:   v.d.rev,
		}
	}
	return out
}

// paragraphSpansLocked returns the [start, end) span of every paragraph,
// excluding the separating newlines. Empty content is one empty
// paragraph.
func (d *Doc) paragraphSpansLocked() [][2]int {
	var spans [][2]int
	start := 0
	for i, r := range d.content {
		if r == '\n' {
			spans = append(spans, [2]int{start, i})
			start = i + 1
		}
	}
	spans = append(spans, [2]int{start, len(d.content)})
	return spans
}

// memPara is one paragraph captured at enumeration time.
type memPara struct {
	d     *Doc
	text  string
	style string
	start int
	end   int
	rev   int64
}

// Kind implements document.Element.
func (p *memPara) Kind() document.ElementKind { return document.ElementParagraph }

// Text implements document.Paragraph.
func (p *memPara) Text() string { return p.text }

// Style implements document.Paragraph.
func (p *memPara) Style() string { return p.style }

// Portions implements document.Paragraph. Portions split at redline
// boundaries so each is uniformly inside or outside any pending change.
// If the document mutated since enumeration the paragraph is returned as
// a single portion over a stale view.
func (p *memPara) Portions() []document.Portion {
	p.d.mu.RLock()
	defer p.d.mu.RUnlock()

	if p.rev != p.d.rev {
		return []document.Portion{memPortion{
			text: p.text,
			rng:  &mark{d: p.d, start: p.start, end: p.end, rev: p.rev},
		}}
	}

	cuts := []int{p.start, p.end}
	for _, r := range p.d.records {
		if r.start > p.start && r.start < p.end {
			cuts = append(cuts, r.start)
		}
		if r.end > p.start && r.end < p.end {
			cuts = append(cuts, r.end)
		}
	}
	sort.Ints(cuts)

	var out []document.Portion
	for i := 0; i+1 < len(cuts); i++ {
		s, e := cuts[i], cuts[i+1]
		if s == e {
			continue
		}
		out = append(out, memPortion{
			text: string(p.d.content[s:e]),
			rng:  p.d.markLocked(s, e),
		})
	}
	if len(out) == 0 {
		out = append(out, memPortion{text: "", rng: p.d.markLocked(p.start, p.end)})
	}
	return out
}

// memPortion is a uniform run of paragraph content.
type memPortion struct {
	text string
	rng  *mark
}

// Text implements document.Portion.
func (p memPortion) Text() string { return p.text }

// Range implements document.Portion.
func (p memPortion) Range() document.Range { return p.rng }
