package pathutil

import (
	"strconv"
	"strings"
)

type segment struct {
	text  string
	index bool
}

// PathBuilder accumulates traversal steps with push/pop semantics.
// Nothing is rendered until String or Pointer is called.
type PathBuilder struct {
	segments []segment
}

// Push adds an object key step.
func (p *PathBuilder) Push(key string) {
	p.segments = append(p.segments, segment{text: key})
}

// PushIndex adds an array index step.
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, segment{text: strconv.Itoa(i), index: true})
}

// Pop removes the last step. Popping an empty builder is a no-op.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Len returns the number of steps.
func (p *PathBuilder) Len() int { return len(p.segments) }

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
}

// String renders the dotted form: keys joined by ".", indices as "[i]".
func (p *PathBuilder) String() string {
	var b strings.Builder
	for i, seg := range p.segments {
		switch {
		case seg.index:
			b.WriteByte('[')
			b.WriteString(seg.text)
			b.WriteByte(']')
		case i > 0:
			b.WriteByte('.')
			b.WriteString(seg.text)
		default:
			b.WriteString(seg.text)
		}
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders the steps as a JSON Pointer URI fragment ("#/a/b/0").
func (p *PathBuilder) Pointer() string {
	var b strings.Builder
	b.WriteByte('#')
	for _, seg := range p.segments {
		b.WriteByte('/')
		if seg.index {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(pointerEscaper.Replace(seg.text))
	}
	return b.String()
}
