package ast

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// To returns a span from the start of s to the end of other.
func (s Span) To(other Span) Span {
	return Span{Start: s.Start, End: other.End}
}

func (s Span) IsZero() bool {
	return s == Span{}
}

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}
