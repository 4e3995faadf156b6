// Package slidetext implements the positional text protocol used to hand
// slide content to a language model and apply its rewrites back.
//
// Each editable paragraph is addressed by a (slide, shape, paragraph)
// ordinal triple and carried on the wire as one line:
//
//	{S<slide>:Sh<shape>:P<paragraph>} || <text>
//
// There is no escaping mechanism for the field separator: a literal "||"
// inside replacement text corrupts that line's parse. This is a known
// protocol limitation.
package slidetext

import "fmt"

// DefaultSeparator is the token that marks the start of the edit payload in
// model output. Any exact occurrence anywhere in the stream triggers the
// preamble-to-payload transition.
const DefaultSeparator = "@@@_START_SLIDE_CONTENT_@@@"

// LineID addresses one paragraph by its zero-based position in the deck:
// slide within document, shape within slide, paragraph within the shape's
// text frame. IDs are stable across extract and patch as long as the deck's
// structure is not reordered in between.
type LineID struct {
	Slide     int
	Shape     int
	Paragraph int
}

func (id LineID) String() string {
	return fmt.Sprintf("{S%d:Sh%d:P%d}", id.Slide, id.Shape, id.Paragraph)
}

// Line is one addressed unit of extracted slide text.
type Line struct {
	ID   LineID
	Text string
}

// Format renders the line in wire format.
func (l Line) Format() string {
	return fmt.Sprintf("%s || %s", l.ID, l.Text)
}
