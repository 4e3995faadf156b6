package slidetext

import (
	"strings"

	"vixip/internal/pptx"
)

// Lines walks the deck in document order and returns one Line per paragraph
// whose trimmed run text is non-empty. Shapes without a text frame and
// blank paragraphs produce no line but still consume their index slot, so
// addressing stays stable.
func Lines(doc *pptx.Document) []Line {
	var lines []Line
	for si, slide := range doc.Slides {
		for shi, shape := range slide.Shapes {
			frame := shape.TextFrame()
			if frame == nil {
				continue
			}
			for pi, para := range frame.Paragraphs {
				text := strings.TrimSpace(para.Text())
				if text == "" {
					continue
				}
				lines = append(lines, Line{
					ID:   LineID{Slide: si, Shape: shi, Paragraph: pi},
					Text: text,
				})
			}
		}
	}
	return lines
}

// Extract returns the newline-joined wire form of the deck's addressable
// text, the snapshot sent to the model.
func Extract(doc *pptx.Document) string {
	lines := Lines(doc)
	formatted := make([]string, len(lines))
	for i, l := range lines {
		formatted[i] = l.Format()
	}
	return strings.Join(formatted, "\n")
}
