package slidetext

import (
	"regexp"
	"strconv"
	"strings"

	"vixip/internal/pptx"
)

// editLine matches one payload line anywhere in its text, tolerating
// whitespace around the field separator. Capture groups: slide, shape,
// paragraph indices and the replacement text.
var editLine = regexp.MustCompile(`\{S(\d+):Sh(\d+):P(\d+)\}\s*\|\|\s*(.*)`)

// ParseEdits extracts (LineID, replacement) pairs from a raw payload.
// Lines that do not match the wire format are skipped silently; stray model
// commentary must never abort the remaining valid lines. Duplicate IDs
// resolve last-seen-wins.
func ParseEdits(payload string) map[LineID]string {
	edits := make(map[LineID]string)
	for _, line := range strings.Split(payload, "\n") {
		m := editLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		slide, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		shape, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		para, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		id := LineID{Slide: slide, Shape: shape, Paragraph: para}
		edits[id] = strings.TrimSpace(m[4])
	}
	return edits
}

// Apply rewrites the addressed paragraphs in place and returns how many
// edits landed. The first run keeps its formatting and receives the
// replacement text; any further runs are blanked so stale text disappears.
// A paragraph with no runs gets one new run. Paragraphs not addressed by
// the edit set, and IDs that address nothing, are left alone.
func Apply(doc *pptx.Document, edits map[LineID]string) int {
	applied := 0
	for si, slide := range doc.Slides {
		for shi, shape := range slide.Shapes {
			frame := shape.TextFrame()
			if frame == nil {
				continue
			}
			for pi, para := range frame.Paragraphs {
				text, ok := edits[LineID{Slide: si, Shape: shi, Paragraph: pi}]
				if !ok {
					continue
				}
				if len(para.Runs) > 0 {
					para.Runs[0].SetText(text)
					for _, r := range para.Runs[1:] {
						r.SetText("")
					}
				} else {
					para.AddRun(text)
				}
				applied++
			}
		}
	}
	return applied
}
