package pptx

import (
	"strings"

	"github.com/beevik/etree"
)

// shapeTags are the spTree children that occupy a shape slot, matching the
// shape set python-pptx iterates. Non-shape children (nvGrpSpPr, grpSpPr)
// do not consume slots.
var shapeTags = map[string]bool{
	"sp":           true,
	"grpSp":        true,
	"graphicFrame": true,
	"cxnSp":        true,
	"pic":          true,
	"contentPart":  true,
}

// Slide is one slide part with its parsed XML tree.
type Slide struct {
	partName string
	xml      *etree.Document
	Shapes   []*Shape
}

// Shape is one shape slot on a slide. Shapes without a text frame (pictures,
// connectors, group shapes) still occupy a slot so positional addressing
// stays stable.
type Shape struct {
	el    *etree.Element
	frame *TextFrame
}

// TextFrame returns the shape's text container, or nil if it has none.
func (s *Shape) TextFrame() *TextFrame {
	return s.frame
}

// TextFrame is a p:txBody holding an ordered list of paragraphs.
type TextFrame struct {
	el         *etree.Element
	Paragraphs []*Paragraph
}

// Paragraph is one a:p element holding an ordered list of runs.
type Paragraph struct {
	el   *etree.Element
	Runs []*Run
}

// Text returns the concatenation of all run texts.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// AddRun appends a new run with the given text. When the paragraph carries
// end-of-paragraph run properties the run is inserted before them, keeping
// the element order schema-valid.
func (p *Paragraph) AddRun(text string) *Run {
	r := etree.NewElement("a:r")
	t := r.CreateElement("a:t")
	t.SetText(text)

	if end := p.el.SelectElement("a:endParaRPr"); end != nil {
		p.el.InsertChildAt(end.Index(), r)
	} else {
		p.el.AddChild(r)
	}

	run := &Run{el: r, t: t}
	p.Runs = append(p.Runs, run)
	return run
}

// Run is one a:r element, a contiguous span of uniformly styled text.
type Run struct {
	el *etree.Element
	t  *etree.Element
}

// Text returns the run's text content.
func (r *Run) Text() string {
	if r.t == nil {
		return ""
	}
	return r.t.Text()
}

// SetText replaces the run's text content, creating the text element if the
// run somehow lacks one.
func (r *Run) SetText(text string) {
	if r.t == nil {
		r.t = r.el.CreateElement("a:t")
	}
	r.t.SetText(text)
}

// parseSlide builds the Slide tree from one slide part's XML.
func parseSlide(partName string, data []byte) (*Slide, error) {
	xml := etree.NewDocument()
	if err := xml.ReadFromBytes(data); err != nil {
		return nil, err
	}

	slide := &Slide{partName: partName, xml: xml}
	root := xml.Root()
	if root == nil {
		return slide, nil
	}
	cSld := root.SelectElement("p:cSld")
	if cSld == nil {
		return slide, nil
	}
	spTree := cSld.SelectElement("p:spTree")
	if spTree == nil {
		return slide, nil
	}

	for _, el := range spTree.ChildElements() {
		if !shapeTags[el.Tag] {
			continue
		}
		slide.Shapes = append(slide.Shapes, parseShape(el))
	}
	return slide, nil
}

func parseShape(el *etree.Element) *Shape {
	shape := &Shape{el: el}
	txBody := el.SelectElement("p:txBody")
	if txBody == nil {
		return shape
	}

	frame := &TextFrame{el: txBody}
	for _, p := range txBody.SelectElements("a:p") {
		para := &Paragraph{el: p}
		for _, r := range p.SelectElements("a:r") {
			para.Runs = append(para.Runs, &Run{el: r, t: r.SelectElement("a:t")})
		}
		frame.Paragraphs = append(frame.Paragraphs, para)
	}
	shape.frame = frame
	return shape
}
