// Package pptxtest builds minimal but structurally real .pptx archives in
// memory for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// ShapeSpec describes one shape on a slide. A nil Paragraphs slice with
// NoText set produces a picture-like shape without a text frame, which still
// consumes a shape-index slot.
type ShapeSpec struct {
	NoText bool
	// Paragraphs holds one entry per paragraph; each entry is the list of
	// run texts for that paragraph. An empty inner slice yields a paragraph
	// with zero runs.
	Paragraphs [][]string
}

// SlideSpec describes one slide.
type SlideSpec struct {
	Shapes []ShapeSpec
}

// Shape is shorthand for a text shape with one single-run paragraph per
// given string.
func Shape(paragraphs ...string) ShapeSpec {
	spec := ShapeSpec{}
	for _, p := range paragraphs {
		spec.Paragraphs = append(spec.Paragraphs, []string{p})
	}
	return spec
}

// MultiRunShape is shorthand for a text shape where each entry is one
// paragraph split into multiple runs.
func MultiRunShape(paragraphs ...[]string) ShapeSpec {
	return ShapeSpec{Paragraphs: paragraphs}
}

// Picture is shorthand for a shape without a text frame.
func Picture() ShapeSpec {
	return ShapeSpec{NoText: true}
}

// Deck assembles a .pptx archive from slide specs.
func Deck(slides ...SlideSpec) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(err)
		}
	}

	write("[Content_Types].xml", contentTypes(len(slides)))
	write("_rels/.rels", rootRels)
	write("ppt/presentation.xml", presentation(len(slides)))
	write("ppt/_rels/presentation.xml.rels", presentationRels(len(slides)))
	for i, s := range slides {
		write(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(s))
	}

	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`

func contentTypes(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&sb, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	sb.WriteString(`</Types>`)
	return sb.String()
}

func presentation(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)
	sb.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&sb, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, i)
	}
	sb.WriteString(`</p:sldIdLst>`)
	sb.WriteString(`</p:presentation>`)
	return sb.String()
}

func presentationRels(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&sb, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i, i)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func slideXML(spec SlideSpec) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)
	sb.WriteString(`<p:cSld><p:spTree>`)
	sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sb.WriteString(`<p:grpSpPr/>`)
	for i, shape := range spec.Shapes {
		if shape.NoText {
			fmt.Fprintf(&sb, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:spPr/></p:pic>`, i+2, i+1)
			continue
		}
		fmt.Fprintf(&sb, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/>`, i+2, i+1)
		sb.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
		for _, runs := range shape.Paragraphs {
			sb.WriteString(`<a:p>`)
			for _, run := range runs {
				sb.WriteString(`<a:r><a:rPr lang="en-US"/><a:t>`)
				_ = xml.EscapeText(&sb, []byte(run))
				sb.WriteString(`</a:t></a:r>`)
			}
			sb.WriteString(`<a:endParaRPr lang="en-US"/></a:p>`)
		}
		sb.WriteString(`</p:txBody></p:sp>`)
	}
	sb.WriteString(`</p:spTree></p:cSld></p:sld>`)
	return sb.String()
}
