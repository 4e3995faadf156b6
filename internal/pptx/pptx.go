// Package pptx reads and writes PowerPoint (.pptx) archives for in-place
// text editing. It parses only the slide parts it needs to mutate; every
// other part of the package is carried through serialization verbatim, so
// themes, layouts, media and formatting survive untouched.
//
// Tag matching is prefix-based (p:, a:, r:), which is how PowerPoint and
// python-pptx emit these parts in practice.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
)

// LoadError indicates the source bytes could not be opened as a valid
// presentation. It wraps the underlying cause.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading pptx document: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

// part is one zip entry, kept in original archive order.
type part struct {
	name string
	data []byte
}

// Document is an opened presentation. Slides are ordered as they appear in
// the slide ID list, which is the order the deck presents them.
type Document struct {
	parts  []part
	Slides []*Slide
}

// Open parses a .pptx archive from memory. It returns a *LoadError if the
// bytes are not a readable presentation; no partial document is returned.
func Open(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("reading archive: %w", err)}
	}

	doc := &Document{}
	byName := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &LoadError{Err: fmt.Errorf("opening part %s: %w", f.Name, err)}
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, &LoadError{Err: fmt.Errorf("reading part %s: %w", f.Name, err)}
		}
		doc.parts = append(doc.parts, part{name: f.Name, data: content})
		byName[f.Name] = content
	}

	slideParts, err := slidePartNames(byName)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	for _, name := range slideParts {
		content, ok := byName[name]
		if !ok {
			return nil, &LoadError{Err: fmt.Errorf("slide part %s missing from archive", name)}
		}
		slide, err := parseSlide(name, content)
		if err != nil {
			return nil, &LoadError{Err: fmt.Errorf("parsing %s: %w", name, err)}
		}
		doc.Slides = append(doc.Slides, slide)
	}

	return doc, nil
}

// slidePartNames resolves the presentation's slide order: sldIdLst entries
// reference relationship IDs, which the rels part maps to slide part names.
func slidePartNames(byName map[string][]byte) ([]string, error) {
	relsData, ok := byName[presentationRels]
	if !ok {
		return nil, fmt.Errorf("%s missing from archive", presentationRels)
	}
	rels := etree.NewDocument()
	if err := rels.ReadFromBytes(relsData); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", presentationRels, err)
	}
	targets := make(map[string]string)
	if root := rels.Root(); root != nil {
		for _, rel := range root.ChildElements() {
			if rel.Tag != "Relationship" {
				continue
			}
			targets[rel.SelectAttrValue("Id", "")] = rel.SelectAttrValue("Target", "")
		}
	}

	presData, ok := byName[presentationPart]
	if !ok {
		return nil, fmt.Errorf("%s missing from archive", presentationPart)
	}
	pres := etree.NewDocument()
	if err := pres.ReadFromBytes(presData); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", presentationPart, err)
	}
	root := pres.Root()
	if root == nil {
		return nil, fmt.Errorf("%s has no root element", presentationPart)
	}
	idList := root.SelectElement("p:sldIdLst")
	if idList == nil {
		// A deck with no slides is valid, if unusual.
		return nil, nil
	}

	var names []string
	for _, sldID := range idList.SelectElements("p:sldId") {
		rID := sldID.SelectAttrValue("r:id", "")
		target := targets[rID]
		if target == "" {
			return nil, fmt.Errorf("slide relationship %q unresolved", rID)
		}
		names = append(names, resolvePartName(target))
	}
	return names, nil
}

// resolvePartName turns a relationship target (relative to ppt/) into a
// zip part name.
func resolvePartName(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join("ppt", target))
}

// Serialize writes the presentation back to a .pptx archive. Slide parts are
// regenerated from their XML trees; all other parts are copied through
// unchanged, preserving the original entry order.
func (d *Document) Serialize() ([]byte, error) {
	modified := make(map[string][]byte, len(d.Slides))
	for _, s := range d.Slides {
		data, err := s.xml.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", s.partName, err)
		}
		modified[s.partName] = data
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range d.parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("creating part %s: %w", p.name, err)
		}
		data := p.data
		if m, ok := modified[p.name]; ok {
			data = m
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}
