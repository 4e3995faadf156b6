package pptx_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vixip/internal/pptx"
	"vixip/internal/pptx/pptxtest"
)

func TestOpen_ParsesSlidesShapesParagraphsRuns(t *testing.T) {
	doc, err := pptx.Open(pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{
			pptxtest.Shape("Title"),
			pptxtest.MultiRunShape([]string{"a", "b"}, []string{"c"}),
		}},
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{
			pptxtest.Picture(),
		}},
	))
	require.NoError(t, err)

	require.Len(t, doc.Slides, 2)
	require.Len(t, doc.Slides[0].Shapes, 2)

	frame := doc.Slides[0].Shapes[0].TextFrame()
	require.NotNil(t, frame)
	require.Len(t, frame.Paragraphs, 1)
	assert.Equal(t, "Title", frame.Paragraphs[0].Text())

	frame = doc.Slides[0].Shapes[1].TextFrame()
	require.NotNil(t, frame)
	require.Len(t, frame.Paragraphs, 2)
	require.Len(t, frame.Paragraphs[0].Runs, 2)
	assert.Equal(t, "ab", frame.Paragraphs[0].Text())
	assert.Equal(t, "c", frame.Paragraphs[1].Text())

	require.Len(t, doc.Slides[1].Shapes, 1)
	assert.Nil(t, doc.Slides[1].Shapes[0].TextFrame())
}

func TestOpen_NotAZipArchive(t *testing.T) {
	_, err := pptx.Open([]byte("this is not a presentation"))

	var loadErr *pptx.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "loading pptx document")
}

func TestOpen_ZipWithoutPresentationPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("random.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = pptx.Open(buf.Bytes())
	var loadErr *pptx.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestOpen_SlideRelationshipUnresolved(t *testing.T) {
	// A presentation whose sldIdLst references a relationship the rels
	// part does not define.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	write("ppt/presentation.xml", `<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><p:sldIdLst><p:sldId id="256" r:id="rId99"/></p:sldIdLst></p:presentation>`)
	write("ppt/_rels/presentation.xml.rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`)
	require.NoError(t, zw.Close())

	_, err := pptx.Open(buf.Bytes())
	var loadErr *pptx.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "rId99")
}

func TestSerialize_RoundTripPreservesText(t *testing.T) {
	original := pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{
			pptxtest.Shape("Alpha", "Beta"),
		}},
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{
			pptxtest.Shape("Gamma"),
		}},
	)

	doc, err := pptx.Open(original)
	require.NoError(t, err)
	out, err := doc.Serialize()
	require.NoError(t, err)

	reopened, err := pptx.Open(out)
	require.NoError(t, err)
	require.Len(t, reopened.Slides, 2)
	assert.Equal(t, "Alpha", reopened.Slides[0].Shapes[0].TextFrame().Paragraphs[0].Text())
	assert.Equal(t, "Beta", reopened.Slides[0].Shapes[0].TextFrame().Paragraphs[1].Text())
	assert.Equal(t, "Gamma", reopened.Slides[1].Shapes[0].TextFrame().Paragraphs[0].Text())
}

func TestSerialize_CopiesNonSlidePartsVerbatim(t *testing.T) {
	original := pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{pptxtest.Shape("Text")}},
	)

	doc, err := pptx.Open(original)
	require.NoError(t, err)
	out, err := doc.Serialize()
	require.NoError(t, err)

	want := readParts(t, original)
	got := readParts(t, out)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "ppt/presentation.xml", "ppt/_rels/presentation.xml.rels"} {
		assert.Equal(t, want[name], got[name], "part %s must pass through unmodified", name)
	}
}

func TestSerialize_PreservesPartOrder(t *testing.T) {
	original := pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{pptxtest.Shape("Text")}},
	)

	doc, err := pptx.Open(original)
	require.NoError(t, err)
	out, err := doc.Serialize()
	require.NoError(t, err)

	assert.Equal(t, partNames(t, original), partNames(t, out))
}

func TestOpen_SpecialCharactersInRunText(t *testing.T) {
	doc, err := pptx.Open(pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{
			pptxtest.Shape(`Profit & loss <2024> "draft"`),
		}},
	))
	require.NoError(t, err)

	assert.Equal(t, `Profit & loss <2024> "draft"`, doc.Slides[0].Shapes[0].TextFrame().Paragraphs[0].Text())

	out, err := doc.Serialize()
	require.NoError(t, err)
	reopened, err := pptx.Open(out)
	require.NoError(t, err)
	assert.Equal(t, `Profit & loss <2024> "draft"`, reopened.Slides[0].Shapes[0].TextFrame().Paragraphs[0].Text())
}

func readParts(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		parts[f.Name] = content
	}
	return parts
}

func partNames(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}
