package slidetext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vixip/internal/pptx"
	"vixip/internal/pptx/pptxtest"
	"vixip/internal/slidetext"
)

func TestParseEdits_BasicLines(t *testing.T) {
	edits := slidetext.ParseEdits("{S0:Sh0:P0} || Hello\n{S1:Sh2:P3} || World")

	require.Len(t, edits, 2)
	assert.Equal(t, "Hello", edits[slidetext.LineID{Slide: 0, Shape: 0, Paragraph: 0}])
	assert.Equal(t, "World", edits[slidetext.LineID{Slide: 1, Shape: 2, Paragraph: 3}])
}

func TestParseEdits_SkipsNonMatchingLines(t *testing.T) {
	payload := "Here are the edits:\n" +
		"{S0:Sh0:P0} || Kept\n" +
		"{S0:Sh0} || missing paragraph index\n" +
		"not a line at all\n" +
		"{S1:Sh0:P0} || Also kept"

	edits := slidetext.ParseEdits(payload)

	require.Len(t, edits, 2)
	assert.Equal(t, "Kept", edits[slidetext.LineID{Slide: 0, Shape: 0, Paragraph: 0}])
	assert.Equal(t, "Also kept", edits[slidetext.LineID{Slide: 1, Shape: 0, Paragraph: 0}])
}

func TestParseEdits_MissingClosingBraceSkipped(t *testing.T) {
	edits := slidetext.ParseEdits("{S0:Sh0:P0} || Good\n{S0:Sh0:P1 || missing brace")

	require.Len(t, edits, 1)
	assert.Equal(t, "Good", edits[slidetext.LineID{Slide: 0, Shape: 0, Paragraph: 0}])
}

func TestParseEdits_DuplicateIDLastWins(t *testing.T) {
	edits := slidetext.ParseEdits("{S0:Sh0:P0} || First\n{S0:Sh0:P0} || Second")

	require.Len(t, edits, 1)
	assert.Equal(t, "Second", edits[slidetext.LineID{Slide: 0, Shape: 0, Paragraph: 0}])
}

func TestParseEdits_WhitespaceAroundSeparator(t *testing.T) {
	edits := slidetext.ParseEdits("{S0:Sh0:P0}||tight\n{S0:Sh0:P1}   ||   padded  ")

	require.Len(t, edits, 2)
	assert.Equal(t, "tight", edits[slidetext.LineID{Slide: 0, Shape: 0, Paragraph: 0}])
	assert.Equal(t, "padded", edits[slidetext.LineID{Slide: 0, Shape: 0, Paragraph: 1}])
}

func TestParseEdits_EmptyReplacementAllowed(t *testing.T) {
	edits := slidetext.ParseEdits("{S0:Sh0:P0} || ")

	require.Len(t, edits, 1)
	assert.Equal(t, "", edits[slidetext.LineID{Slide: 0, Shape: 0, Paragraph: 0}])
}

func TestParseEdits_IDAnywhereInLine(t *testing.T) {
	edits := slidetext.ParseEdits("- {S2:Sh1:P0} || Bulleted by the model")

	require.Len(t, edits, 1)
	assert.Equal(t, "Bulleted by the model", edits[slidetext.LineID{Slide: 2, Shape: 1, Paragraph: 0}])
}

func TestApply_RewritesAddressedParagraph(t *testing.T) {
	doc, err := pptx.Open(pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{pptxtest.Shape("Old title", "Old subtitle")}},
	))
	require.NoError(t, err)

	applied := slidetext.Apply(doc, map[slidetext.LineID]string{
		{Slide: 0, Shape: 0, Paragraph: 0}: "New title",
	})

	assert.Equal(t, 1, applied)
	frame := doc.Slides[0].Shapes[0].TextFrame()
	assert.Equal(t, "New title", frame.Paragraphs[0].Text())
	assert.Equal(t, "Old subtitle", frame.Paragraphs[1].Text(), "untouched paragraph preserved")
}

func TestApply_MultiRunParagraphCollapsesToFirstRun(t *testing.T) {
	doc, err := pptx.Open(pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{
			pptxtest.MultiRunShape([]string{"bold ", "middle ", "tail"}),
		}},
	))
	require.NoError(t, err)

	applied := slidetext.Apply(doc, map[slidetext.LineID]string{
		{Slide: 0, Shape: 0, Paragraph: 0}: "Replacement",
	})

	assert.Equal(t, 1, applied)
	para := doc.Slides[0].Shapes[0].TextFrame().Paragraphs[0]
	require.Len(t, para.Runs, 3, "runs stay in place, only text changes")
	assert.Equal(t, "Replacement", para.Runs[0].Text())
	assert.Equal(t, "", para.Runs[1].Text())
	assert.Equal(t, "", para.Runs[2].Text())
	assert.Equal(t, "Replacement", para.Text())
}

func TestApply_ZeroRunParagraphGainsRun(t *testing.T) {
	doc, err := pptx.Open(pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{
			pptxtest.MultiRunShape([]string{}),
		}},
	))
	require.NoError(t, err)

	applied := slidetext.Apply(doc, map[slidetext.LineID]string{
		{Slide: 0, Shape: 0, Paragraph: 0}: "Filled in",
	})

	assert.Equal(t, 1, applied)
	para := doc.Slides[0].Shapes[0].TextFrame().Paragraphs[0]
	require.Len(t, para.Runs, 1)
	assert.Equal(t, "Filled in", para.Text())
}

func TestApply_OutOfRangeIDsIgnored(t *testing.T) {
	doc, err := pptx.Open(pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{pptxtest.Shape("Only line")}},
	))
	require.NoError(t, err)

	applied := slidetext.Apply(doc, map[slidetext.LineID]string{
		{Slide: 9, Shape: 0, Paragraph: 0}: "No such slide",
		{Slide: 0, Shape: 5, Paragraph: 0}: "No such shape",
		{Slide: 0, Shape: 0, Paragraph: 7}: "No such paragraph",
	})

	assert.Equal(t, 0, applied)
	assert.Equal(t, "Only line", doc.Slides[0].Shapes[0].TextFrame().Paragraphs[0].Text())
}

func TestApply_PictureShapeConsumesIndexSlot(t *testing.T) {
	doc, err := pptx.Open(pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{
			pptxtest.Picture(),
			pptxtest.Shape("Behind the picture"),
		}},
	))
	require.NoError(t, err)

	applied := slidetext.Apply(doc, map[slidetext.LineID]string{
		{Slide: 0, Shape: 1, Paragraph: 0}: "Addressed past the picture",
	})

	assert.Equal(t, 1, applied)
	assert.Equal(t, "Addressed past the picture", doc.Slides[0].Shapes[1].TextFrame().Paragraphs[0].Text())
}

func TestApply_SurvivesSerializeRoundTrip(t *testing.T) {
	doc, err := pptx.Open(pptxtest.Deck(
		pptxtest.SlideSpec{Shapes: []pptxtest.ShapeSpec{pptxtest.Shape("Before")}},
	))
	require.NoError(t, err)

	slidetext.Apply(doc, map[slidetext.LineID]string{
		{Slide: 0, Shape: 0, Paragraph: 0}: "After",
	})

	out, err := doc.Serialize()
	require.NoError(t, err)
	reopened, err := pptx.Open(out)
	require.NoError(t, err)
	assert.Equal(t, "After", reopened.Slides[0].Shapes[0].TextFrame().Paragraphs[0].Text())
}
