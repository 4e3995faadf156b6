package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vixip/internal/llm"
)

func TestBuildChatPrompt(t *testing.T) {
	got := llm.BuildChatPrompt("{S0:Sh0:P0} || Title", "What is this deck about?")

	assert.Equal(t, "PPTX Content:\n{S0:Sh0:P0} || Title\n\nUser Question: What is this deck about?", got)
}

func TestBuildTransformSystemPrompt(t *testing.T) {
	got := llm.BuildTransformSystemPrompt("@@@_SEP_@@@")

	// The separator token appears verbatim so the collector can find it in
	// the model's output.
	assert.Contains(t, got, "@@@_SEP_@@@")
	assert.Contains(t, got, "{S#:Sh#:P#} || Text")
	assert.Contains(t, got, "PLAN")
}

func TestBuildTransformUserPrompt(t *testing.T) {
	got := llm.BuildTransformUserPrompt("Make it punchier", "{S0:Sh0:P0} || Old text")

	assert.Equal(t, "INSTRUCTION: Make it punchier\n\nDATA:\n{S0:Sh0:P0} || Old text", got)
}
