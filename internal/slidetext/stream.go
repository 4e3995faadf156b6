package slidetext

import (
	"strings"

	"vixip/internal/domain"
)

// State is the collector's position in the model's output stream.
type State int

const (
	// StatePreamble accumulates reasoning text while watching for the
	// separator.
	StatePreamble State = iota
	// StatePayload accumulates edit payload after the separator was seen.
	StatePayload
)

func (s State) String() string {
	if s == StatePayload {
		return "payload"
	}
	return "preamble"
}

// Collector is a pure two-state reducer over a model's output fragments.
// It separates free-form reasoning (preamble) from the edit payload using a
// separator token, and recovers a best-effort payload when the model never
// emits the separator. It performs no I/O; progress reporting belongs to
// callers observing Feed's transition signal.
type Collector struct {
	separator string
	state     State
	preamble  string
	payload   strings.Builder
}

// NewCollector creates a Collector for the given separator token. The match
// is exact and case-sensitive.
func NewCollector(separator string) *Collector {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Collector{separator: separator}
}

// State reports the collector's current state.
func (c *Collector) State() State {
	return c.state
}

// Feed consumes one stream fragment and reports whether this fragment
// completed the preamble-to-payload transition. The separator check runs
// over the whole accumulated preamble, not the fragment alone, so a
// separator split across fragment boundaries is still found. Text after
// the first separator occurrence belongs to the payload; the separator
// itself and everything before it is discarded.
func (c *Collector) Feed(fragment string) bool {
	if c.state == StatePayload {
		c.payload.WriteString(fragment)
		return false
	}

	c.preamble += fragment
	idx := strings.Index(c.preamble, c.separator)
	if idx < 0 {
		return false
	}

	c.state = StatePayload
	c.payload.WriteString(c.preamble[idx+len(c.separator):])
	return true
}

// Finalize ends the stream and returns the payload with the outcome that
// produced it. If the separator never appeared, the preamble is scanned
// line by line and lines carrying both a brace and the field separator are
// kept as a recovered payload; models that ignore formatting instructions
// still usually emit the addressed lines themselves. When nothing usable
// remains the outcome is empty and domain.ErrNoEditsProduced is returned.
func (c *Collector) Finalize() (string, domain.TransformOutcome, error) {
	if c.state == StatePayload {
		payload := c.payload.String()
		if strings.TrimSpace(payload) == "" {
			return "", domain.OutcomeEmpty, domain.ErrNoEditsProduced
		}
		return payload, domain.OutcomeClean, nil
	}

	var kept []string
	for _, line := range strings.Split(c.preamble, "\n") {
		if strings.Contains(line, "||") && strings.Contains(line, "{") {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return "", domain.OutcomeEmpty, domain.ErrNoEditsProduced
	}
	return strings.Join(kept, "\n"), domain.OutcomeRecovered, nil
}
