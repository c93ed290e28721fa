package toolform

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// MessageToAssistant is the fixed guidance string carried by every feedback
// envelope. Agent loops key on it; do not vary it per call.
const MessageToAssistant = "Please pay close attention to the following validation errors and use them to correct your tool inputs."

// FeedbackEnvelope is the fixed-shape report handed back to an assistant so
// it can self-correct tool inputs without the host terminating.
type FeedbackEnvelope struct {
	Success            bool            `json:"success"`
	MessageToAssistant string          `json:"message_to_assistant"`
	Errors             []FeedbackError `json:"errors"`
}

// FeedbackError is one simplified error record of the envelope.
type FeedbackError struct {
	Type  string         `json:"type"`
	Loc   string         `json:"loc"`
	Msg   string         `json:"msg"`
	Input any            `json:"input"`
	Ctx   map[string]any `json:"ctx,omitempty"`
}

// Translate maps an ordered list of validation issues into a feedback
// envelope. It is a pure function: input order is preserved exactly, every
// record field passes through untouched, and it never fails.
func Translate(iss Issues) FeedbackEnvelope {
	out := FeedbackEnvelope{
		Success:            false,
		MessageToAssistant: MessageToAssistant,
		Errors:             make([]FeedbackError, 0, len(iss)),
	}
	for _, it := range iss {
		out.Errors = append(out.Errors, FeedbackError{
			Type:  it.Code,
			Loc:   renderLoc(it.Path),
			Msg:   it.Msg,
			Input: it.Input,
			Ctx:   it.Ctx,
		})
	}
	return out
}

// JSON renders the envelope.
func (f FeedbackEnvelope) JSON() ([]byte, error) {
	return json.Marshal(f)
}

// renderLoc renders a location path as a stable textual tuple, for example
// ('age',) or ('items', 0, 'price'). Single-element paths keep the trailing
// comma.
func renderLoc(path []any) string {
	b := &strings.Builder{}
	b.WriteByte('(')
	for i, seg := range path {
		if i > 0 {
			b.WriteString(", ")
		}
		switch s := seg.(type) {
		case string:
			b.WriteByte('\'')
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`))
			b.WriteByte('\'')
		case int:
			b.WriteString(strconv.Itoa(s))
		default:
			b.WriteString(strconv.Quote(toString(seg)))
		}
	}
	if len(path) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
