package tool

// Provider flavors render a tool's canonical schema in the envelope each
// vendor's function-calling API expects. The parameter schema itself stays
// canonical; flavors only move the name/description out of the document root
// and, where a vendor demands it, derive a stricter or reduced copy.

import (
	json "github.com/goccy/go-json"

	js "github.com/toolform/toolform/jsonschema"
)

type genericEnvelope struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  *js.Schema `json:"parameters"`
}

type openAIEnvelope struct {
	Type     string         `json:"type"`
	Function openAIFunction `json:"function"`
}

type openAIFunction struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Strict      bool       `json:"strict,omitempty"`
	Parameters  *js.Schema `json:"parameters"`
}

type responseFormatEnvelope struct {
	Type       string               `json:"type"`
	JSONSchema responseFormatSchema `json:"json_schema"`
}

type responseFormatSchema struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Strict      bool       `json:"strict"`
	Schema      *js.Schema `json:"schema"`
}

type anthropicEnvelope struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema *js.Schema `json:"input_schema"`
}

// GenericSchema renders {"name", "description", "parameters"}.
func GenericSchema(t *Tool) ([]byte, error) {
	params, err := parameters(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(genericEnvelope{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  params,
	})
}

// OpenAISchema renders the OpenAI function-calling envelope.
func OpenAISchema(t *Tool) ([]byte, error) {
	params, err := parameters(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(openAIEnvelope{
		Type: "function",
		Function: openAIFunction{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  params,
		},
	})
}

// OpenAIStrictSchema renders the OpenAI strict envelope: every object gains
// additionalProperties:false and all of its properties become required.
func OpenAIStrictSchema(t *Tool) ([]byte, error) {
	params, err := parameters(t)
	if err != nil {
		return nil, err
	}
	strictify(params)
	return json.Marshal(openAIEnvelope{
		Type: "function",
		Function: openAIFunction{
			Name:        t.Name(),
			Description: t.Description(),
			Strict:      true,
			Parameters:  params,
		},
	})
}

// ResponseFormatSchema renders the OpenAI structured-output response_format
// envelope. The schema is strictified the same way OpenAIStrictSchema does.
func ResponseFormatSchema(t *Tool) ([]byte, error) {
	params, err := parameters(t)
	if err != nil {
		return nil, err
	}
	strictify(params)
	return json.Marshal(responseFormatEnvelope{
		Type: "json_schema",
		JSONSchema: responseFormatSchema{
			Name:        t.Name(),
			Description: t.Description(),
			Strict:      true,
			Schema:      params,
		},
	})
}

// AnthropicSchema renders {"name", "description", "input_schema"}.
func AnthropicSchema(t *Tool) ([]byte, error) {
	params, err := parameters(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(anthropicEnvelope{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: params,
	})
}

// GoogleSchema renders the generic envelope with defaults stripped, which
// the Gemini function declaration dialect rejects.
func GoogleSchema(t *Tool) ([]byte, error) {
	params, err := parameters(t)
	if err != nil {
		return nil, err
	}
	stripDefaults(params)
	return json.Marshal(genericEnvelope{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  params,
	})
}

// parameters returns a copy of the canonical schema with the root title and
// description popped out (they live in the envelope as name/description).
func parameters(t *Tool) (*js.Schema, error) {
	s, err := t.Schema()
	if err != nil {
		return nil, err
	}
	out := s.Clone()
	out.Title = ""
	out.Description = ""
	return out, nil
}

func strictify(s *js.Schema) {
	if s == nil {
		return
	}
	if s.Type == "object" {
		f := false
		s.AdditionalProperties = &f
		s.Required = make([]string, 0, len(s.Properties))
		for _, p := range s.Properties {
			s.Required = append(s.Required, p.Name)
		}
	}
	for _, p := range s.Properties {
		strictify(p.Schema)
	}
	strictify(s.Items)
}

func stripDefaults(s *js.Schema) {
	if s == nil {
		return
	}
	s.Default, s.HasDefault = nil, false
	for _, p := range s.Properties {
		stripDefaults(p.Schema)
	}
	stripDefaults(s.Items)
}
