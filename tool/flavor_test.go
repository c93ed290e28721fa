package tool_test

import (
	"context"
	"testing"

	"github.com/toolform/toolform/adapt"
	"github.com/toolform/toolform/tool"
)

func weatherTool(t *testing.T) *tool.Tool {
	t.Helper()
	tl, err := tool.Wrap(adapt.FuncSig{
		Name: "get_weather",
		Doc:  "Get weather",
		Params: []adapt.Param{
			{Name: "city", Type: ""},
			{Name: "units", Type: "", Default: "celsius", HasDefault: true},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	return tl
}

const weatherSchema = `{"type":"object","properties":{"city":{"type":"string"},"units":{"type":"string","default":"celsius"}},"required":["city"]}`

func TestGenericSchema(t *testing.T) {
	got, err := tool.GenericSchema(weatherTool(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"name":"get_weather","description":"Get weather","parameters":` + weatherSchema + `}`
	if string(got) != want {
		t.Fatalf("schema mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestOpenAISchema(t *testing.T) {
	got, err := tool.OpenAISchema(weatherTool(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"type":"function","function":{"name":"get_weather","description":"Get weather","parameters":` + weatherSchema + `}}`
	if string(got) != want {
		t.Fatalf("schema mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestOpenAIStrictSchema(t *testing.T) {
	got, err := tool.OpenAIStrictSchema(weatherTool(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// strict mode: every property required, additionalProperties pinned off
	want := `{"type":"function","function":{"name":"get_weather","description":"Get weather","strict":true,"parameters":` +
		`{"type":"object","properties":{"city":{"type":"string"},"units":{"type":"string","default":"celsius"}},"required":["city","units"],"additionalProperties":false}}}`
	if string(got) != want {
		t.Fatalf("schema mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestResponseFormatSchema(t *testing.T) {
	got, err := tool.ResponseFormatSchema(weatherTool(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"type":"json_schema","json_schema":{"name":"get_weather","description":"Get weather","strict":true,"schema":` +
		`{"type":"object","properties":{"city":{"type":"string"},"units":{"type":"string","default":"celsius"}},"required":["city","units"],"additionalProperties":false}}}`
	if string(got) != want {
		t.Fatalf("schema mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestAnthropicSchema(t *testing.T) {
	got, err := tool.AnthropicSchema(weatherTool(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"name":"get_weather","description":"Get weather","input_schema":` + weatherSchema + `}`
	if string(got) != want {
		t.Fatalf("schema mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestGoogleSchemaStripsDefaults(t *testing.T) {
	got, err := tool.GoogleSchema(weatherTool(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"name":"get_weather","description":"Get weather","parameters":` +
		`{"type":"object","properties":{"city":{"type":"string"},"units":{"type":"string"}},"required":["city"]}}`
	if string(got) != want {
		t.Fatalf("schema mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestFlavorsDoNotMutateCanonicalSchema(t *testing.T) {
	tl := weatherTool(t)
	if _, err := tool.OpenAIStrictSchema(tl); err != nil {
		t.Fatalf("strict: %v", err)
	}
	s, err := tl.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if s.AdditionalProperties != nil {
		t.Fatalf("strict flavor leaked into canonical schema")
	}
	if len(s.Required) != 1 || s.Required[0] != "city" {
		t.Fatalf("required mutated: %v", s.Required)
	}
}
