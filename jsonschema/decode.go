package jsonschema

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Decode parses a serialized schema document while preserving the key order
// of properties, required names, and definitions. It reads the token stream
// directly because a round trip through map[string]any would lose order.
//
// Keys outside the supported dialect are skipped; this is an opinionated
// importer, not a draft-compliant one.
func Decode(data []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	s, err := decodeSchemaValue(dec)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DecodeValue parses one JSON value generically, preserving object key order
// (objects come back as Object, arrays as []any, numbers as json.Number).
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeSchemaValue(dec *json.Decoder) (*Schema, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("jsonschema: expected object, got %v", tok)
	}
	return decodeSchemaMembers(dec)
}

func decodeSchemaMembers(dec *json.Decoder) (*Schema, error) {
	s := &Schema{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %w", err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return s, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonschema: expected key, got %v", tok)
		}
		switch key {
		case "type":
			if s.Type, err = decodeString(dec, key); err != nil {
				return nil, err
			}
		case "description":
			if s.Description, err = decodeString(dec, key); err != nil {
				return nil, err
			}
		case "format":
			if s.Format, err = decodeString(dec, key); err != nil {
				return nil, err
			}
		case "pattern":
			if s.Pattern, err = decodeString(dec, key); err != nil {
				return nil, err
			}
		case "title":
			if s.Title, err = decodeString(dec, key); err != nil {
				return nil, err
			}
		case "$ref":
			if s.Ref, err = decodeString(dec, key); err != nil {
				return nil, err
			}
		case "enum":
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("jsonschema: enum must be an array")
			}
			s.Enum = arr
		case "properties":
			if s.Properties, err = decodeProps(dec); err != nil {
				return nil, err
			}
		case "$defs", "definitions":
			defs, err := decodeProps(dec)
			if err != nil {
				return nil, err
			}
			s.Defs = append(s.Defs, defs...)
		case "required":
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("jsonschema: required must be an array")
			}
			names := make([]string, 0, len(arr))
			for _, e := range arr {
				name, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("jsonschema: required entries must be strings")
				}
				names = append(names, name)
			}
			s.Required = names
		case "items":
			if s.Items, err = decodeSchemaValue(dec); err != nil {
				return nil, err
			}
		case "minimum":
			if s.Minimum, err = decodeFloat(dec, key); err != nil {
				return nil, err
			}
		case "maximum":
			if s.Maximum, err = decodeFloat(dec, key); err != nil {
				return nil, err
			}
		case "minLength":
			if s.MinLength, err = decodeInt(dec, key); err != nil {
				return nil, err
			}
		case "maxLength":
			if s.MaxLength, err = decodeInt(dec, key); err != nil {
				return nil, err
			}
		case "minItems":
			if s.MinItems, err = decodeInt(dec, key); err != nil {
				return nil, err
			}
		case "maxItems":
			if s.MaxItems, err = decodeInt(dec, key); err != nil {
				return nil, err
			}
		case "allOf":
			if s.AllOf, err = decodeSchemaList(dec); err != nil {
				return nil, err
			}
		case "default":
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			s.Default, s.HasDefault = v, true
		default:
			// outside the dialect: consume and drop
			if _, err := decodeValue(dec); err != nil {
				return nil, err
			}
		}
	}
}

func decodeProps(dec *json.Decoder) ([]Property, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("jsonschema: expected object of schemas, got %v", tok)
	}
	props := []Property{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %w", err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return props, nil
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonschema: expected property name, got %v", tok)
		}
		sub, err := decodeSchemaValue(dec)
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Name: name, Schema: sub})
	}
}

func decodeSchemaList(dec *json.Decoder) ([]*Schema, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("jsonschema: expected array of schemas, got %v", tok)
	}
	var list []*Schema
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %w", err)
		}
		if d, ok := tok.(json.Delim); ok {
			if d == ']' {
				return list, nil
			}
			if d != '{' {
				return nil, fmt.Errorf("jsonschema: expected schema, got %v", tok)
			}
			sub, err := decodeSchemaMembers(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, sub)
			continue
		}
		return nil, fmt.Errorf("jsonschema: expected schema, got %v", tok)
	}
}

func decodeString(dec *json.Decoder, key string) (string, error) {
	v, err := decodeValue(dec)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("jsonschema: %s must be a string", key)
	}
	return s, nil
}

func decodeFloat(dec *json.Decoder, key string) (*float64, error) {
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	num, ok := v.(json.Number)
	if !ok {
		return nil, fmt.Errorf("jsonschema: %s must be a number", key)
	}
	f, err := strconv.ParseFloat(num.String(), 64)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %s: %w", key, err)
	}
	return &f, nil
}

func decodeInt(dec *json.Decoder, key string) (*int, error) {
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	num, ok := v.(json.Number)
	if !ok {
		return nil, fmt.Errorf("jsonschema: %s must be a number", key)
	}
	i64, err := num.Int64()
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %s: %w", key, err)
	}
	i := int(i64)
	return &i, nil
}

// decodeValue reads one JSON value generically. Objects come back as ordered
// Object slices so that re-serialization keeps key order.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	return decodeValueFrom(dec, tok)
}

func decodeValueFrom(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := Object{}
			for {
				kt, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("jsonschema: %w", err)
				}
				if d, ok := kt.(json.Delim); ok && d == '}' {
					return obj, nil
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("jsonschema: expected key, got %v", kt)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj = append(obj, Member{Name: key, Value: v})
			}
		case '[':
			arr := []any{}
			for {
				et, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("jsonschema: %w", err)
				}
				if d, ok := et.(json.Delim); ok && d == ']' {
					return arr, nil
				}
				v, err := decodeValueFrom(dec, et)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
		}
		return nil, fmt.Errorf("jsonschema: unexpected delimiter %v", t)
	default:
		// string, json.Number, bool, nil
		return tok, nil
	}
}
