package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-lesson-card",
		Description: "A lesson card",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":   map[string]any{"type": "string"},
				"minutes": map[string]any{"type": "integer", "minimum": 0},
				"level":   map[string]any{"type": "string", "enum": []any{"intro", "core", "expert"}},
			},
			"required": []any{"title", "minutes"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"title":"Photosynthesis","minutes":10,"level":"intro"}`)
	err := validateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"title":"Plate Tectonics","minutes":8}`)
	err := validateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"title":"Entropy"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"title":"Entropy","minutes":"ten"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"title":"Entropy","minutes":9,"level":"advanced"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(``), json.RawMessage("  \n")} {
		if err := validateResponse(testSchema(), raw); !errors.Is(err, ErrEmptyResponse) {
			t.Fatalf("expected ErrEmptyResponse for %q, got: %v", raw, err)
		}
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	err := validateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_ArrayBounds(t *testing.T) {
	schema := &Schema{
		Name:        "test-quiz-bounds",
		Description: "Quiz with bounded options",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"quiz": map[string]any{
					"type":     "array",
					"minItems": 2,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"options": map[string]any{
								"type":     "array",
								"minItems": 4,
								"maxItems": 4,
								"items":    map[string]any{"type": "string"},
							},
						},
						"required": []any{"options"},
					},
				},
			},
			"required": []any{"quiz"},
		},
	}

	valid := json.RawMessage(`{"quiz":[{"options":["a","b","c","d"]},{"options":["e","f","g","h"]}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	tooFewQuestions := json.RawMessage(`{"quiz":[{"options":["a","b","c","d"]}]}`)
	if err := validateResponse(schema, tooFewQuestions); err == nil {
		t.Fatal("expected error for too few questions")
	}

	threeOptions := json.RawMessage(`{"quiz":[{"options":["a","b","c"]},{"options":["e","f","g","h"]}]}`)
	if err := validateResponse(schema, threeOptions); err == nil {
		t.Fatal("expected error for three options")
	}
}

func TestCheckStructured_Truncated(t *testing.T) {
	raw := json.RawMessage(`{"title":"Photosyn`)
	err := checkStructured(testSchema(), "max_tokens", raw)
	var trunc *ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
	if string(trunc.Content) != string(raw) {
		t.Fatalf("expected truncated content to be kept, got %s", trunc.Content)
	}

	if err := checkStructured(nil, "max_tokens", raw); err != nil {
		t.Fatalf("free text may be truncated, got: %v", err)
	}
}
