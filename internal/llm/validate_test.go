package llm

import (
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "A test question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
				"correct": map[string]any{"type": "integer", "minimum": 0},
			},
			"required": []any{"question", "options", "correct"},
		},
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"2+2?","options":["3","4"],"correct":1}`, false},
		{"missing required", `{"question":"2+2?","options":["3","4"]}`, true},
		{"too few options", `{"question":"2+2?","options":["4"],"correct":0}`, true},
		{"wrong type", `{"question":"2+2?","options":["3","4"],"correct":"1"}`, true},
		{"negative index", `{"question":"2+2?","options":["3","4"],"correct":-1}`, true},
		{"malformed", `{"question":`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(testSchema(), []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	if err := ValidateJSON(nil, []byte(`not json`)); err != nil {
		t.Fatalf("expected nil for nil schema, got %v", err)
	}
}
