package lessons

import "github.com/atulsharma648-byte/ASMan/internal/llm"

var questionDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 2,
		},
		"correct":     map[string]any{"type": "integer", "minimum": 0},
		"explanation": map[string]any{"type": "string"},
	},
	"required": []any{"question", "options", "correct"},
}

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var glossaryDefinition = map[string]any{
	"type":                 "object",
	"additionalProperties": map[string]any{"type": "string"},
}

// FlatLessonSchema is the shape requested by the standard variant.
var FlatLessonSchema = &llm.Schema{
	Name:        "flat-lesson",
	Description: "Lesson with direct explanation, questions, activity, method and glossary fields",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{"type": "string", "minLength": 1},
			"questions": map[string]any{
				"type":     "array",
				"items":    questionDefinition,
				"minItems": 1,
			},
			"activity":         map[string]any{"type": "string"},
			"globalMethod":     map[string]any{"type": "string"},
			"hindiTranslation": glossaryDefinition,
		},
		"required": []any{"explanation", "questions", "activity", "globalMethod", "hindiTranslation"},
	},
}

// StructuredLessonSchema is the nested shape requested by the
// global-enhanced variant.
var StructuredLessonSchema = &llm.Schema{
	Name:        "structured-lesson",
	Description: "Lesson with nested introduction, explanation, interactive, activity, method, conclusion and notes sections",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lessonTitle": map[string]any{"type": "string"},
			"ageGroup":    map[string]any{"type": "string"},
			"duration":    map[string]any{"type": "string"},
			"introduction": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"hook":      map[string]any{"type": "string"},
					"objective": map[string]any{"type": "string"},
				},
			},
			"explanation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mainContent": map[string]any{"type": "string", "minLength": 1},
					"keyPoints":   stringList,
					"examples":    stringList,
				},
				"required": []any{"mainContent"},
			},
			"interactiveSection": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"questions": map[string]any{
						"type":     "array",
						"items":    questionDefinition,
						"minItems": 1,
					},
					"participation": map[string]any{"type": "string"},
				},
				"required": []any{"questions"},
			},
			"handsonActivity": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":      map[string]any{"type": "string"},
					"materials":  stringList,
					"steps":      stringList,
					"timeNeeded": map[string]any{"type": "string"},
				},
			},
			"globalMethod": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"style":          map[string]any{"type": "string"},
					"application":    map[string]any{"type": "string"},
					"culturalBridge": map[string]any{"type": "string"},
				},
			},
			"conclusion": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"summary":    map[string]any{"type": "string"},
					"homework":   map[string]any{"type": "string"},
					"nextLesson": map[string]any{"type": "string"},
				},
			},
			"languageSupport": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"hindiKeyTerms": glossaryDefinition,
				},
			},
			"teacherNotes": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tips":           stringList,
					"commonMistakes": stringList,
					"extensions":     stringList,
				},
			},
		},
		"required": []any{"explanation", "interactiveSection"},
	},
}
