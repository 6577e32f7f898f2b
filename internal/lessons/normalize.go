package lessons

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"

	"github.com/atulsharma648-byte/ASMan/internal/llm"
)

// Stage names the normalizer step that rejected a response.
type Stage string

const (
	StageParse     Stage = "parse"
	StageClassify  Stage = "classify"
	StageSchema    Stage = "schema"
	StageInvariant Stage = "invariant"
)

// NormalizeError reports why raw provider text could not become a lesson.
type NormalizeError struct {
	Stage Stage
	Err   error
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("normalize lesson (%s): %v", e.Stage, e.Err)
}

func (e *NormalizeError) Unwrap() error { return e.Err }

// Shape is the schema family a provider response was classified into.
type Shape string

const (
	ShapeFlat       Shape = "flat"
	ShapeStructured Shape = "structured"
)

// ExpectedShape is the shape requested by the prompt for variant v.
func (v Variant) ExpectedShape() Shape {
	if v.IsGlobal() {
		return ShapeStructured
	}
	return ShapeFlat
}

// StripFences removes a leading code fence (bare or language-tagged) and a
// trailing fence, plus surrounding whitespace.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		s = strings.TrimLeftFunc(rest, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
		})
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// candidate is one of the two tagged lesson shapes.
type candidate interface {
	canonical(v Variant) LessonContent
}

// Normalize turns raw provider text into a canonical lesson. It either
// returns a lesson satisfying Validate or a *NormalizeError, never a
// partially filled value.
func Normalize(raw string, v Variant) (*LessonContent, error) {
	lesson, _, err := normalize(raw, v)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func normalize(raw string, v Variant) (LessonContent, Shape, error) {
	text := StripFences(raw)
	if !gjson.Valid(text) {
		return LessonContent{}, "", &NormalizeError{Stage: StageParse, Err: errors.New("response is not valid JSON")}
	}

	doc := gjson.Parse(text)
	shape, err := classify(doc)
	if err != nil {
		return LessonContent{}, "", &NormalizeError{Stage: StageClassify, Err: err}
	}

	schema := FlatLessonSchema
	var c candidate = &flatLesson{}
	if shape == ShapeStructured {
		schema = StructuredLessonSchema
		c = &structuredLesson{}
	}

	if err := llm.ValidateJSON(schema, []byte(text)); err != nil {
		return LessonContent{}, shape, &NormalizeError{Stage: StageSchema, Err: err}
	}
	if err := json.Unmarshal([]byte(text), c); err != nil {
		return LessonContent{}, shape, &NormalizeError{Stage: StageParse, Err: err}
	}

	lesson := c.canonical(v)
	if err := Validate(lesson); err != nil {
		return LessonContent{}, shape, &NormalizeError{Stage: StageInvariant, Err: err}
	}
	return lesson, shape, nil
}

// classify picks the shape from the type of "explanation": a string means
// flat, an object (or an interactiveSection block) means structured.
func classify(doc gjson.Result) (Shape, error) {
	if !doc.IsObject() {
		return "", fmt.Errorf("expected a JSON object, got %s", doc.Type)
	}
	explanation := doc.Get("explanation")
	switch {
	case explanation.Type == gjson.String:
		return ShapeFlat, nil
	case explanation.IsObject(), doc.Get("interactiveSection").Exists():
		return ShapeStructured, nil
	}
	return "", errors.New("object matches neither the flat nor the structured lesson shape")
}

// flatLesson carries the canonical fields directly.
type flatLesson struct {
	Explanation      string     `json:"explanation"`
	Questions        []Question `json:"questions"`
	Activity         string     `json:"activity"`
	GlobalMethod     string     `json:"globalMethod"`
	HindiTranslation Glossary   `json:"hindiTranslation"`
}

func (f *flatLesson) canonical(v Variant) LessonContent {
	return LessonContent{
		Explanation:      f.Explanation,
		Questions:        f.Questions,
		Activity:         f.Activity,
		GlobalMethod:     f.GlobalMethod,
		HindiTranslation: f.HindiTranslation,
		IsGlobalVersion:  v.IsGlobal(),
	}
}
