package lessons

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// ClassLevel is a school class from 1 to 10.
type ClassLevel int

// Valid reports whether c is one of the ten supported classes.
func (c ClassLevel) Valid() bool {
	return c >= 1 && c <= 10
}

// ID returns the "class-N" identifier.
func (c ClassLevel) ID() string {
	return fmt.Sprintf("class-%d", c)
}

// Label returns "Class N".
func (c ClassLevel) Label() string {
	return fmt.Sprintf("Class %d", c)
}

// Subject is one of the six fixed subjects.
type Subject string

const (
	SubjectMathematics   Subject = "mathematics"
	SubjectScience       Subject = "science"
	SubjectEnglish       Subject = "english"
	SubjectHindi         Subject = "hindi"
	SubjectSocialStudies Subject = "social-studies"
	SubjectArt           Subject = "art"
)

// Style is one of the four teaching styles.
type Style string

const (
	StyleChinese  Style = "chinese"
	StyleJapanese Style = "japanese"
	StyleAmerican Style = "american"
	StyleEuropean Style = "european"
)

// Variant selects lesson depth and scope.
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantGlobal   Variant = "global-enhanced"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantStandard || v == VariantGlobal
}

// IsGlobal reports whether v asks for international content.
func (v Variant) IsGlobal() bool {
	return v == VariantGlobal
}

// GenerationRequest holds the inputs of one lesson generation.
type GenerationRequest struct {
	ClassLevel ClassLevel `json:"classLevel"`
	Subject    Subject    `json:"subject"`
	Topic      string     `json:"topic"`
	Style      Style      `json:"teachingStyle"`
	Variant    Variant    `json:"variant"`
}

// Validate checks the caller preconditions: every field bound to a known
// value and a non-blank topic.
func (r GenerationRequest) Validate() error {
	switch {
	case !r.ClassLevel.Valid():
		return fmt.Errorf("class level %d out of range 1-10", r.ClassLevel)
	case !r.Subject.Valid():
		return fmt.Errorf("unknown subject %q", r.Subject)
	case strings.TrimSpace(r.Topic) == "":
		return errors.New("topic is empty")
	case !r.Style.Valid():
		return fmt.Errorf("unknown teaching style %q", r.Style)
	case !r.Variant.Valid():
		return fmt.Errorf("unknown variant %q", r.Variant)
	}
	return nil
}

// Question is a multiple choice quiz question.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation,omitempty"`
}

// UnmarshalJSON accepts an integral float such as 1.0 for Correct, which
// providers sometimes emit for the answer index.
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	var raw struct {
		plain
		Correct json.Number `json:"correct"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*q = Question(raw.plain)
	if raw.Correct == "" {
		q.Correct = 0
		return nil
	}
	f, err := raw.Correct.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("correct %s is not an option index", raw.Correct)
	}
	q.Correct = int(f)
	return nil
}

// RichMetadata is presentation-only data carried by structured lessons.
type RichMetadata struct {
	LessonTitle string `json:"lessonTitle"`
	AgeGroup    string `json:"ageGroup"`
	Duration    string `json:"duration"`
}

// LessonContent is the canonical lesson shape. Values are treated as
// immutable once they leave the pipeline.
type LessonContent struct {
	Explanation      string        `json:"explanation"`
	Questions        []Question    `json:"questions"`
	Activity         string        `json:"activity"`
	GlobalMethod     string        `json:"globalMethod"`
	HindiTranslation Glossary      `json:"hindiTranslation"`
	IsGlobalVersion  bool          `json:"isGlobalVersion"`
	RichMetadata     *RichMetadata `json:"richMetadata,omitempty"`
}

// ErrInvalidLesson is wrapped by every Validate failure.
var ErrInvalidLesson = errors.New("invalid lesson")

// Validate enforces the canonical lesson invariants.
func Validate(c LessonContent) error {
	if strings.TrimSpace(c.Explanation) == "" {
		return fmt.Errorf("%w: empty explanation", ErrInvalidLesson)
	}
	if len(c.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidLesson)
	}
	for i, q := range c.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidLesson, i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidLesson, i, len(q.Options))
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return fmt.Errorf("%w: question %d correct index %d out of range [0,%d)", ErrInvalidLesson, i, q.Correct, len(q.Options))
		}
	}
	return nil
}

// Term is one English to Hindi glossary entry.
type Term struct {
	English string `json:"english"`
	Hindi   string `json:"hindi"`
}

// Glossary is an ordered English to Hindi term list. It marshals as a JSON
// object and keeps the document order of its keys, which is the order the
// localizer applies them in.
type Glossary []Term

// Lookup returns the Hindi term stored for english.
func (g Glossary) Lookup(english string) (string, bool) {
	for _, t := range g {
		if t.English == english {
			return t.Hindi, true
		}
	}
	return "", false
}

// Set replaces the entry for english in place or appends a new one.
func (g *Glossary) Set(english, hindi string) {
	for i := range *g {
		if (*g)[i].English == english {
			(*g)[i].Hindi = hindi
			return
		}
	}
	*g = append(*g, Term{English: english, Hindi: hindi})
}

// MarshalJSON writes the glossary as an object in stored order.
func (g Glossary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(t.English)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(t.Hindi)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of string values, keeping key order.
// A repeated key keeps its first position and its last value.
func (g *Glossary) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("glossary: invalid JSON")
	}
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*g = nil
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("glossary: expected object, got %s", res.Type)
	}

	out := Glossary{}
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			err = fmt.Errorf("glossary: value for %q is not a string", key.String())
			return false
		}
		out.Set(key.String(), value.String())
		return true
	})
	if err != nil {
		return err
	}
	*g = out
	return nil
}
