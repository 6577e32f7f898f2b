// Package localize overlays a lesson's English to Hindi glossary onto
// lesson text at render time. It is a fixed-glossary substitution, not a
// translator: terms missing from the glossary stay in English.
package localize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
)

// Language selects the render language.
type Language int

const (
	English Language = iota
	Hindi
)

func (l Language) String() string {
	switch l {
	case English:
		return "english"
	case Hindi:
		return "hindi"
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// Toggle flips between English and Hindi.
func (l Language) Toggle() Language {
	if l == Hindi {
		return English
	}
	return Hindi
}

// ParseLanguage accepts "english"/"en" and "hindi"/"hi".
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "english", "en":
		return English, nil
	case "hindi", "hi":
		return Hindi, nil
	}
	return English, fmt.Errorf("unknown language %q", s)
}

// Text renders text in lang. English is the identity. Hindi folds over the
// glossary in stored order, replacing each case-insensitive whole-word
// occurrence of the English term in the current string. A later entry may
// match text produced by an earlier one.
func Text(text string, lang Language, glossary lessons.Glossary) string {
	if lang != Hindi {
		return text
	}
	for _, t := range glossary {
		text = replaceWord(text, t.English, t.Hindi)
	}
	return text
}

// replaceWord substitutes whole-word, case-insensitive matches of term.
// Word boundaries are ASCII word characters, so terms that start or end
// with other characters only match next to a word character.
func replaceWord(text, term, replacement string) string {
	if term == "" {
		return text
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return text
	}
	return re.ReplaceAllLiteralString(text, replacement)
}

// Lesson renders every user-visible string of a lesson in lang. The input
// is not modified.
func Lesson(c lessons.LessonContent, lang Language) lessons.LessonContent {
	if lang != Hindi {
		return c
	}
	g := c.HindiTranslation
	out := c
	out.Explanation = Text(c.Explanation, lang, g)
	out.Activity = Text(c.Activity, lang, g)
	out.GlobalMethod = Text(c.GlobalMethod, lang, g)

	out.Questions = make([]lessons.Question, len(c.Questions))
	for i, q := range c.Questions {
		lq := q
		lq.Question = Text(q.Question, lang, g)
		lq.Explanation = Text(q.Explanation, lang, g)
		lq.Options = make([]string, len(q.Options))
		for j, o := range q.Options {
			lq.Options[j] = Text(o, lang, g)
		}
		out.Questions[i] = lq
	}
	return out
}
