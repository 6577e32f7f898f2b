package lessons

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlossary_UnmarshalKeepsDocumentOrder(t *testing.T) {
	var g Glossary
	require.NoError(t, json.Unmarshal([]byte(`{"zebra":"ज़ेबरा","apple":"सेब","mango":"आम"}`), &g))

	assert.Equal(t, Glossary{
		{English: "zebra", Hindi: "ज़ेबरा"},
		{English: "apple", Hindi: "सेब"},
		{English: "mango", Hindi: "आम"},
	}, g)
}

func TestGlossary_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	var g Glossary
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1","b":"2","a":"3"}`), &g))
	assert.Equal(t, Glossary{{"a", "3"}, {"b", "2"}}, g)
}

func TestGlossary_UnmarshalErrors(t *testing.T) {
	var g Glossary
	assert.Error(t, g.UnmarshalJSON([]byte(`["a"]`)))
	assert.Error(t, g.UnmarshalJSON([]byte(`{"a":1}`)))
	assert.Error(t, g.UnmarshalJSON([]byte(`{"a":`)))

	require.NoError(t, g.UnmarshalJSON([]byte(`null`)))
	assert.Nil(t, g)
}

func TestGlossary_MarshalRoundTrip(t *testing.T) {
	g := Glossary{{"topic", "विषय"}, {"a \"quoted\" term", "x"}}
	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, `{"topic":"विषय","a \"quoted\" term":"x"}`, string(data))

	var back Glossary
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, g, back)

	empty, err := json.Marshal(Glossary(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestGlossary_Set(t *testing.T) {
	var g Glossary
	g.Set("a", "1")
	g.Set("b", "2")
	g.Set("a", "3")
	assert.Equal(t, Glossary{{"a", "3"}, {"b", "2"}}, g)

	v, ok := g.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	_, ok = g.Lookup("B")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	ok := func() LessonContent {
		return LessonContent{
			Explanation: "x",
			Questions:   []Question{{Question: "q", Options: []string{"a", "b"}, Correct: 1}},
		}
	}

	require.NoError(t, Validate(ok()))

	tests := []struct {
		name   string
		mutate func(*LessonContent)
	}{
		{"no explanation", func(c *LessonContent) { c.Explanation = " " }},
		{"no questions", func(c *LessonContent) { c.Questions = nil }},
		{"blank question", func(c *LessonContent) { c.Questions[0].Question = "" }},
		{"one option", func(c *LessonContent) { c.Questions[0].Options = []string{"a"} }},
		{"negative correct", func(c *LessonContent) { c.Questions[0].Correct = -1 }},
		{"correct too large", func(c *LessonContent) { c.Questions[0].Correct = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ok()
			tt.mutate(&c)
			err := Validate(c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLesson))
		})
	}
}

func TestGenerationRequest_Validate(t *testing.T) {
	good := GenerationRequest{ClassLevel: 2, Subject: SubjectMathematics, Topic: "Addition", Style: StyleChinese, Variant: VariantStandard}
	require.NoError(t, good.Validate())

	bad := []GenerationRequest{
		{ClassLevel: 0, Subject: SubjectMathematics, Topic: "x", Style: StyleChinese, Variant: VariantStandard},
		{ClassLevel: 11, Subject: SubjectMathematics, Topic: "x", Style: StyleChinese, Variant: VariantStandard},
		{ClassLevel: 2, Subject: "music", Topic: "x", Style: StyleChinese, Variant: VariantStandard},
		{ClassLevel: 2, Subject: SubjectMathematics, Topic: "   ", Style: StyleChinese, Variant: VariantStandard},
		{ClassLevel: 2, Subject: SubjectMathematics, Topic: "x", Style: "korean", Variant: VariantStandard},
		{ClassLevel: 2, Subject: SubjectMathematics, Topic: "x", Style: StyleChinese, Variant: ""},
	}
	for _, r := range bad {
		assert.Error(t, r.Validate(), "%+v", r)
	}
}

func TestLessonContent_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Fallback(GenerationRequest{ClassLevel: 1, Subject: SubjectArt, Topic: "Colors", Style: StyleEuropean, Variant: VariantStandard}))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, k := range []string{"explanation", "questions", "activity", "globalMethod", "hindiTranslation", "isGlobalVersion"} {
		assert.Contains(t, m, k)
	}
	assert.NotContains(t, m, "richMetadata")
}
