package lessons

import (
	"strings"
	"testing"
)

func TestAgeRange(t *testing.T) {
	tests := []struct {
		class ClassLevel
		want  string
	}{
		{1, "6-7"},
		{2, "7-8"},
		{5, "10-11"},
		{10, "15-16"},
		{0, DefaultAgeRange},
		{11, DefaultAgeRange},
	}
	for _, tt := range tests {
		if got := AgeRange(tt.class); got != tt.want {
			t.Errorf("AgeRange(%d) = %q, want %q", tt.class, got, tt.want)
		}
	}
}

func TestParseClass(t *testing.T) {
	good := map[string]ClassLevel{"class-2": 2, "2": 2, " Class-10 ": 10, "1": 1}
	for in, want := range good {
		got, err := ParseClass(in)
		if err != nil || got != want {
			t.Errorf("ParseClass(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"", "0", "11", "class-", "two", "class-2.5"} {
		if _, err := ParseClass(in); err == nil {
			t.Errorf("ParseClass(%q) expected error", in)
		}
	}
}

func TestParseSubject(t *testing.T) {
	for in, want := range map[string]Subject{
		"mathematics":    SubjectMathematics,
		"Social Studies": SubjectSocialStudies,
		"social-studies": SubjectSocialStudies,
		"ART":            SubjectArt,
	} {
		got, err := ParseSubject(in)
		if err != nil || got != want {
			t.Errorf("ParseSubject(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseSubject("music"); err == nil {
		t.Error("expected error for unknown subject")
	}
}

func TestParseStyle(t *testing.T) {
	for in, want := range map[string]Style{
		"chinese":        StyleChinese,
		"Japanese":       StyleJapanese,
		"American Style": StyleAmerican,
		"EUROPEAN":       StyleEuropean,
	} {
		got, err := ParseStyle(in)
		if err != nil || got != want {
			t.Errorf("ParseStyle(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseStyle("korean"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestParseVariant(t *testing.T) {
	for in, want := range map[string]Variant{"": VariantStandard, "standard": VariantStandard, "global": VariantGlobal, "global-enhanced": VariantGlobal} {
		got, err := ParseVariant(in)
		if err != nil || got != want {
			t.Errorf("ParseVariant(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseVariant("deluxe"); err == nil {
		t.Error("expected error")
	}
}

func TestCatalogTables(t *testing.T) {
	if len(Classes) != 10 || len(Subjects) != 6 || len(Styles) != 4 {
		t.Fatalf("catalog sizes = %d/%d/%d", len(Classes), len(Subjects), len(Styles))
	}
	for i, c := range Classes {
		if int(c.Level) != i+1 {
			t.Errorf("class %d out of order", c.Level)
		}
	}
	for _, s := range Styles {
		if s.Method == "" || s.Benefit == "" || s.Region == "" {
			t.Errorf("style %s incomplete", s.ID)
		}
		if !strings.HasSuffix(s.ID.Name(), " Style") {
			t.Errorf("style name %q", s.ID.Name())
		}
	}
	if SubjectSocialStudies.Name() != "Social Studies" {
		t.Errorf("subject name = %q", SubjectSocialStudies.Name())
	}
}

func TestTopicSuggestions(t *testing.T) {
	for _, s := range Subjects {
		if got := TopicSuggestions(s.ID); len(got) != 8 {
			t.Errorf("TopicSuggestions(%s) has %d entries, want 8", s.ID, len(got))
		}
	}
	if got := TopicSuggestions("music"); got != nil {
		t.Errorf("unknown subject: got %v", got)
	}

	got := TopicSuggestions(SubjectScience)
	got[0] = "changed"
	if TopicSuggestions(SubjectScience)[0] != "Plants" {
		t.Error("TopicSuggestions returned the shared slice")
	}
}
