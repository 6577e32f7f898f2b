package lessons

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ClassInfo describes one selectable class.
type ClassInfo struct {
	Level       ClassLevel
	AgeRange    string
	Description string
}

// Classes lists classes 1 through 10 in order.
var Classes = []ClassInfo{
	{1, "6-7", "Foundation learning with play"},
	{2, "7-8", "Basic concepts and skills"},
	{3, "8-9", "Building core knowledge"},
	{4, "9-10", "Developing understanding"},
	{5, "10-11", "Expanding horizons"},
	{6, "11-12", "Middle school foundation"},
	{7, "12-13", "Advanced concepts"},
	{8, "13-14", "Critical thinking"},
	{9, "14-15", "Board exam preparation"},
	{10, "15-16", "Comprehensive mastery"},
}

// DefaultAgeRange is used for class numbers outside the table.
const DefaultAgeRange = "6-16"

// AgeRange returns the age range in years for a class, e.g. "7-8".
func AgeRange(c ClassLevel) string {
	for _, ci := range Classes {
		if ci.Level == c {
			return ci.AgeRange
		}
	}
	return DefaultAgeRange
}

// ParseClass accepts "class-N" or "N".
func ParseClass(s string) (ClassLevel, error) {
	raw := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "class-")
	n, err := strconv.Atoi(raw)
	if err != nil || !ClassLevel(n).Valid() {
		return 0, fmt.Errorf("invalid class %q: want class-1 to class-10", s)
	}
	return ClassLevel(n), nil
}

// SubjectInfo describes one subject.
type SubjectInfo struct {
	ID          Subject
	Name        string
	Description string
}

// Subjects lists the six subjects in display order.
var Subjects = []SubjectInfo{
	{SubjectMathematics, "Mathematics", "Numbers, patterns, and problem-solving"},
	{SubjectScience, "Science", "Experiments, nature, and discovery"},
	{SubjectEnglish, "English", "Reading, writing, and communication"},
	{SubjectHindi, "Hindi", "भाषा, साहित्य और संस्कृति"},
	{SubjectSocialStudies, "Social Studies", "History, geography, and civics"},
	{SubjectArt, "Art", "Creativity, colors, and expression"},
}

func (s Subject) info() (SubjectInfo, bool) {
	for _, si := range Subjects {
		if si.ID == s {
			return si, true
		}
	}
	return SubjectInfo{}, false
}

// Valid reports whether s is a known subject.
func (s Subject) Valid() bool {
	_, ok := s.info()
	return ok
}

// Name returns the display name, or the raw id for unknown subjects.
func (s Subject) Name() string {
	if si, ok := s.info(); ok {
		return si.Name
	}
	return string(s)
}

// ParseSubject accepts a subject id or display name, case-insensitively.
func ParseSubject(s string) (Subject, error) {
	want := strings.TrimSpace(s)
	for _, si := range Subjects {
		if strings.EqualFold(want, string(si.ID)) || strings.EqualFold(want, si.Name) {
			return si.ID, nil
		}
	}
	return "", fmt.Errorf("invalid subject %q", s)
}

// StyleInfo describes one teaching style.
type StyleInfo struct {
	ID          Style
	Adjective   string // "Chinese"
	Flag        string
	Region      string // region named in international comparisons
	Description string // short tagline
	Approach    string
	Method      string // one-line teaching approach used in generated text
	Benefit     string
}

var Styles = []StyleInfo{
	{
		ID: StyleChinese, Adjective: "Chinese", Flag: "🇨🇳", Region: "China",
		Description: "Drills & Practice",
		Approach:    "Repetitive practice and mastery through structured drills",
		Method:      "Step-by-step practice with repetition for mastery",
		Benefit:     "builds fluency and confidence through steady repetition",
	},
	{
		ID: StyleJapanese, Adjective: "Japanese", Flag: "🇯🇵", Region: "Japan",
		Description: "Discipline & Structure",
		Approach:    "Step-by-step progression with disciplined methodology",
		Method:      "Structured approach with respect for process and discipline",
		Benefit:     "develops careful observation and patient, orderly thinking",
	},
	{
		ID: StyleAmerican, Adjective: "American", Flag: "🇺🇸", Region: "USA",
		Description: "Curiosity-driven Learning",
		Approach:    "Question-based exploration and discovery learning",
		Method:      "Encourage questions and exploration-based discovery",
		Benefit:     "grows curiosity and independent problem-solving",
	},
	{
		ID: StyleEuropean, Adjective: "European", Flag: "🇪🇺", Region: "Europe",
		Description: "Creativity & Exploration",
		Approach:    "Creative expression and collaborative activities",
		Method:      "Creative expression through collaborative group activities",
		Benefit:     "strengthens teamwork and creative expression",
	},
}

func (s Style) info() (StyleInfo, bool) {
	for _, si := range Styles {
		if si.ID == s {
			return si, true
		}
	}
	return StyleInfo{}, false
}

// Valid reports whether s is a known teaching style.
func (s Style) Valid() bool {
	_, ok := s.info()
	return ok
}

// Name returns the display name, e.g. "Chinese Style".
func (s Style) Name() string {
	if si, ok := s.info(); ok {
		return si.Adjective + " Style"
	}
	return string(s)
}

// ParseStyle accepts a style id, its adjective or its display name.
func ParseStyle(s string) (Style, error) {
	want := strings.TrimSpace(s)
	for _, si := range Styles {
		if strings.EqualFold(want, string(si.ID)) ||
			strings.EqualFold(want, si.Adjective) ||
			strings.EqualFold(want, si.Adjective+" Style") {
			return si.ID, nil
		}
	}
	return "", fmt.Errorf("invalid teaching style %q", s)
}

// ParseVariant accepts "standard", "global-enhanced" or "global".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return VariantStandard, nil
	case "global", "global-enhanced":
		return VariantGlobal, nil
	}
	return "", fmt.Errorf("invalid variant %q", s)
}

var topicSuggestions = map[Subject][]string{
	SubjectMathematics:   {"Addition", "Subtraction", "Multiplication", "Division", "Fractions", "Geometry", "Shapes", "Numbers"},
	SubjectScience:       {"Plants", "Animals", "Weather", "Solar System", "Human Body", "Water Cycle", "Magnetism", "Light"},
	SubjectEnglish:       {"Alphabets", "Phonics", "Reading", "Grammar", "Stories", "Poems", "Vocabulary", "Writing"},
	SubjectHindi:         {"वर्णमाला", "व्याकरण", "कहानी", "कविता", "शब्द", "वाक्य", "लेखन", "पठन"},
	SubjectSocialStudies: {"Family", "Community", "India", "Geography", "History", "Culture", "Government", "Environment"},
	SubjectArt:           {"Drawing", "Painting", "Colors", "Crafts", "Dance", "Music", "Theatre", "Creativity"},
}

// TopicSuggestions returns example topics for a subject, or nil.
func TopicSuggestions(s Subject) []string {
	return slices.Clone(topicSuggestions[s])
}
