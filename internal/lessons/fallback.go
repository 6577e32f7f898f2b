package lessons

import (
	"fmt"
	"strings"
)

// extraRegions are named in the international block alongside the four
// style regions.
var extraRegions = []struct {
	Region string
	Method string
}{
	{"Singapore", "Uses concrete-pictorial-abstract models to build deep understanding"},
	{"Finland", "Favors play, short lessons and student well-being over testing"},
}

const genericMethod = "Balanced teaching that mixes explanation, practice and discussion"

// Fallback builds a complete lesson without any provider. It is total:
// every request, valid or not, yields a lesson that passes Validate.
func Fallback(req GenerationRequest) LessonContent {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = "Today's Topic"
	}
	// The glossary keeps the topic exactly as supplied so callers can
	// look it up with their own string.
	key := req.Topic
	if strings.TrimSpace(key) == "" {
		key = topic
	}
	global := req.Variant.IsGlobal()
	class := int(req.ClassLevel)
	style, ok := req.Style.info()
	styleName := string(req.Style)
	method := genericMethod
	if ok {
		styleName = style.Adjective
		method = style.Method
	}

	return LessonContent{
		Explanation:      fallbackExplanation(topic, class, styleName, global),
		Questions:        fallbackQuestions(topic, global),
		Activity:         fallbackActivity(topic, global),
		GlobalMethod:     fallbackMethod(styleName, method, global),
		HindiTranslation: fallbackGlossary(key, topic, global),
		IsGlobalVersion:  global,
	}
}

func fallbackExplanation(topic string, class int, styleName string, global bool) string {
	var b strings.Builder
	if global {
		b.WriteString("Enhanced Global Version: ")
	}
	fmt.Fprintf(&b, "Welcome to our %s lesson for Class %d! Let's explore this exciting topic together using %s teaching methods. ", topic, class, styleName)
	b.WriteString("This lesson is specially designed for Indian students with examples they can relate to.")

	if !global {
		return b.String()
	}

	b.WriteString("\n\n## International Perspectives\n\n")
	fmt.Fprintf(&b, "Around the world, students learn about %s in fascinating ways:\n\n", topic)
	for _, s := range Styles {
		fmt.Fprintf(&b, "• **%s**: %s\n", s.Region, s.Method)
	}
	for _, r := range extraRegions {
		fmt.Fprintf(&b, "• **%s**: %s\n", r.Region, r.Method)
	}
	b.WriteString("\n## Global Best Practices\n\n")
	fmt.Fprintf(&b, "International research shows that effective %s education includes:\n", topic)
	b.WriteString("• Multi-sensory learning approaches\n")
	b.WriteString("• Cultural context integration\n")
	b.WriteString("• Real-world applications\n")
	b.WriteString("• Student-centered discovery")
	return b.String()
}

func fallbackQuestions(topic string, global bool) []Question {
	third := Question{
		Question:    fmt.Sprintf("What makes %s interesting to learn?", topic),
		Options:     []string{"It's boring", "It's challenging but fun", "Too difficult", "Not useful"},
		Correct:     1,
		Explanation: "Every new topic is a fun challenge once we explore it together.",
	}
	if global {
		third = Question{
			Question:    fmt.Sprintf("How do students in other countries learn about %s?", topic),
			Options:     []string{"Same as India", "Different methods worldwide", "Only in English", "Not taught elsewhere"},
			Correct:     1,
			Explanation: "Each country brings its own teaching methods to the same ideas.",
		}
	}

	return []Question{
		{
			Question:    fmt.Sprintf("What is the main concept we're learning about %s?", topic),
			Options:     []string{"Basic understanding", "Advanced concepts", "Historical facts", "Fun activities"},
			Correct:     0,
			Explanation: "We start by building a basic understanding.",
		},
		{
			Question:    fmt.Sprintf("How can we apply %s in daily life?", topic),
			Options:     []string{"Only in school", "At home and school", "Never needed", "Only for exams"},
			Correct:     1,
			Explanation: "What we learn is useful both at home and in school.",
		},
		third,
	}
}

func fallbackActivity(topic string, global bool) string {
	var b strings.Builder
	if global {
		b.WriteString("Global Activity: ")
	}
	fmt.Fprintf(&b, "Let's create a hands-on activity about %s using common materials available in Indian classrooms. Students can work in groups to explore and discover!", topic)
	if global {
		b.WriteString(" This activity is inspired by international teaching methods and can be adapted using techniques from different countries.")
	}
	return b.String()
}

func fallbackMethod(styleName, method string, global bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Using %s methodology: %s\n\nWhy different styles work:\n", styleName, method)
	for _, s := range Styles {
		fmt.Fprintf(&b, "• %s: %s\n", s.Adjective, s.Benefit)
	}
	if global {
		b.WriteString("\nThis approach has been successfully implemented in schools worldwide and adapted for Indian classroom contexts.")
	}
	return strings.TrimRight(b.String(), "\n")
}

func fallbackGlossary(key, topic string, global bool) Glossary {
	g := Glossary{
		{English: key, Hindi: topic + " (विषय)"},
	}
	g.Set("learning", "सीखना")
	g.Set("students", "छात्र")
	g.Set("activity", "गतिविधि")
	g.Set("example", "उदाहरण")
	if global {
		g.Set("global", "वैश्विक")
		g.Set("international", "अंतर्राष्ट्रीय")
		g.Set("culture", "संस्कृति")
		g.Set("world", "विश्व")
	}
	return g
}
