package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/localize"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one lesson and print it",
	Example: `  asman generate --class 2 --subject mathematics --topic Addition --style chinese
  asman generate --class 5 --subject science --topic "Plant Growth" --style european --global --lang hindi`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, lang, err := generateRequest(cmd)
		if err != nil {
			return err
		}

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		lesson := localize.Lesson(d.service.GenerateLesson(cmd.Context(), req), lang)

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(lesson); err != nil {
				return fmt.Errorf("encode lesson: %w", err)
			}
		} else {
			writeLesson(out, req, lesson)
		}

		if usage, _ := cmd.Flags().GetBool("usage"); usage {
			fmt.Fprintln(os.Stderr)
			return printUsage(cmd.Context(), os.Stderr, d.store.EventRepo())
		}
		return nil
	},
}

func generateRequest(cmd *cobra.Command) (lessons.GenerationRequest, localize.Language, error) {
	var req lessons.GenerationRequest
	f := cmd.Flags()

	classFlag, _ := f.GetString("class")
	class, err := lessons.ParseClass(classFlag)
	if err != nil {
		return req, 0, err
	}
	subjectFlag, _ := f.GetString("subject")
	subject, err := lessons.ParseSubject(subjectFlag)
	if err != nil {
		return req, 0, err
	}
	styleFlag, _ := f.GetString("style")
	style, err := lessons.ParseStyle(styleFlag)
	if err != nil {
		return req, 0, err
	}
	langFlag, _ := f.GetString("lang")
	lang, err := localize.ParseLanguage(langFlag)
	if err != nil {
		return req, 0, err
	}
	topic, _ := f.GetString("topic")
	variant := lessons.VariantStandard
	if global, _ := f.GetBool("global"); global {
		variant = lessons.VariantGlobal
	}

	req = lessons.GenerationRequest{
		ClassLevel: class,
		Subject:    subject,
		Topic:      strings.TrimSpace(topic),
		Style:      style,
		Variant:    variant,
	}
	return req, lang, req.Validate()
}

// writeLesson prints a lesson as plain text.
func writeLesson(w io.Writer, req lessons.GenerationRequest, l lessons.LessonContent) {
	rule := strings.Repeat("─", 60)

	title := fmt.Sprintf("%s · %s %s · %s", req.Topic, req.ClassLevel.Label(), req.Subject.Name(), req.Style.Name())
	if l.IsGlobalVersion {
		title += " · Global"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, l.Explanation)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "QUIZ")
	fmt.Fprintln(w, rule)
	for i, q := range l.Questions {
		fmt.Fprintf(w, "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(w, "   %c) %s\n", 'A'+j, opt)
		}
		fmt.Fprintf(w, "   Answer: %c", 'A'+q.Correct)
		if q.Explanation != "" {
			fmt.Fprintf(w, " (%s)", q.Explanation)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "ACTIVITY")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, l.Activity)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "TEACHING METHOD")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, l.GlobalMethod)

	if len(l.HindiTranslation) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "GLOSSARY")
		fmt.Fprintln(w, rule)
		for _, t := range l.HindiTranslation {
			fmt.Fprintf(w, "%-20s %s\n", t.English, t.Hindi)
		}
	}
}

func init() {
	f := generateCmd.Flags()
	f.String("class", "", "Class level, 1-10 or class-N")
	f.String("subject", "", "Subject id or name (mathematics, science, english, hindi, social-studies, art)")
	f.String("topic", "", "Lesson topic")
	f.String("style", "", "Teaching style (chinese, japanese, american, european)")
	f.Bool("global", false, "Generate the global-enhanced version")
	f.String("lang", "english", "Render language (english or hindi)")
	f.Bool("json", false, "Print the lesson as JSON")
	f.Bool("usage", false, "Print token usage and estimated cost to stderr")
	_ = generateCmd.MarkFlagRequired("class")
	_ = generateCmd.MarkFlagRequired("subject")
	_ = generateCmd.MarkFlagRequired("topic")
	_ = generateCmd.MarkFlagRequired("style")
}
