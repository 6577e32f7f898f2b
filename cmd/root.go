package cmd

import (
	"github.com/spf13/cobra"

	"github.com/atulsharma648-byte/ASMan/internal/app"
	"github.com/atulsharma648-byte/ASMan/internal/session"
	"github.com/atulsharma648-byte/ASMan/internal/wizard"
)

var rootCmd = &cobra.Command{
	Use:   "asman",
	Short: "Lesson builder for Indian classrooms",
	Long: "ASMan builds class 1-10 lessons in Chinese, Japanese, American or European teaching styles, " +
		"with quizzes, activities and a Hindi glossary overlay. Works offline with built-in lessons when no LLM key is set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: gemini, anthropic, openai, openrouter or mock (overrides ASMAN_LLM_PROVIDER)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(localizeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp builds the pipeline and launches the interactive wizard. The UI
// owns the terminal, so logs are dropped unless --log-file is given.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	w := wizard.New(d.service, session.NewWithDemo(nil), d.log)
	return app.Run(app.Options{
		Wizard:  w,
		Lessons: d.service,
		Model:   d.model,
	})
}
