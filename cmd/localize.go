package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/localize"
)

var localizeCmd = &cobra.Command{
	Use:     "localize",
	Short:   "Apply a glossary overlay to text",
	Example: `  asman localize --text "Plants need water" --glossary glossary.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		text, _ := f.GetString("text")
		path, _ := f.GetString("glossary")
		langFlag, _ := f.GetString("lang")

		lang, err := localize.ParseLanguage(langFlag)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read glossary: %w", err)
		}
		var glossary lessons.Glossary
		if err := json.Unmarshal(data, &glossary); err != nil {
			return fmt.Errorf("parse glossary %s: %w", path, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), localize.Text(text, lang, glossary))
		return nil
	},
}

func init() {
	f := localizeCmd.Flags()
	f.String("text", "", "Text to localize")
	f.String("glossary", "", "JSON object mapping English terms to Hindi, applied in file order")
	f.String("lang", "hindi", "Target language (english or hindi)")
	_ = localizeCmd.MarkFlagRequired("text")
	_ = localizeCmd.MarkFlagRequired("glossary")
}
