package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Short:   "Describe how an uploaded teaching file can be used",
	Example: `  asman analyze --name leaf.png --type image/png --size 20480 --class 5 --subject science`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		name, _ := f.GetString("name")
		mimeType, _ := f.GetString("type")
		size, _ := f.GetInt64("size")
		classFlag, _ := f.GetString("class")
		subjectFlag, _ := f.GetString("subject")
		textFile, _ := f.GetString("text-file")

		class, err := lessons.ParseClass(classFlag)
		if err != nil {
			return err
		}
		subject, err := lessons.ParseSubject(subjectFlag)
		if err != nil {
			return err
		}

		var text string
		if textFile != "" {
			data, err := os.ReadFile(textFile)
			if err != nil {
				return fmt.Errorf("read extracted text: %w", err)
			}
			text = string(data)
		}

		u := lessons.NewUpload(name, mimeType, size, text)
		if err := lessons.CheckUpload(u); err != nil {
			return err
		}

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		fmt.Fprintln(cmd.OutOrStdout(), d.service.AnalyzeUpload(cmd.Context(), u, class, subject))
		return nil
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.String("name", "", "File name")
	f.String("type", "", "MIME type (image/*, audio/*, application/pdf, text/plain)")
	f.Int64("size", 0, "File size in bytes")
	f.String("class", "", "Class level, 1-10 or class-N")
	f.String("subject", "", "Subject id or name")
	f.String("text-file", "", "Optional file holding text extracted from the upload")
	_ = analyzeCmd.MarkFlagRequired("name")
	_ = analyzeCmd.MarkFlagRequired("type")
	_ = analyzeCmd.MarkFlagRequired("class")
	_ = analyzeCmd.MarkFlagRequired("subject")
}
