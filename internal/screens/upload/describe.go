package upload

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
)

// maxTextRead bounds how much of a plain text file is read for analysis.
const maxTextRead = 64 << 10

// extTypes covers extensions the platform MIME table often lacks.
var extTypes = map[string]string{
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".webm": "audio/webm",
	".txt":  "text/plain",
}

// Describe builds an upload descriptor for a local file. Plain text files
// also carry their content; other files contribute metadata only.
func Describe(path string) (lessons.UploadDescriptor, error) {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return lessons.UploadDescriptor{}, fmt.Errorf("enter a file path")
	}

	info, err := os.Stat(path)
	if err != nil {
		return lessons.UploadDescriptor{}, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	if info.IsDir() {
		return lessons.UploadDescriptor{}, fmt.Errorf("%s is a directory", filepath.Base(path))
	}

	mimeType := MIMEType(path)
	var text string
	if mimeType == "text/plain" {
		if text, err = readText(path); err != nil {
			return lessons.UploadDescriptor{}, err
		}
	}
	return lessons.NewUpload(filepath.Base(path), mimeType, info.Size(), text), nil
}

// MIMEType guesses a file's media type from its extension, without
// parameters. Unknown extensions yield "application/octet-stream".
func MIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if media, _, err := mime.ParseMediaType(t); err == nil {
			return media
		}
	}
	return "application/octet-stream"
}

func readText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxTextRead))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
