package lessons

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the largest accepted upload, in bytes.
const MaxUploadSize = 10 * 1024 * 1024

// AllowedUploadTypes is the MIME allow-list for uploads.
var AllowedUploadTypes = []string{
	"image/jpeg", "image/png", "image/gif", "image/webp",
	"application/pdf", "application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain", "audio/mpeg", "audio/wav", "audio/webm",
}

// maxExtractedText caps how much extracted text is sent to the provider.
const maxExtractedText = 2000

// UploadDescriptor describes an uploaded file. Only metadata and optional
// extracted text reach the pipeline, never raw bytes.
type UploadDescriptor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIMEType string `json:"type"`
	Size     int64  `json:"size"`
	Text     string `json:"content,omitempty"`
}

// NewUpload builds a descriptor with a fresh id.
func NewUpload(name, mimeType string, size int64, text string) UploadDescriptor {
	return UploadDescriptor{
		ID:       "file-" + uuid.NewString(),
		Name:     name,
		MIMEType: mimeType,
		Size:     size,
		Text:     text,
	}
}

// CheckUpload applies the size limit and MIME allow-list.
func CheckUpload(u UploadDescriptor) error {
	if u.Size > MaxUploadSize {
		return fmt.Errorf("file %s is too large: maximum size is 10MB", u.Name)
	}
	if !slices.Contains(AllowedUploadTypes, u.MIMEType) {
		return fmt.Errorf("file type %s is not supported", u.MIMEType)
	}
	return nil
}

// Kind classifies the upload as "image", "audio" or "document".
func (u UploadDescriptor) Kind() string {
	switch {
	case strings.HasPrefix(u.MIMEType, "image/"):
		return "image"
	case strings.HasPrefix(u.MIMEType, "audio/"):
		return "audio recording"
	}
	return "document"
}

const uploadSystemPrompt = `You are ASman, a friendly assistant for Indian school teachers. Given a description of a file a teacher uploaded, reply with 2-3 encouraging, practical sentences on how to use it in a lesson. Plain text only.`

func uploadPrompt(u UploadDescriptor, class ClassLevel, subject Subject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this uploaded file for Class %d %s. Provide insights about how to use this content in lessons. Be encouraging and practical for Indian teachers.\n\n", int(class), subject.Name())
	fmt.Fprintf(&b, "File name: %s\nFile type: %s (%s)\nSize: %d bytes\n", u.Name, u.MIMEType, u.Kind(), u.Size)
	if text := strings.TrimSpace(u.Text); text != "" {
		if r := []rune(text); len(r) > maxExtractedText {
			text = string(r[:maxExtractedText])
		}
		fmt.Fprintf(&b, "\nExtracted text:\n%s\n", text)
	}
	return b.String()
}

func uploadFallback(u UploadDescriptor, class ClassLevel, subject Subject) string {
	kind := u.Kind()
	article := "a"
	if strings.ContainsRune("aeiou", rune(kind[0])) {
		article = "an"
	}
	return fmt.Sprintf("I can see you've uploaded %s %s related to %s. This looks perfect for creating engaging lessons for Class %d students!",
		article, kind, subject.Name(), int(class))
}
