// File: internal/services/chat/prompt.go
package chat

import (
	"fmt"

	"github.com/sarmadi/go-chathub/internal/services/gemini"
)

// ApproxDecodedSize estimates the decoded byte count of a base64 payload
// from its encoded length without decoding it: floor(len * 3 / 4).
func ApproxDecodedSize(encoded string) int64 {
	return int64(len(encoded)) * 3 / 4
}

// FormatFileSize renders a byte count for user-facing prompt text.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "unknown size"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	if size >= 10 || unit == 0 {
		return fmt.Sprintf("%.0f %s", size, units[unit])
	}
	return fmt.Sprintf("%.1f %s", size, units[unit])
}

// BuildParts assembles the generation request for one turn: the literal
// message text, then the attachment as an inlined blob with a descriptive
// note, or a note that its contents were unavailable when only metadata
// arrived. When nothing at all was provided a fixed instruction is
// substituted so the provider always receives at least one part.
func BuildParts(message string, att *Attachment) []gemini.Part {
	var parts []gemini.Part

	if message != "" {
		parts = append(parts, gemini.TextPart(message))
	}

	switch {
	case att.HasData():
		name := att.Name
		if name == "" {
			name = "attachment"
		}
		mimeType := att.Type
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		parts = append(parts, gemini.TextPart(fmt.Sprintf(
			"The user provided an attachment named %q (%s, %s). Use its contents to support your answer.",
			name, mimeType, FormatFileSize(att.Size))))
		parts = append(parts, gemini.InlinePart(mimeType, att.Data))
	case att != nil && att.Name != "":
		parts = append(parts, gemini.TextPart(fmt.Sprintf(
			"The user referenced a file named %q, but its contents were unavailable.", att.Name)))
	}

	if len(parts) == 0 {
		parts = append(parts, gemini.TextPart(
			"The user needs help, but no prompt text or attachment was provided."))
	}
	return parts
}
