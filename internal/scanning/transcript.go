package scanning

import "strings"

// noTextMarker is what the vision models are instructed to emit when the
// image contains no legible text.
const noTextMarker = "NO_TEXT"

// cleanTranscript normalizes a raw model response into a transcription:
// markdown fences are removed, line endings are unified, and the no-text
// marker collapses to the empty string.
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")

	if strings.EqualFold(text, noTextMarker) {
		return ""
	}
	return text
}
