package pipeline

import (
	"strconv"
	"strings"
)

// sanitizeTitle keeps [A-Za-z0-9-_ ] and replaces spaces with underscores,
// per spec.md §4.8's file naming rule: "{sanitized_title}_v{version}.{ext}".
func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "resume"
	}
	return b.String()
}

func resumeFileName(title string, version int, ext string) string {
	return sanitizeTitle(title) + "_v" + strconv.Itoa(version) + "." + ext
}
