package generation

import (
	"regexp"
	"strings"
)

var (
	boldStars       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderscores = regexp.MustCompile(`__(.+?)__`)
	headingMarks    = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`)
	extraBlankLines = regexp.MustCompile(`\n{3,}`)
)

// CleanReply strips markdown emphasis and heading markers and collapses
// excess blank lines. List bullets are left alone.
func CleanReply(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = boldStars.ReplaceAllString(s, "$1")
	s = boldUnderscores.ReplaceAllString(s, "$1")
	s = headingMarks.ReplaceAllString(s, "")
	s = extraBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
