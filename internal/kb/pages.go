package kb

import (
	"regexp"
	"strings"
)

const (
	// projectBlockPages is how many pages after the "Project Name" page
	// belong to a free-text project block.
	projectBlockPages = 5
	// sectionPages is how many pages after a heading page belong to a
	// global reference section (pin map, safety).
	sectionPages = 2
)

var (
	projectNameMarker = regexp.MustCompile(`(?im)^[ \t]*project\s*name\s*[:\-–]\s*(.+?)\s*$`)
	manyNewlines      = regexp.MustCompile(`\n{3,}`)
	trailingSpace     = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Sanitize strips NUL bytes, trims trailing whitespace on every line and
// collapses runs of three or more newlines to two.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = trailingSpace.ReplaceAllString(s, "")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func pageText(p Page) string {
	if p.Title == "" {
		return p.Text
	}
	if p.Text == "" {
		return p.Title
	}
	return p.Title + "\n" + p.Text
}

func joinPages(pages []Page) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, pageText(p))
	}
	return Sanitize(strings.Join(parts, "\n\n"))
}

// projectNamesFromPages collects "Project Name: X" values in encounter order.
func projectNamesFromPages(pages []Page) []string {
	var out []string
	for _, p := range pages {
		out = append(out, markerNames(p)...)
	}
	return out
}

// markerNames returns the project names declared on a page.
func markerNames(p Page) []string {
	var out []string
	for _, m := range projectNameMarker.FindAllStringSubmatch(pageText(p), -1) {
		out = append(out, m[1])
	}
	return out
}

// locateProjectPages finds the pages that document name: the marker range
// plus every page tagged with the project, in document order. A page whose
// marker equals name wins; otherwise the first page with a line containing
// both "project name" and name. The range runs for up to projectBlockPages
// following pages and stops early at a page that starts or is tagged with
// a different project.
func locateProjectPages(pages []Page, name string) []Page {
	if name == "" {
		return nil
	}
	include := make([]bool, len(pages))
	if start := markerStart(pages, name); start >= 0 {
		include[start] = true
		for i := start + 1; i < len(pages) && i <= start+projectBlockPages; i++ {
			if startsOtherProject(pages[i], name) {
				break
			}
			include[i] = true
		}
	}
	for i, p := range pages {
		if strings.EqualFold(strings.TrimSpace(p.Project), name) {
			include[i] = true
		}
	}

	var out []Page
	for i, p := range pages {
		if include[i] {
			out = append(out, p)
		}
	}
	return out
}

// markerStart returns the index of the page that opens name's range, or -1.
func markerStart(pages []Page, name string) int {
	for i, p := range pages {
		for _, m := range markerNames(p) {
			if strings.EqualFold(m, name) {
				return i
			}
		}
	}
	lname := strings.ToLower(name)
	for i, p := range pages {
		for _, line := range strings.Split(strings.ToLower(pageText(p)), "\n") {
			if strings.Contains(line, "project name") && strings.Contains(line, lname) {
				return i
			}
		}
	}
	return -1
}

func startsOtherProject(p Page, name string) bool {
	if p.Project != "" && !strings.EqualFold(strings.TrimSpace(p.Project), name) {
		return true
	}
	for _, m := range markerNames(p) {
		if !strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}

// findSection returns the first page containing heading (case-insensitive)
// plus the following sectionPages pages, sanitized.
func findSection(pages []Page, heading string) string {
	heading = strings.ToLower(heading)
	for i, p := range pages {
		if strings.Contains(strings.ToLower(pageText(p)), heading) {
			end := i + 1 + sectionPages
			if end > len(pages) {
				end = len(pages)
			}
			return joinPages(pages[i:end])
		}
	}
	return ""
}
