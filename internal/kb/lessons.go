package kb

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Lesson is one playable lesson for a project.
type Lesson struct {
	Name        string
	Links       []string
	Explanation string
}

// lessonRanks orders lessons topically. Troubleshooting flows rely on
// connection lessons coming first.
var lessonRanks = []struct {
	rank     int
	keywords []string
}{
	{0, []string{"connection"}},
	{1, []string{"build"}},
	{2, []string{"coding", "code"}},
	{3, []string{"working", "demo"}},
	{4, []string{"intro"}},
}

const unrankedLesson = 5

// LessonRank returns the topical rank of a lesson name.
func LessonRank(name string) int {
	lower := strings.ToLower(name)
	for _, r := range lessonRanks {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.rank
			}
		}
	}
	return unrankedLesson
}

// SortLessons orders lessons by rank, keeping input order for equal ranks.
func SortLessons(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return LessonRank(lessons[i].Name) < LessonRank(lessons[j].Name)
	})
}

// lessonsFromRecords expands records to one Lesson per distinct link.
// Records with several links get a "Part N" suffix per link.
func lessonsFromRecords(records []LessonRecord) []Lesson {
	var out []Lesson
	for _, r := range records {
		links := dedupe(r.Links)
		name := r.Name
		if name == "" {
			name = "Lesson"
		}
		if len(links) <= 1 {
			out = append(out, Lesson{Name: name, Links: links, Explanation: r.Explanation})
			continue
		}
		for i, link := range links {
			out = append(out, Lesson{
				Name:        fmt.Sprintf("%s Part %d", name, i+1),
				Links:       []string{link},
				Explanation: r.Explanation,
			})
		}
	}
	SortLessons(out)
	return out
}

var (
	lessonMarker     = regexp.MustCompile(`(?im)^[ \t]*(?:lesson\s*id\s*:.*|build\s*\d+\b.*|coding\s*part\s*\d+\b.*)$`)
	lessonIDPrefix   = regexp.MustCompile(`(?i)^\s*lesson\s*id\s*:\s*`)
	lessonNameLine   = regexp.MustCompile(`(?im)^[ \t]*(?:lesson\s*name|lesson\s*title|title)\s*:\s*(.+?)\s*$`)
	explanationStart = regexp.MustCompile(`(?i)^\s*(?:explanation|what\s+you(?:'|’)ll\s+learn|summary)\s*:\s*`)
	labelLine        = regexp.MustCompile(`^\s*[A-Za-z][A-Za-z '’]{1,30}:`)
	httpLink         = regexp.MustCompile(`https?://[^\s<>"'()\[\]]+`)
)

// lessonsFromText extracts lessons from free text delimited by
// "Lesson ID:", "Build N" or "Coding Part N" marker lines.
func lessonsFromText(text string) []Lesson {
	locs := lessonMarker.FindAllStringIndex(text, -1)
	var out []Lesson
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := text[loc[0]:end]
		marker := strings.TrimSpace(text[loc[0]:loc[1]])

		name := strings.TrimSpace(lessonIDPrefix.ReplaceAllString(marker, ""))
		if m := lessonNameLine.FindStringSubmatch(block); m != nil {
			name = m[1]
		}
		if name == "" {
			name = marker
		}

		out = append(out, Lesson{
			Name:        name,
			Links:       extractLinks(block),
			Explanation: extractExplanation(block),
		})
	}
	SortLessons(out)
	return out
}

func extractLinks(block string) []string {
	var links []string
	for _, l := range httpLink.FindAllString(block, -1) {
		links = append(links, strings.TrimRight(l, ".,;:!?"))
	}
	return dedupe(links)
}

// extractExplanation takes the text after an "Explanation:" label up to the
// next blank line, label line or link.
func extractExplanation(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		loc := explanationStart.FindStringIndex(line)
		if loc == nil {
			continue
		}
		parts := []string{strings.TrimSpace(line[loc[1]:])}
		for _, next := range lines[i+1:] {
			t := strings.TrimSpace(next)
			if t == "" || labelLine.MatchString(t) || httpLink.MatchString(t) || lessonMarker.MatchString(t) {
				break
			}
			parts = append(parts, t)
		}
		return strings.TrimSpace(strings.Join(parts, " "))
	}
	return ""
}

// dedupe removes empty and repeated strings, preserving first occurrence.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
