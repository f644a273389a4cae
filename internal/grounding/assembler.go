// Package grounding renders the knowledge handed to the text generator and
// the deterministic replies built purely from the knowledge base.
package grounding

import (
	"fmt"
	"strings"

	"github.com/stemkit/kitbot/internal/intent"
	"github.com/stemkit/kitbot/internal/kb"
)

// Input is everything the assembler needs for one request.
type Input struct {
	Project      string
	ProjectBlock string
	Lessons      map[string][]kb.Lesson
	PinText      string
	SafetyText   string
	KitOverview  string
	// ComponentsSummary and ProjectsSummary are pre-rendered; see
	// ComponentsSummary and ProjectsSummary.
	ComponentsSummary string
	ProjectsSummary   string
	Intent            intent.Tag
	WantLessons       bool
	// Component is set when a single component is in focus.
	Component *kb.Component
}

// Assemble renders the grounded context. Sections appear in fixed order and
// are skipped when empty. Only the focused project's block and lessons are
// ever included.
func Assemble(in Input) string {
	overview := strings.TrimSpace(in.KitOverview)
	if overview == "" {
		overview = DefaultKitOverview
	}

	sections := []string{
		section("KIT OVERVIEW", overview),
		section("SAFETY RULES", joinNonEmpty(strings.TrimSpace(in.SafetyText), SupplementarySafetyNotes)),
		section("PIN / PORT RULES", in.PinText),
		section("COMPONENTS SUMMARY", in.ComponentsSummary),
		section("PROJECTS SUMMARY", in.ProjectsSummary),
	}

	if in.Component != nil {
		sections = append(sections, section("FOCUSED COMPONENT", componentText(*in.Component)))
	}

	switch {
	case in.Project != "" && strings.TrimSpace(in.ProjectBlock) != "":
		sections = append(sections, section("FOCUSED PROJECT: "+in.Project, in.ProjectBlock))
		if in.WantLessons || in.Intent == intent.ProjectVideos {
			sections = append(sections, section("LESSONS FOR "+in.Project, renderLessonContext(in.Lessons[in.Project])))
		}
	case in.Project != "":
		sections = append(sections, section("INSTRUCTION", fmt.Sprintf(
			"The user is asking about %q but the knowledge base has no details for it. "+
				"Say so honestly. Do not invent pins, wiring, components or links for it.", in.Project)))
	default:
		sections = append(sections, section("INSTRUCTION", askForProjectInstruction))
	}

	return joinNonEmpty(sections...)
}

const askForProjectInstruction = "No specific project has been identified. " +
	"If the question depends on a project, ask the user for the exact project name instead of guessing. " +
	"Never make up pin numbers, wiring, component lists or video links."

func section(title, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	return title + ":\n" + body
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

func componentText(c kb.Component) string {
	if c.Description == "" {
		return c.Name
	}
	return c.Name + ": " + c.Description
}

func renderLessonContext(lessons []kb.Lesson) string {
	var b strings.Builder
	for i, l := range lessons {
		fmt.Fprintf(&b, "%d. %s\n", i+1, l.Name)
		if l.Explanation != "" {
			fmt.Fprintf(&b, "   %s\n", l.Explanation)
		}
		for _, link := range l.Links {
			fmt.Fprintf(&b, "   %s\n", link)
		}
	}
	return b.String()
}

// ComponentsSummary gives the component count and category names only.
func ComponentsSummary(components *kb.ComponentIndex) string {
	n := components.Len()
	if n == 0 {
		return ""
	}
	summary := fmt.Sprintf("The kit has %d components.", n)
	if cats := components.Categories(); len(cats) > 0 {
		summary += " Categories: " + strings.Join(cats, ", ") + "."
	}
	return summary
}

// ProjectsSummary lists every project name. When a project is focused the
// summary carries the count only, so no other project's name reaches the
// generator.
func ProjectsSummary(names []string, focused string) string {
	if len(names) == 0 {
		return ""
	}
	if focused != "" {
		return fmt.Sprintf("The kit has %d projects.", len(names))
	}
	return fmt.Sprintf("The kit has %d projects: %s.", len(names), strings.Join(names, ", "))
}
