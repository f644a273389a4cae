package kb

import (
	"fmt"
	"strings"
)

// FallbackProjectNames is the degraded-mode project list used only when the
// KB yields no project names at all.
var FallbackProjectNames = []string{
	"Mood Lamp",
	"Candle Lamp",
	"Smart Fan",
	"Traffic Light",
	"Night Light",
	"Line Follower Robot",
	"Obstacle Avoiding Car",
	"Rain Alarm",
	"Smart Dustbin",
	"Door Alarm",
}

const (
	pinHeading    = "fixed port mappings"
	safetyHeading = "global safety"
)

// Indexes are the per-request lookup structures built from one KB snapshot.
type Indexes struct {
	ProjectNames []string
	// ProjectBlocks has an entry for every name in ProjectNames; the value
	// may be empty when the KB has nothing on that project.
	ProjectBlocks map[string]string
	Lessons       map[string][]Lesson
	PinText       string
	SafetyText    string
	KitOverview   string
	Components    *ComponentIndex
	Support       SupportConfig
}

// Block returns the content block for a project, or "".
func (ix *Indexes) Block(project string) string {
	if ix == nil {
		return ""
	}
	return ix.ProjectBlocks[project]
}

// LessonsFor returns the ordered lessons of a project.
func (ix *Indexes) LessonsFor(project string) []Lesson {
	if ix == nil {
		return nil
	}
	return ix.Lessons[project]
}

// BuildFromDocument parses a raw document and builds its indexes.
func BuildFromDocument(doc map[string]any) *Indexes {
	return Build(Parse(doc))
}

// Build normalizes a KnowledgeBase into lookup indexes. It never fails:
// missing sections produce empty values.
func Build(kb *KnowledgeBase) *Indexes {
	if kb == nil {
		kb = &KnowledgeBase{}
	}

	components := kb.Components
	if len(components) == 0 {
		components = componentsFromPages(kb.Pages)
	}

	ix := &Indexes{
		ProjectNames:  projectNames(kb),
		ProjectBlocks: make(map[string]string),
		Lessons:       make(map[string][]Lesson),
		Components:    NewComponentIndex(components),
		Support:       kb.Support,
		KitOverview:   Sanitize(kb.KitOverview),
		PinText:       Sanitize(kb.PinMap),
		SafetyText:    Sanitize(kb.Safety),
	}
	if ix.PinText == "" {
		ix.PinText = findSection(kb.Pages, pinHeading)
	}
	if ix.SafetyText == "" {
		ix.SafetyText = findSection(kb.Pages, safetyHeading)
	}

	structuredLessons := hasStructuredLessons(kb)
	for _, name := range ix.ProjectNames {
		rec, found := findProject(kb.Projects, name)
		if found {
			ix.ProjectBlocks[name] = renderProject(rec, ix.Components)
		} else {
			ix.ProjectBlocks[name] = joinPages(locateProjectPages(kb.Pages, name))
		}

		if structuredLessons {
			var records []LessonRecord
			if found {
				records = append(records, rec.Lessons...)
			}
			for _, l := range kb.Lessons {
				if strings.EqualFold(l.Project, name) || (found && matchesAlias(rec, l.Project)) {
					records = append(records, l)
				}
			}
			ix.Lessons[name] = lessonsFromRecords(records)
		} else {
			ix.Lessons[name] = lessonsFromText(joinPages(locateProjectPages(kb.Pages, name)))
		}
	}
	return ix
}

// projectNames picks the canonical list: explicit list, structured
// records, page markers, then the fallback list.
func projectNames(kb *KnowledgeBase) []string {
	if names := dedupe(kb.ProjectNames); len(names) > 0 {
		return names
	}
	var fromRecords []string
	for _, p := range kb.Projects {
		fromRecords = append(fromRecords, p.Name)
	}
	if names := dedupe(fromRecords); len(names) > 0 {
		return names
	}
	if names := dedupe(projectNamesFromPages(kb.Pages)); len(names) > 0 {
		return names
	}
	return append([]string(nil), FallbackProjectNames...)
}

func hasStructuredLessons(kb *KnowledgeBase) bool {
	if len(kb.Lessons) > 0 {
		return true
	}
	for _, p := range kb.Projects {
		if len(p.Lessons) > 0 {
			return true
		}
	}
	return false
}

// findProject matches a record by exact name, then by case-insensitive
// name or alias.
func findProject(records []ProjectRecord, name string) (ProjectRecord, bool) {
	for _, p := range records {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range records {
		if strings.EqualFold(p.Name, name) || matchesAlias(p, name) {
			return p, true
		}
	}
	return ProjectRecord{}, false
}

func matchesAlias(p ProjectRecord, name string) bool {
	if name == "" {
		return false
	}
	for _, a := range p.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// renderProject writes a structured record as a fixed-order text block.
func renderProject(p ProjectRecord, components *ComponentIndex) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", p.Name)
	if p.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", p.Difficulty)
	}
	if p.EstimatedTime != "" {
		fmt.Fprintf(&b, "Estimated Time: %s\n", p.EstimatedTime)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.Description)
	}
	if len(p.ComponentIDs) > 0 {
		names := make([]string, 0, len(p.ComponentIDs))
		for _, id := range p.ComponentIDs {
			names = append(names, components.DisplayName(id))
		}
		fmt.Fprintf(&b, "Components: %s\n", strings.Join(names, ", "))
	}
	if len(p.Steps) > 0 {
		b.WriteString("Build Steps:\n")
		for i, s := range p.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}
	if p.HowItWorks != "" {
		fmt.Fprintf(&b, "How It Works: %s\n", p.HowItWorks)
	}
	return Sanitize(b.String())
}
