// Package kb turns the loosely-structured knowledge-base document into the
// lookup structures the chat pipeline works from: project names, project
// blocks, lessons, components and global reference text.
//
// Every accessor here degrades to an empty value on a missing or mistyped
// field. Only fetch and decode failures are errors.
package kb

import (
	"fmt"
	"strconv"
	"strings"
)

// KnowledgeBase is the typed view of one fetched KB document.
type KnowledgeBase struct {
	ProjectNames []string
	Projects     []ProjectRecord
	Components   []Component
	Lessons      []LessonRecord
	Pages        []Page
	KitOverview  string
	Safety       string
	PinMap       string
	Support      SupportConfig
}

// ProjectRecord is a structured project entry.
type ProjectRecord struct {
	Name          string
	Aliases       []string
	Difficulty    string
	EstimatedTime string
	Description   string
	ComponentIDs  []string
	Steps         []string
	HowItWorks    string
	Lessons       []LessonRecord
}

// LessonRecord is a structured lesson entry. Project is only set for
// lessons listed at the top level of the document.
type LessonRecord struct {
	Project     string
	Name        string
	Links       []string
	Explanation string
}

// Page is one free-text documentation section.
type Page struct {
	Title   string
	Text    string
	Kind    string
	Project string
}

// SupportConfig controls when requests short-circuit to human support.
type SupportConfig struct {
	Enabled  bool
	Triggers []string
	Email    string
	Phone    string
	Hours    string
}

// Triggered reports whether reason is in the configured trigger set.
func (s SupportConfig) Triggered(reason string) bool {
	if !s.Enabled || reason == "" {
		return false
	}
	for _, t := range s.Triggers {
		if strings.EqualFold(t, reason) {
			return true
		}
	}
	return false
}

// Parse reads a decoded JSON/YAML document into a KnowledgeBase.
func Parse(doc map[string]any) *KnowledgeBase {
	kb := &KnowledgeBase{}
	if doc == nil {
		return kb
	}

	kb.ProjectNames = nameList(field(doc, "projectNames", "project_names", "projectList"))
	for _, raw := range listOf(field(doc, "projects")) {
		if p, ok := parseProject(raw); ok {
			kb.Projects = append(kb.Projects, p)
		}
	}
	for _, raw := range listOf(field(doc, "components")) {
		if c, ok := parseComponent(raw); ok {
			kb.Components = append(kb.Components, c)
		}
	}
	for _, raw := range listOf(field(doc, "lessons")) {
		if l, ok := parseLesson(raw); ok {
			kb.Lessons = append(kb.Lessons, l)
		}
	}
	for _, raw := range listOf(field(doc, "pages", "documents", "sections")) {
		if p, ok := parsePage(raw); ok {
			kb.Pages = append(kb.Pages, p)
		}
	}

	kb.KitOverview = textField(doc, "kitOverview", "kit_overview", "overview")
	kb.Safety = textField(doc, "safety", "safetyRules", "safety_rules")
	kb.PinMap = textField(doc, "pinMap", "pin_map", "pins", "portMappings")
	kb.Support = parseSupport(mapOf(field(doc, "support", "supportEscalation", "support_escalation")))
	return kb
}

func parseProject(raw any) (ProjectRecord, bool) {
	m := mapOf(raw)
	if m == nil {
		return ProjectRecord{}, false
	}
	p := ProjectRecord{
		Name:          textField(m, "name", "title"),
		Aliases:       nameList(field(m, "aliases", "alias")),
		Difficulty:    textField(m, "difficulty", "level"),
		EstimatedTime: textField(m, "estimatedTime", "estimated_time", "time", "duration"),
		Description:   textField(m, "description", "summary"),
		ComponentIDs:  nameList(field(m, "components", "componentIds", "component_ids")),
		Steps:         stepList(field(m, "steps", "buildSteps", "build_steps")),
		HowItWorks:    textField(m, "howItWorks", "how_it_works", "working"),
	}
	if p.Name == "" {
		return ProjectRecord{}, false
	}
	for _, lr := range listOf(field(m, "lessons", "videos")) {
		if l, ok := parseLesson(lr); ok {
			p.Lessons = append(p.Lessons, l)
		}
	}
	return p, true
}

func parseComponent(raw any) (Component, bool) {
	m := mapOf(raw)
	if m == nil {
		if s := scalar(raw); s != "" {
			return Component{ID: s, Name: s}, true
		}
		return Component{}, false
	}
	c := Component{
		ID:          textField(m, "id", "componentId", "component_id"),
		Name:        textField(m, "name", "title"),
		Description: textField(m, "description", "summary"),
		Category:    textField(m, "category", "type", "group"),
	}
	if c.ID == "" {
		c.ID = c.Name
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	return c, c.ID != ""
}

func parseLesson(raw any) (LessonRecord, bool) {
	m := mapOf(raw)
	if m == nil {
		return LessonRecord{}, false
	}
	l := LessonRecord{
		Project:     textField(m, "project", "projectName", "project_name"),
		Name:        textField(m, "name", "title", "lessonName"),
		Explanation: textField(m, "explanation", "summary", "description"),
	}
	for _, key := range []string{"videoLinks", "video_links", "videos", "links", "videoLink", "video", "url", "link"} {
		v, ok := m[key]
		if !ok {
			continue
		}
		if list := listOf(v); list != nil {
			for _, item := range list {
				if s := scalar(item); s != "" {
					l.Links = append(l.Links, s)
				} else if im := mapOf(item); im != nil {
					if s := textField(im, "url", "link", "href"); s != "" {
						l.Links = append(l.Links, s)
					}
				}
			}
		} else if s := scalar(v); s != "" {
			l.Links = append(l.Links, s)
		}
	}
	return l, l.Name != "" || len(l.Links) > 0
}

func parsePage(raw any) (Page, bool) {
	if s := scalar(raw); s != "" {
		return Page{Text: s}, true
	}
	m := mapOf(raw)
	if m == nil {
		return Page{}, false
	}
	p := Page{
		Title:   textField(m, "title", "heading", "name"),
		Text:    textField(m, "text", "content", "body"),
		Kind:    strings.ToLower(textField(m, "kind", "type", "tag", "category")),
		Project: textField(m, "project", "projectName"),
	}
	if p.Text == "" && p.Title == "" {
		return Page{}, false
	}
	return p, true
}

func parseSupport(m map[string]any) SupportConfig {
	if m == nil {
		return SupportConfig{}
	}
	cfg := SupportConfig{
		Enabled: boolOf(field(m, "enabled", "enable")),
		Email:   textField(m, "email", "contactEmail", "contact_email"),
		Phone:   textField(m, "phone", "contactPhone", "contact_phone"),
		Hours:   textField(m, "hours", "supportHours", "support_hours"),
	}
	if contact := mapOf(field(m, "contact")); contact != nil {
		if cfg.Email == "" {
			cfg.Email = textField(contact, "email")
		}
		if cfg.Phone == "" {
			cfg.Phone = textField(contact, "phone")
		}
		if cfg.Hours == "" {
			cfg.Hours = textField(contact, "hours")
		}
	}
	for _, t := range nameList(field(m, "triggers", "reasons", "triggerReasons", "trigger_reasons")) {
		cfg.Triggers = append(cfg.Triggers, strings.ToUpper(t))
	}
	return cfg
}

// ── Lenient accessors ───────────────────────────────────────

func field(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// textField returns a trimmed string. Lists of strings are joined by newlines.
func textField(m map[string]any, keys ...string) string {
	v := field(m, keys...)
	if s := scalar(v); s != "" {
		return s
	}
	if list := listOf(v); list != nil {
		var lines []string
		for _, item := range list {
			if s := scalar(item); s != "" {
				lines = append(lines, s)
			}
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func boolOf(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	default:
		return false
	}
}

func listOf(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

func mapOf(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out
	default:
		return nil
	}
}

// nameList accepts a list of strings or objects carrying a name/id field
// and returns the non-empty values in order.
func nameList(v any) []string {
	var out []string
	if s := scalar(v); s != "" {
		return []string{s}
	}
	for _, item := range listOf(v) {
		if s := scalar(item); s != "" {
			out = append(out, s)
			continue
		}
		if m := mapOf(item); m != nil {
			if s := textField(m, "name", "id", "title"); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func stepList(v any) []string {
	if s := scalar(v); s != "" {
		return []string{s}
	}
	var out []string
	for _, item := range listOf(v) {
		if s := scalar(item); s != "" {
			out = append(out, s)
			continue
		}
		if m := mapOf(item); m != nil {
			if s := textField(m, "text", "step", "description", "instruction"); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
