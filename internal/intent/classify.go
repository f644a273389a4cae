// Package intent classifies a chat message into one of a small, closed set
// of intents using ordered pattern rules.
package intent

import (
	"regexp"
	"strings"

	"github.com/stemkit/kitbot/internal/entity"
	"github.com/stemkit/kitbot/internal/kb"
)

// Tag is a classified intent.
type Tag string

const (
	KitOverview    Tag = "KIT_OVERVIEW"
	ComponentsList Tag = "COMPONENTS_LIST"
	ComponentInfo  Tag = "COMPONENT_INFO"
	ListProjects   Tag = "LIST_PROJECTS"
	ProjectVideos  Tag = "PROJECT_VIDEOS"
	General        Tag = "GENERAL"
)

func (t Tag) String() string { return string(t) }

// Deterministic reports whether replies for this tag are fully built from
// the KB without calling the generator.
func (t Tag) Deterministic() bool {
	switch t {
	case KitOverview, ComponentsList, ListProjects, ProjectVideos:
		return true
	default:
		return false
	}
}

var (
	kitOverviewPatterns = compile(
		`\bwhat(?:'s|’s|\s+is|\s+are)?\s+(?:in|inside|included\s+in|about|comes\s+(?:in|with))\b.*\bkit\b`,
		`\bwhat(?:'s|’s|\s+is)\s+(?:the|this|my|a)\s+kit\b`,
		`\bwhat\s+does\s+(?:the|this|my)\s+kit\s+(?:contain|have|include|do)\b`,
		`\bwhat\b.*\bkit\s+contains?\b`,
		`\btell\s+me\s+about\b.*\bkit\b`,
		`\bkit\s+overview\b`,
		`\boverview\s+of\s+(?:the|this|my)\s+kit\b`,
	)
	componentsListPatterns = compile(
		`\b(?:what|which|list|show)\b.*\b(?:components|parts|pieces)\b.*\bkit\b`,
		`\bkit\b.*\b(?:components|parts|pieces)\s+list\b`,
	)
	// Matched only when no project is mentioned.
	bareComponentsListPatterns = compile(
		`\b(?:list|show)\s+(?:me\s+)?(?:all\s+)?(?:the\s+)?(?:components|parts|pieces)\b`,
		`\ball\s+(?:the\s+)?(?:components|parts)\b`,
	)
	explainPatterns = compile(
		`\bwhat(?:'s|’s|\s+is|\s+are|\s+does|\s+do)\b`,
		`\btell\s+me\s+about\b`,
		`\bhow\b.*\b(?:works?|use|used|using)\b`,
		`\bexplain\b`,
	)
	listProjectsPatterns = compile(
		`\b(?:list|show|what\s+are|tell\s+me|which)\b.*\b(?:projects|modules)\b`,
		`\bwhat\s+(?:\w+\s+)?(?:projects|modules)\b`,
		`\bhow\s+many\s+(?:projects|modules)\b`,
		`\ball\s+(?:the\s+)?(?:projects|modules)\b`,
	)
	mediaWords    = compile(`\b(?:videos?|lessons?|tutorials?)\b`)
	projectWords  = compile(`\b(?:projects?|modules?)\b`)
	howToBuild    = compile(`\bhow\s+(?:to|do\s+i|can\s+i|should\s+i)\s+(?:build|make|create|assemble)\b`)
	showVideos    = compile(`\b(?:show|give|send|play|watch)\b.*\b(?:videos?|tutorials?)\b`)
	lessonQueries = compile(
		`\b(?:videos?|lessons?|tutorials?|links?)\b`,
		`\bcoding\s+part\b`,
		`\bbuild\s+\d+\b`,
		`\b(?:stuck|troubleshoot\w*|not\s+working|doesn'?t\s+work)\b`,
	)
)

// Classify returns the first intent whose rules match, in fixed precedence.
func Classify(text string, projectNames []string, components *kb.ComponentIndex) Tag {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return General
	}
	mentionsProject := entity.DetectProject(text, projectNames) != ""

	if !mentionsProject && anyMatch(kitOverviewPatterns, lower) {
		return KitOverview
	}
	if anyMatch(componentsListPatterns, lower) || (!mentionsProject && anyMatch(bareComponentsListPatterns, lower)) {
		return ComponentsList
	}
	if !mentionsProject && anyMatch(explainPatterns, lower) && entity.DetectComponent(text, components) != "" {
		return ComponentInfo
	}
	if anyMatch(listProjectsPatterns, lower) {
		return ListProjects
	}
	if isProjectVideos(lower, mentionsProject) {
		return ProjectVideos
	}
	return General
}

func isProjectVideos(lower string, mentionsProject bool) bool {
	if anyMatch(mediaWords, lower) && (anyMatch(projectWords, lower) || mentionsProject) {
		return true
	}
	if anyMatch(howToBuild, lower) && (anyMatch(projectWords, lower) || mentionsProject) {
		return true
	}
	return anyMatch(showVideos, lower)
}

// WantsLessons reports whether a reply should carry the focused project's
// lesson list.
func WantsLessons(tag Tag, text string) bool {
	if tag == ProjectVideos {
		return true
	}
	return anyMatch(lessonQueries, strings.ToLower(text))
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
