// Package entity finds the single project and/or component a message refers
// to, using layered exact, substring, word-overlap and collapsed matching.
package entity

import (
	"strings"
	"unicode"

	"github.com/stemkit/kitbot/internal/kb"
)

const (
	// MinProjectScore is the lowest total score accepted as a project match.
	MinProjectScore = 3
	// MinComponentScore is the lowest total score accepted as a component match.
	MinComponentScore = 2

	sharedWordScore = 3
	allWordsBonus   = 10
)

// stopWords never count toward word overlap.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "how": true,
	"what": true, "are": true, "you": true, "your": true, "this": true,
	"that": true, "can": true, "does": true, "about": true, "from": true,
	"make": true, "build": true, "project": true, "kit": true,
}

// DetectProject returns the best-matching project name, or "" when no
// candidate reaches MinProjectScore. Ties go to the earlier name.
func DetectProject(text string, names []string) string {
	lower := normalize(text)
	if lower == "" {
		return ""
	}
	for _, name := range names {
		if lower == normalize(name) {
			return name
		}
	}

	textWords := wordSet(lower)
	textCollapsed := collapse(lower)

	best, bestScore := "", 0
	for _, name := range names {
		if s := projectScore(lower, textWords, textCollapsed, normalize(name)); s > bestScore {
			best, bestScore = name, s
		}
	}
	if bestScore < MinProjectScore {
		return ""
	}
	return best
}

func projectScore(text string, textWords map[string]bool, textCollapsed, name string) int {
	if name == "" {
		return 0
	}
	score := 0
	if strings.Contains(text, name) {
		score += 2 * len(name)
	}

	words := significantWords(name)
	shared := 0
	for _, w := range words {
		if textWords[w] {
			shared++
		}
	}
	score += sharedWordScore * shared
	if len(words) > 0 && shared == len(words) {
		score += allWordsBonus
	}

	if c := collapse(name); c != "" && strings.Contains(textCollapsed, c) {
		score += len(c)
	}
	return score
}

// DetectComponent returns the id of the best-matching component, or "" when
// no candidate reaches MinComponentScore. Ties go to the earlier component.
func DetectComponent(text string, components *kb.ComponentIndex) string {
	lower := normalize(text)
	if lower == "" {
		return ""
	}
	all := components.All()
	for _, c := range all {
		if lower == normalize(c.Name) || lower == normalize(c.ID) {
			return c.ID
		}
	}

	padded := " " + strings.Join(strings.Fields(wordsOnly(lower)), " ") + " "
	best, bestScore := "", 0
	for _, c := range all {
		name := normalize(c.Name)
		score := 0
		if name != "" && strings.Contains(lower, name) {
			score += 2 * len(name)
		}
		for _, v := range Variations(c) {
			if strings.Contains(padded, " "+v+" ") {
				score += len(v)
			}
		}
		if score > bestScore {
			best, bestScore = c.ID, score
		}
	}
	if bestScore < MinComponentScore {
		return ""
	}
	return best
}

// ── Text helpers ────────────────────────────────────────────

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// wordsOnly replaces every non-alphanumeric rune with a space.
func wordsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		if w = trimPunct(w); w != "" {
			set[w] = true
		}
	}
	return set
}

// significantWords splits a name into words that may score on overlap.
func significantWords(name string) []string {
	var out []string
	for _, w := range strings.Fields(name) {
		w = trimPunct(w)
		if len(w) < 3 || stopWords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

func trimPunct(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// collapse drops every non-alphanumeric rune.
func collapse(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
