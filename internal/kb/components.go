package kb

import (
	"regexp"
	"strings"
)

// Component is one hardware part in the kit.
type Component struct {
	ID          string
	Name        string
	Description string
	Category    string
}

// ComponentIndex maps component ids to components, remembering the order
// components were first seen so iteration is deterministic.
type ComponentIndex struct {
	order []string
	byID  map[string]Component
}

// NewComponentIndex indexes components by id. The first entry for an id wins.
func NewComponentIndex(components []Component) *ComponentIndex {
	ci := &ComponentIndex{byID: make(map[string]Component, len(components))}
	for _, c := range components {
		if c.ID == "" {
			continue
		}
		if _, dup := ci.byID[c.ID]; dup {
			continue
		}
		ci.order = append(ci.order, c.ID)
		ci.byID[c.ID] = c
	}
	return ci
}

// Get returns the component with the given id.
func (ci *ComponentIndex) Get(id string) (Component, bool) {
	if ci == nil {
		return Component{}, false
	}
	c, ok := ci.byID[id]
	return c, ok
}

// DisplayName resolves id to its display name, passing unknown ids through.
func (ci *ComponentIndex) DisplayName(id string) string {
	if c, ok := ci.Get(id); ok && c.Name != "" {
		return c.Name
	}
	return id
}

// All returns components in first-seen order.
func (ci *ComponentIndex) All() []Component {
	if ci == nil {
		return nil
	}
	out := make([]Component, 0, len(ci.order))
	for _, id := range ci.order {
		out = append(out, ci.byID[id])
	}
	return out
}

// Len returns the number of indexed components.
func (ci *ComponentIndex) Len() int {
	if ci == nil {
		return 0
	}
	return len(ci.order)
}

// Categories returns the distinct non-empty categories in first-seen order.
func (ci *ComponentIndex) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range ci.All() {
		key := strings.ToLower(c.Category)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c.Category)
	}
	return out
}

var (
	componentIDLine   = regexp.MustCompile(`(?im)^[ \t]*component\s*id\s*:\s*(.+?)\s*$`)
	componentNameLine = regexp.MustCompile(`(?im)^[ \t]*(?:component\s*)?name\s*:\s*(.+?)\s*$`)
	componentDescLine = regexp.MustCompile(`(?im)^[ \t]*description\s*:\s*(.+?)\s*$`)
	componentCatLine  = regexp.MustCompile(`(?im)^[ \t]*(?:category|type)\s*:\s*(.+?)\s*$`)
)

// componentsFromPages scans pages tagged as component pages for
// "Component ID:" delimited records.
func componentsFromPages(pages []Page) []Component {
	var out []Component
	for _, p := range pages {
		if !isComponentPage(p) {
			continue
		}
		text := p.Text
		locs := componentIDLine.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			if c, ok := componentFromBlock(text, ""); ok {
				out = append(out, c)
			}
			continue
		}
		for i, loc := range locs {
			end := len(text)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			block := text[loc[0]:end]
			id := componentIDLine.FindStringSubmatch(block)[1]
			if c, ok := componentFromBlock(block, id); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func isComponentPage(p Page) bool {
	if strings.HasPrefix(p.Kind, "component") {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), "component")
}

func componentFromBlock(block, id string) (Component, bool) {
	c := Component{ID: strings.TrimSpace(id)}
	if m := componentNameLine.FindStringSubmatch(block); m != nil {
		c.Name = m[1]
	}
	if m := componentDescLine.FindStringSubmatch(block); m != nil {
		c.Description = m[1]
	}
	if m := componentCatLine.FindStringSubmatch(block); m != nil {
		c.Category = m[1]
	}
	if c.ID == "" {
		c.ID = slug(c.Name)
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	return c, c.ID != ""
}

func slug(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('_')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}
