// Package support detects messages that should go to a human support team
// instead of the generator, and renders the canned support reply.
//
// Checks run in fixed order and the first match wins:
//   - USER_REQUESTED_SUPPORT: the user asks for contact details
//   - HARDWARE_DAMAGED: broken, burnt or unpowered hardware
//   - PART_MISSING: a part is missing from the box
//   - UNKNOWN_COMPONENT: generic hardware talk with nothing recognised
//   - PROJECT_NOT_IN_KB: a named project the KB has no content for
package support

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stemkit/kitbot/internal/kb"
)

// Reason is why a message was escalated.
type Reason string

const (
	None                 Reason = ""
	UserRequestedSupport Reason = "USER_REQUESTED_SUPPORT"
	HardwareDamaged      Reason = "HARDWARE_DAMAGED"
	PartMissing          Reason = "PART_MISSING"
	UnknownComponent     Reason = "UNKNOWN_COMPONENT"
	ProjectNotInKB       Reason = "PROJECT_NOT_IN_KB"
)

// Input is what the detector looks at.
type Input struct {
	Text              string
	DetectedProject   string
	ProjectBlock      string
	DetectedComponent string
}

var (
	contactPatterns = compile(
		`\bcontact\b`, `\bsupport\s+team\b`, `\bcall\b`, `\be-?mail\b`, `\bphone\b`, `\bhelpline\b`,
	)
	damagePatterns = compile(
		`\bbroken\b`, `\bburnt\b`, `\bburned\b`, `\bmelted\b`, `\bsmok(?:e|ing)\b`, `\bfaulty\b`,
		`\bnot\s+powering(?:\s+on)?\b`,
	)
	missingPatterns = compile(
		`\bmissing\b`, `\bnot\s+included\b`, `\blost\b`, `\bcomponent\s+missing\b`,
	)
	hardwareNouns = compile(
		`\b(?:sensor|motor|board|wire|led|wheel|fan|battery|batteries|switch)(?:e?s)?\b`,
	)
)

// Detect returns the first matching escalation reason, or None.
func Detect(in Input) Reason {
	text := strings.ToLower(in.Text)
	switch {
	case anyMatch(contactPatterns, text):
		return UserRequestedSupport
	case anyMatch(damagePatterns, text):
		return HardwareDamaged
	case anyMatch(missingPatterns, text):
		return PartMissing
	case in.DetectedProject == "" && in.DetectedComponent == "" && anyMatch(hardwareNouns, text):
		return UnknownComponent
	case in.DetectedProject != "" && strings.TrimSpace(in.ProjectBlock) == "":
		return ProjectNotInKB
	}
	return None
}

// ShouldEscalate reports whether reason short-circuits under cfg.
func ShouldEscalate(reason Reason, cfg kb.SupportConfig) bool {
	return cfg.Triggered(string(reason))
}

var leadLines = map[Reason]string{
	UserRequestedSupport: "Sure! Here is how you can reach our support team.",
	HardwareDamaged:      "Oh no, it sounds like a part may be damaged. Please stop using it and unplug the battery. Our support team can help.",
	PartMissing:          "Sorry about the missing part! Our support team will help you get it sorted.",
	UnknownComponent:     "I couldn't recognise that part from your kit. Our support team can take a look.",
	ProjectNotInKB:       "I don't have details for that project yet. Our support team can help you with it.",
}

// Message renders the canned support reply for reason.
func Message(reason Reason, cfg kb.SupportConfig) string {
	lead, ok := leadLines[reason]
	if !ok {
		lead = "Our support team can help you with this."
	}
	var b strings.Builder
	b.WriteString(lead)
	if cfg.Email != "" {
		fmt.Fprintf(&b, "\nEmail: %s", cfg.Email)
	}
	if cfg.Phone != "" {
		fmt.Fprintf(&b, "\nPhone: %s", cfg.Phone)
	}
	if cfg.Hours != "" {
		fmt.Fprintf(&b, "\nHours: %s", cfg.Hours)
	}
	if cfg.Email == "" && cfg.Phone == "" {
		b.WriteString("\nPlease ask a grown-up to contact the place you got your kit from.")
	}
	return b.String()
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
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
