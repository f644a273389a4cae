package grounding

import (
	"fmt"
	"strings"

	"github.com/stemkit/kitbot/internal/kb"
)

// DefaultKitOverview is used when the KB has no overview text.
const DefaultKitOverview = "This is a hands-on electronics kit for young makers. " +
	"It comes with safe, low-voltage parts like LEDs, sensors, motors and a controller board, " +
	"plus step-by-step projects with video lessons that teach you how to build and code each one."

// DefaultSafetyText is used when the KB has no safety section.
const DefaultSafetyText = "Always build with a grown-up nearby. " +
	"Disconnect the battery before changing any wires. " +
	"Never connect the battery's + and - directly together."

// DefaultPinText is used when the KB has no pin/port mapping section.
const DefaultPinText = "Only use the ports named in the project's own instructions. " +
	"If you are unsure which port to use, ask for the exact project name first."

// SupplementarySafetyNotes are always appended to the safety section.
const SupplementarySafetyNotes = "- The kit runs on low voltage, so it cannot give you an electric shock.\n" +
	"- Handle parts gently: don't bend pins or pull wires out by force."

// KitOverviewAnswer is the deterministic reply for kit overview questions.
func KitOverviewAnswer(overview string) string {
	if o := strings.TrimSpace(overview); o != "" {
		return o
	}
	return DefaultKitOverview
}

// ComponentsListAnswer lists every component with its description.
func ComponentsListAnswer(components *kb.ComponentIndex) string {
	all := components.All()
	if len(all) == 0 {
		return "I don't have the component list for this kit yet."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Your kit has %d components:\n", len(all))
	for _, c := range all {
		if c.Description != "" {
			fmt.Fprintf(&b, "\n- %s: %s", c.Name, c.Description)
		} else {
			fmt.Fprintf(&b, "\n- %s", c.Name)
		}
	}
	return b.String()
}

// ProjectListAnswer numbers every project.
func ProjectListAnswer(names []string) string {
	if len(names) == 0 {
		return "I don't have the project list for this kit yet."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "There are %d projects in your kit:\n", len(names))
	for i, n := range names {
		fmt.Fprintf(&b, "\n%d. %s", i+1, n)
	}
	b.WriteString("\n\nTell me which one you'd like to build!")
	return b.String()
}

// ProjectVideosAnswer lists a project's lessons in ranked order.
func ProjectVideosAnswer(project string, lessons []kb.Lesson) string {
	if len(lessons) == 0 {
		return fmt.Sprintf("I don't have video lessons for %s yet.", project)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the video lessons for %s:\n", project)
	for i, l := range lessons {
		fmt.Fprintf(&b, "\n%d. %s", i+1, l.Name)
		if l.Explanation != "" {
			fmt.Fprintf(&b, "\n   %s", l.Explanation)
		}
		for _, link := range l.Links {
			fmt.Fprintf(&b, "\n   %s", link)
		}
	}
	return b.String()
}

// ClarifyProjectAnswer asks the user to name the project.
func ClarifyProjectAnswer(names []string) string {
	msg := "Which project are you working on? Please tell me the exact project name"
	if len(names) == 0 {
		return msg + "."
	}
	return msg + ", for example: " + strings.Join(names, ", ") + "."
}
