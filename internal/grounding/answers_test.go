package grounding_test

import (
	"testing"

	"github.com/stemkit/kitbot/internal/grounding"
	"github.com/stemkit/kitbot/internal/kb"
)

func TestKitOverviewAnswer(t *testing.T) {
	if got := grounding.KitOverviewAnswer("  Our kit.  "); got != "Our kit." {
		t.Errorf("KitOverviewAnswer() = %q, want %q", got, "Our kit.")
	}
	if got := grounding.KitOverviewAnswer(""); got != grounding.DefaultKitOverview {
		t.Errorf("KitOverviewAnswer(\"\") = %q, want default overview", got)
	}
}

func TestProjectListAnswer(t *testing.T) {
	got := grounding.ProjectListAnswer([]string{"Mood Lamp", "Smart Fan"})
	want := "There are 2 projects in your kit:\n\n1. Mood Lamp\n2. Smart Fan\n\nTell me which one you'd like to build!"
	if got != want {
		t.Errorf("ProjectListAnswer() = %q, want %q", got, want)
	}
}

func TestComponentsListAnswer(t *testing.T) {
	ci := kb.NewComponentIndex([]kb.Component{
		{ID: "led", Name: "LED", Description: "A small light."},
		{ID: "buzzer", Name: "Buzzer"},
	})
	want := "Your kit has 2 components:\n\n- LED: A small light.\n- Buzzer"
	if got := grounding.ComponentsListAnswer(ci); got != want {
		t.Errorf("ComponentsListAnswer() = %q, want %q", got, want)
	}
	if got := grounding.ComponentsListAnswer(nil); got != "I don't have the component list for this kit yet." {
		t.Errorf("ComponentsListAnswer(nil) = %q", got)
	}
}

func TestProjectVideosAnswer(t *testing.T) {
	lessons := []kb.Lesson{
		{Name: "Mood Lamp Connection", Links: []string{"https://v.example.com/1"}},
		{Name: "Mood Lamp Build", Explanation: "Put it together.", Links: []string{"https://v.example.com/2"}},
	}
	want := "Here are the video lessons for Mood Lamp:\n" +
		"\n1. Mood Lamp Connection\n   https://v.example.com/1" +
		"\n2. Mood Lamp Build\n   Put it together.\n   https://v.example.com/2"
	if got := grounding.ProjectVideosAnswer("Mood Lamp", lessons); got != want {
		t.Errorf("ProjectVideosAnswer() = %q, want %q", got, want)
	}

	if got := grounding.ProjectVideosAnswer("Rain Alarm", nil); got != "I don't have video lessons for Rain Alarm yet." {
		t.Errorf("ProjectVideosAnswer(no lessons) = %q", got)
	}
}

func TestClarifyProjectAnswer(t *testing.T) {
	got := grounding.ClarifyProjectAnswer([]string{"Mood Lamp", "Smart Fan"})
	want := "Which project are you working on? Please tell me the exact project name, for example: Mood Lamp, Smart Fan."
	if got != want {
		t.Errorf("ClarifyProjectAnswer() = %q, want %q", got, want)
	}
}
