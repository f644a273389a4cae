package intent_test

import (
	"testing"

	"github.com/stemkit/kitbot/internal/intent"
	"github.com/stemkit/kitbot/internal/kb"
)

func testComponents() *kb.ComponentIndex {
	return kb.NewComponentIndex([]kb.Component{
		{ID: "servo_motor", Name: "Servo Motor"},
		{ID: "pot", Name: "Potentiometer"},
	})
}

func TestClassify(t *testing.T) {
	names := kb.FallbackProjectNames
	components := testComponents()

	tests := []struct {
		text string
		want intent.Tag
	}{
		{"what's inside the kit?", intent.KitOverview},
		{"tell me about the kit", intent.KitOverview},
		{"kit overview please", intent.KitOverview},
		{"what is in the kit for the mood lamp", intent.General},
		{"list all the components in the kit", intent.ComponentsList},
		{"show me the parts", intent.ComponentsList},
		{"what does the servo do?", intent.ComponentInfo},
		{"explain the potentiometer", intent.ComponentInfo},
		{"what does the servo do in the smart fan?", intent.General},
		{"what projects can I build?", intent.ListProjects},
		{"how many projects are there", intent.ListProjects},
		{"list all modules", intent.ListProjects},
		{"show me videos for Mood Lamp", intent.ProjectVideos},
		{"show me some videos", intent.ProjectVideos},
		{"how do I build the smart fan", intent.ProjectVideos},
		{"is there a tutorial for this project", intent.ProjectVideos},
		{"my fan is not spinning", intent.General},
		{"", intent.General},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := intent.Classify(tt.text, names, components); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestTag_Deterministic(t *testing.T) {
	deterministic := map[intent.Tag]bool{
		intent.KitOverview:    true,
		intent.ComponentsList: true,
		intent.ListProjects:   true,
		intent.ProjectVideos:  true,
		intent.ComponentInfo:  false,
		intent.General:        false,
	}
	for tag, want := range deterministic {
		if got := tag.Deterministic(); got != want {
			t.Errorf("%s.Deterministic() = %v, want %v", tag, got, want)
		}
	}
}

func TestWantsLessons(t *testing.T) {
	tests := []struct {
		tag  intent.Tag
		text string
		want bool
	}{
		{intent.ProjectVideos, "anything", true},
		{intent.General, "my lamp is not working", true},
		{intent.General, "where is coding part 2", true},
		{intent.General, "send me the link", true},
		{intent.General, "what colour does it glow", false},
	}
	for _, tt := range tests {
		if got := intent.WantsLessons(tt.tag, tt.text); got != tt.want {
			t.Errorf("WantsLessons(%s, %q) = %v, want %v", tt.tag, tt.text, got, tt.want)
		}
	}
}
