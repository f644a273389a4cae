package entity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/stemkit/kitbot/internal/entity"
	"github.com/stemkit/kitbot/internal/kb"
)

var projectNames = kb.FallbackProjectNames

func testComponents() *kb.ComponentIndex {
	return kb.NewComponentIndex([]kb.Component{
		{ID: "servo_motor", Name: "Servo Motor", Description: "Turns to an exact angle."},
		{ID: "pot", Name: "Potentiometer", Description: "A knob that changes resistance."},
		{ID: "ldr", Name: "LDR", Description: "Senses light."},
		{ID: "rgb_led", Name: "RGB LED", Description: "Glows in many colours."},
	})
}

func TestDetectProject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact", "Mood Lamp", "Mood Lamp"},
		{"exact mixed case", "  cAnDlE   lAmP ", "Candle Lamp"},
		{"substring", "how do I wire the smart fan?", "Smart Fan"},
		{"all words any order", "lamp for my mood", "Mood Lamp"},
		{"single significant word", "help with candle", "Candle Lamp"},
		{"tie keeps first", "my lamp is off", "Mood Lamp"},
		{"collapsed", "moodlamp not working", "Mood Lamp"},
		{"punctuation", "Traffic-Light help", "Traffic Light"},
		{"no match", "hello there", ""},
		{"stop words only", "how do you build the project", ""},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entity.DetectProject(tt.text, projectNames); got != tt.want {
				t.Errorf("DetectProject(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectProject_NoNames(t *testing.T) {
	assert.Equal(t, "", entity.DetectProject("Mood Lamp", nil))
}

// Property: a canonical name typed in any casing always detects itself.
func TestProperty_ExactMatchPriority(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.SampledFrom(projectNames).Draw(rt, "name")
		var b strings.Builder
		for i, r := range name {
			if rapid.Bool().Draw(rt, "upper"+string(rune('a'+i%26))) {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteString(strings.ToLower(string(r)))
			}
		}
		if got := entity.DetectProject(b.String(), projectNames); got != name {
			rt.Fatalf("DetectProject(%q) = %q, want %q", b.String(), got, name)
		}
	})
}

// Property: chatter built from stop words and greetings never matches.
func TestProperty_ThresholdRejection(t *testing.T) {
	filler := []string{"hello", "there", "the", "and", "how", "what", "are", "you", "can", "does", "hi", "ok", "thanks"}
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.SliceOfN(rapid.SampledFrom(filler), 1, 8).Draw(rt, "words")
		text := strings.Join(words, " ")
		if got := entity.DetectProject(text, projectNames); got != "" {
			rt.Fatalf("DetectProject(%q) = %q, want none", text, got)
		}
	})
}

func TestDetectComponent(t *testing.T) {
	components := testComponents()
	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact name", "servo motor", "servo_motor"},
		{"exact id", "rgb_led", "rgb_led"},
		{"substring", "what does the potentiometer do?", "pot"},
		{"variation", "what does the knob do", "pot"},
		{"short variation", "my servo keeps buzzing", "servo_motor"},
		{"variation of id", "is the photoresistor broken", "ldr"},
		{"whole words only", "I potted a plant", ""},
		{"nothing", "hello there", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entity.DetectComponent(tt.text, components); got != tt.want {
				t.Errorf("DetectComponent(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectComponent_NilIndex(t *testing.T) {
	assert.Equal(t, "", entity.DetectComponent("servo motor", nil))
}

func TestVariations(t *testing.T) {
	got := entity.Variations(kb.Component{ID: "pot", Name: "Potentiometer"})
	assert.Equal(t, []string{"knob", "pot", "dial", "pot meter"}, got)

	assert.Empty(t, entity.Variations(kb.Component{ID: "mystery", Name: "Mystery Part"}))
}
