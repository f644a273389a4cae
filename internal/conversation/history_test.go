package conversation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemkit/kitbot/internal/conversation"
	"github.com/stemkit/kitbot/internal/kb"
	"github.com/stemkit/kitbot/pkg/models"
)

var names = []string{"Mood Lamp", "Candle Lamp", "Smart Fan"}

func components() *kb.ComponentIndex {
	return kb.NewComponentIndex([]kb.Component{
		{ID: "servo_motor", Name: "Servo Motor"},
		{ID: "rgb_led", Name: "RGB LED"},
	})
}

func turn(role, content string) models.ChatMessage {
	return models.ChatMessage{Role: role, Content: content}
}

func TestResolve_MostRecentWins(t *testing.T) {
	history := []models.ChatMessage{
		turn("user", "tell me about Smart Fan"),
		turn("assistant", "The Smart Fan uses a servo motor."),
		turn("user", "tell me about Mood Lamp"),
		turn("assistant", "   "),
	}

	got := conversation.Resolve(history, names, components())
	assert.Equal(t, "Mood Lamp", got.LastProject)
	assert.Equal(t, "servo_motor", got.LastComponent)
}

func TestResolve_StopsWhenBothFound(t *testing.T) {
	history := []models.ChatMessage{
		turn("user", "Candle Lamp with the RGB LED"),
		turn("user", "Mood Lamp servo motor"),
	}

	got := conversation.Resolve(history, names, components())
	assert.Equal(t, "Mood Lamp", got.LastProject)
	assert.Equal(t, "servo_motor", got.LastComponent)
}

func TestResolve_Empty(t *testing.T) {
	got := conversation.Resolve(nil, names, components())
	assert.Equal(t, conversation.Context{}, got)
}

func TestNormalize(t *testing.T) {
	in := []models.ChatMessage{turn("User", "hi"), turn("model", "hello"), turn("bot", "hey")}

	got, err := conversation.Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"user", "assistant", "assistant"}, []string{got[0].Role, got[1].Role, got[2].Role})
	assert.Equal(t, "User", in[0].Role, "input must not be modified")
}

func TestNormalize_RejectsUnknownRole(t *testing.T) {
	_, err := conversation.Normalize([]models.ChatMessage{turn("user", "hi"), turn("narrator", "x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history[1]")
}

func TestRecent(t *testing.T) {
	history := []models.ChatMessage{
		turn("user", "one"),
		turn("assistant", "two"),
		turn("user", ""),
		turn("user", "three"),
		turn("assistant", "four"),
	}

	got := conversation.Recent(history, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"two", "three", "four"}, []string{got[0].Content, got[1].Content, got[2].Content})

	assert.Nil(t, conversation.Recent(history, 0))
}

func TestRecent_CapsLongTurns(t *testing.T) {
	long := strings.Repeat("é", 2500)
	got := conversation.Recent([]models.ChatMessage{turn("user", long)}, 1)
	require.Len(t, got, 1)
	assert.Equal(t, 2003, len([]rune(got[0].Content)))
	assert.True(t, strings.HasSuffix(got[0].Content, "..."))
}
