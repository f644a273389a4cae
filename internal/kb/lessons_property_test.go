package kb_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/stemkit/kitbot/internal/kb"
)

// Property: whatever the input order, sorting yields
// Connection < Build < Coding < Working < Intro < unranked.
func TestProperty_LessonOrdering(t *testing.T) {
	want := []string{
		"Mood Lamp Connection",
		"Mood Lamp Build",
		"Mood Lamp Coding",
		"Mood Lamp Working",
		"Mood Lamp Intro",
		"Mood Lamp Extras",
	}
	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.Permutation(want).Draw(rt, "names")
		lessons := make([]kb.Lesson, len(names))
		for i, n := range names {
			lessons[i] = kb.Lesson{Name: n}
		}

		kb.SortLessons(lessons)

		for i, l := range lessons {
			if l.Name != want[i] {
				rt.Fatalf("position %d = %q, want %q (input %v)", i, l.Name, want[i], names)
			}
		}
	})
}

// Property: lessons of equal rank keep their relative input order.
func TestProperty_LessonSortIsStable(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		lessons := make([]kb.Lesson, n)
		for i := range lessons {
			kind := rapid.SampledFrom([]string{"Build", "Coding", "Extra"}).Draw(rt, "kind")
			lessons[i] = kb.Lesson{Name: kind, Explanation: string(rune('a' + i))}
		}

		kb.SortLessons(lessons)

		for i := 1; i < len(lessons); i++ {
			prev, cur := lessons[i-1], lessons[i]
			if kb.LessonRank(prev.Name) > kb.LessonRank(cur.Name) {
				rt.Fatalf("rank out of order at %d: %q before %q", i, prev.Name, cur.Name)
			}
			if prev.Name == cur.Name && prev.Explanation > cur.Explanation {
				rt.Fatalf("equal-rank lessons reordered at %d", i)
			}
		}
	})
}

func TestLessonRank(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Wire Connection", 0},
		{"Build 2", 1},
		{"Coding Part 1", 2},
		{"Code walkthrough", 2},
		{"Working Demo", 3},
		{"Introduction", 4},
		{"Bonus Challenge", 5},
	}
	for _, tt := range tests {
		if got := kb.LessonRank(tt.name); got != tt.want {
			t.Errorf("LessonRank(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
