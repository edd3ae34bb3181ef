package diff

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCompareIdenticalTexts(t *testing.T) {
	stats := Compare("same story", "same story")
	if stats.Changed() {
		t.Errorf("identical texts should not report changes: %+v", stats)
	}
	if stats.Inserted != 0 || stats.Deleted != 0 {
		t.Errorf("expected zero insert/delete, got %+v", stats)
	}
}

func TestCompareInsertAndDelete(t *testing.T) {
	stats := Compare("abc", "abcd")
	if stats.Inserted != 1 || stats.Deleted != 0 {
		t.Errorf("append one char: got %+v", stats)
	}

	stats = Compare("abcd", "abc")
	if stats.Inserted != 0 || stats.Deleted != 1 {
		t.Errorf("drop one char: got %+v", stats)
	}
}

func TestSummary(t *testing.T) {
	if got := Summary("a story", "a story"); got != "no changes" {
		t.Errorf("Summary for identical texts = %q", got)
	}

	got := Summary("abc", "abcd")
	if got != "+1 -0 chars" {
		t.Errorf("Summary = %q, want %q", got, "+1 -0 chars")
	}
}

func TestPrettyHTMLMarksChanges(t *testing.T) {
	html := PrettyHTML("old line", "new line")
	if !strings.Contains(html, "<ins") || !strings.Contains(html, "<del") {
		t.Errorf("expected ins/del markup in diff html: %s", html)
	}
}

// 字符数守恒：equal+deleted 覆盖旧文本，equal+inserted 覆盖新文本
func TestCompareConservationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("diff stats account for every rune", prop.ForAll(
		func(oldText, newText string) bool {
			stats := Compare(oldText, newText)
			return stats.Equal+stats.Deleted == len([]rune(oldText)) &&
				stats.Equal+stats.Inserted == len([]rune(newText))
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
