// Package diff wraps go-diff for story text comparison between versions
// Package diff 封装 go-diff，用于版本之间的故事文本对比
package diff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stats counts of a text comparison
// Stats 文本对比的统计
type Stats struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
	Equal    int `json:"equal"`
}

// Changed reports whether the compared texts differ
// Changed 返回对比文本是否有差异
func (s Stats) Changed() bool {
	return s.Inserted > 0 || s.Deleted > 0
}

// Compare diffs two texts and returns character-level stats
// Compare 对比两段文本并返回字符级统计
func Compare(oldText, newText string) Stats {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var stats Stats
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			stats.Inserted += n
		case diffmatchpatch.DiffDelete:
			stats.Deleted += n
		case diffmatchpatch.DiffEqual:
			stats.Equal += n
		}
	}
	return stats
}

// Summary renders a compact human-readable change summary
// Summary 生成简短的可读变更摘要
func Summary(oldText, newText string) string {
	stats := Compare(oldText, newText)
	if !stats.Changed() {
		return "no changes"
	}
	return fmt.Sprintf("+%d -%d chars", stats.Inserted, stats.Deleted)
}

// PrettyHTML renders an inline HTML view of the diff
// PrettyHTML 生成差异的内联 HTML 视图
func PrettyHTML(oldText, newText string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyHtml(diffs)
}
