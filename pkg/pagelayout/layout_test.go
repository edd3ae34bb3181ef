package pagelayout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// buildShots 构造扁平镜头序列，shotsPerScene 为各场景镜头数
func buildShots(shotsPerScene []int, newPage map[int]bool) []ShotRef {
	var out []ShotRef
	for i, n := range shotsPerScene {
		for j := 0; j < n; j++ {
			out = append(out, ShotRef{
				SceneID:       fmt.Sprintf("scene-%d", i),
				ShotID:        fmt.Sprintf("shot-%d-%d", i, j),
				SceneIndex:    i,
				ShotIndex:     j,
				SceneTitle:    fmt.Sprintf("Scene %d", i+1),
				StartsNewPage: newPage[i],
				Description:   "desc",
			})
		}
	}
	return out
}

func TestPaginateGridPacksByCount(t *testing.T) {
	shots := buildShots([]int{13}, nil)
	pages := Paginate(shots, Settings{Mode: ModeGrid, ShotsPerPage: 6})

	if len(pages) != 3 {
		t.Fatalf("expected ceil(13/6)=3 pages, got %d", len(pages))
	}
	wantCounts := []int{6, 6, 1}
	for i, page := range pages {
		if page.Number != i+1 {
			t.Errorf("page %d has number %d", i, page.Number)
		}
		if len(page.Shots) != wantCounts[i] {
			t.Errorf("page %d has %d shots, want %d", i, len(page.Shots), wantCounts[i])
		}
	}
}

func TestPaginateExactMultipleHasNoEmptyTail(t *testing.T) {
	shots := buildShots([]int{12}, nil)
	pages := Paginate(shots, Settings{ShotsPerPage: 6})
	if len(pages) != 2 {
		t.Errorf("expected 2 full pages, got %d", len(pages))
	}
}

func TestPaginateStartsNewPageForcesBreak(t *testing.T) {
	// 场景 1 标记另起一页，即使当前页未满
	shots := buildShots([]int{2, 2}, map[int]bool{1: true})
	pages := Paginate(shots, Settings{ShotsPerPage: 6})

	if len(pages) != 2 {
		t.Fatalf("expected forced break to yield 2 pages, got %d", len(pages))
	}
	if pages[0].Shots[0].SceneID != "scene-0" || pages[1].Shots[0].SceneID != "scene-1" {
		t.Error("scenes were not split across the forced break")
	}
}

func TestPaginateNewPageFlagOnFirstSceneIsNoop(t *testing.T) {
	// 首场景的另起一页标志不产生空白首页
	shots := buildShots([]int{3}, map[int]bool{0: true})
	pages := Paginate(shots, Settings{ShotsPerPage: 6})
	if len(pages) != 1 {
		t.Errorf("expected 1 page, got %d", len(pages))
	}
}

func TestPaginateHeaderNamesFirstSceneStartingOnPage(t *testing.T) {
	shots := buildShots([]int{2, 2}, map[int]bool{1: true})
	pages := Paginate(shots, Settings{ShotsPerPage: 6})

	if pages[0].Header == nil || pages[0].Header.SceneIndex != 0 {
		t.Error("page 1 header should name scene 0")
	}
	if pages[1].Header == nil || pages[1].Header.SceneIndex != 1 {
		t.Error("page 2 header should name scene 1")
	}

	// 页面从场景中段续排时无页眉
	cont := Paginate(buildShots([]int{8}, nil), Settings{ShotsPerPage: 6})
	if len(cont) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(cont))
	}
	if cont[1].Header != nil {
		t.Error("continuation page should carry no scene header")
	}
}

func TestPaginateDetailedPacksByHeight(t *testing.T) {
	long := strings.Repeat("very long shot description ", 40)
	shots := buildShots([]int{6}, nil)
	for i := range shots {
		shots[i].Description = long
	}

	pages := Paginate(shots, Settings{Mode: ModeDetailed, ShotsPerPage: 6})

	if len(pages) < 2 {
		t.Fatalf("tall blocks should overflow onto more pages, got %d", len(pages))
	}
	for i, page := range pages {
		if len(page.Shots) == 0 {
			t.Errorf("page %d is empty", i)
		}
	}
}

func TestSettingsNormalize(t *testing.T) {
	s := Settings{}.Normalize()
	if s.Mode != ModeGrid || s.ShotsPerPage != 6 || s.PageSize != SizeA4 ||
		s.Orientation != Portrait || s.MarginMM != 12 {
		t.Errorf("unexpected defaults: %+v", s)
	}

	bad := Settings{PageSize: "B5", ShotsPerPage: -1}.Normalize()
	if bad.PageSize != SizeA4 || bad.ShotsPerPage != 6 {
		t.Errorf("invalid values should fall back to defaults: %+v", bad)
	}
}

func TestPageDimensionsFollowOrientation(t *testing.T) {
	p := Settings{PageSize: SizeA4, Orientation: Portrait}.Normalize()
	l := Settings{PageSize: SizeA4, Orientation: Landscape}.Normalize()

	if p.PageWidthMM() != 210 || p.PageHeightMM() != 297 {
		t.Errorf("portrait A4 = %vx%v", p.PageWidthMM(), p.PageHeightMM())
	}
	if l.PageWidthMM() != 297 || l.PageHeightMM() != 210 {
		t.Errorf("landscape A4 = %vx%v", l.PageWidthMM(), l.PageHeightMM())
	}
}

// 分页不丢、不重、不乱序
func TestPaginatePreservesSequenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every shot appears exactly once in order", prop.ForAll(
		func(sceneCount, shotsPerScene, perPage int) bool {
			counts := make([]int, sceneCount)
			for i := range counts {
				counts[i] = shotsPerScene
			}
			shots := buildShots(counts, nil)

			pages := Paginate(shots, Settings{ShotsPerPage: perPage})

			var flat []ShotRef
			for _, page := range pages {
				flat = append(flat, page.Shots...)
			}
			if len(flat) != len(shots) {
				return false
			}
			for i := range shots {
				if flat[i].ShotID != shots[i].ShotID {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 6),
		gen.IntRange(1, 5),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
