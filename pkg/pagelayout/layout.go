// Package pagelayout computes print page layouts for storyboard exports
// Package pagelayout 计算分镜导出的打印页面布局
// Pagination is pure and deterministic: scene/shot order plus settings fully
// determine the page list
// 分页是纯函数且确定的：场景/镜头顺序加设置完全决定页面列表
package pagelayout

import (
	"strings"
)

// Mode 布局模式
type Mode string

const (
	ModeGrid     Mode = "grid"
	ModeList     Mode = "list"
	ModeDetailed Mode = "detailed"
)

// Orientation 页面方向
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Page size identifiers // 页面尺寸标识
const (
	SizeA4     = "A4"
	SizeA3     = "A3"
	SizeLetter = "Letter"
)

// pageDims page dimensions in millimeters, portrait
// pageDims 纵向页面毫米尺寸
var pageDims = map[string][2]float64{
	SizeA4:     {210, 297},
	SizeA3:     {297, 420},
	SizeLetter: {216, 279},
}

// Settings layout settings for one export run
// Settings 单次导出的布局设置
type Settings struct {
	Mode         Mode
	ShotsPerPage int
	PageSize     string
	Orientation  Orientation
	MarginMM     float64
}

// Normalize fills unset fields with defaults
// Normalize 用默认值填充未设置的字段
func (s Settings) Normalize() Settings {
	if s.Mode == "" {
		s.Mode = ModeGrid
	}
	if s.ShotsPerPage <= 0 {
		s.ShotsPerPage = 6
	}
	if _, ok := pageDims[s.PageSize]; !ok {
		s.PageSize = SizeA4
	}
	if s.Orientation != Landscape {
		s.Orientation = Portrait
	}
	if s.MarginMM <= 0 {
		s.MarginMM = 12
	}
	return s
}

// PageWidthMM / PageHeightMM resolve the physical page dimensions
// PageWidthMM / PageHeightMM 解析物理页面尺寸
func (s Settings) PageWidthMM() float64 {
	d := pageDims[s.PageSize]
	if s.Orientation == Landscape {
		return d[1]
	}
	return d[0]
}

func (s Settings) PageHeightMM() float64 {
	d := pageDims[s.PageSize]
	if s.Orientation == Landscape {
		return d[0]
	}
	return d[1]
}

// ShotRef one shot in the flat export sequence
// ShotRef 扁平导出序列中的一个镜头
type ShotRef struct {
	SceneID       string
	ShotID        string
	SceneIndex    int
	ShotIndex     int
	SceneTitle    string
	StartsNewPage bool // scene-level flag, meaningful on the scene's first shot // 场景级标志，在场景首镜头上生效
	Description   string
}

// SceneHeader optional header shown where a new scene starts on a page
// SceneHeader 新场景在某页开始时显示的可选页眉
type SceneHeader struct {
	SceneID    string
	SceneIndex int
	Title      string
}

// Page one laid-out page
// Page 一个已排版页面
type Page struct {
	Number int
	Header *SceneHeader
	Shots  []ShotRef
}

// Paginate lays the flat shot sequence out into pages
// Page breaks are forced when a scene is flagged to start on a new page or
// when the page reaches the per-page shot limit; grid/list pack by count,
// detailed packs by estimated block height
// Paginate 将扁平镜头序列排入页面
// 当场景被标记为另起一页、或页面达到每页镜头上限时强制分页；
// grid/list 按数量装箱，detailed 按估算块高度装箱
func Paginate(shots []ShotRef, settings Settings) []Page {
	s := settings.Normalize()

	var pages []Page
	var current Page
	var usedHeight float64

	contentHeight := s.PageHeightMM() - 2*s.MarginMM

	flush := func() {
		if len(current.Shots) > 0 {
			current.Number = len(pages) + 1
			pages = append(pages, current)
		}
		current = Page{}
		usedHeight = 0
	}

	for _, shot := range shots {
		sceneStart := shot.ShotIndex == 0

		if len(current.Shots) > 0 && sceneStart && shot.StartsNewPage {
			flush()
		}

		if s.Mode == ModeDetailed {
			blockHeight := estimateBlockHeight(shot, s)
			if len(current.Shots) > 0 && usedHeight+blockHeight > contentHeight {
				flush()
			}
			usedHeight += blockHeight
		}

		current.Shots = append(current.Shots, shot)
		if sceneStart && current.Header == nil {
			current.Header = &SceneHeader{
				SceneID:    shot.SceneID,
				SceneIndex: shot.SceneIndex,
				Title:      shot.SceneTitle,
			}
		}

		if len(current.Shots) >= s.ShotsPerPage {
			flush()
		}
	}
	flush()

	return pages
}

// estimateBlockHeight estimated height of one detailed-mode shot block in mm
// The measurement loop is an estimate by line count, not a pixel measurement
// estimateBlockHeight 估算 detailed 模式下单个镜头块的毫米高度
// 按行数估算，不做像素级测量
func estimateBlockHeight(shot ShotRef, s Settings) float64 {
	const (
		frameHeight  = 60.0 // image frame // 图片框
		lineHeight   = 5.0
		metaLines    = 2 // camera/lighting metadata rows // 机位/灯光元数据行
		blockSpacing = 8.0
	)

	charsPerLine := int((s.PageWidthMM() - 2*s.MarginMM) / 2.2)
	if charsPerLine < 20 {
		charsPerLine = 20
	}

	textLines := 1
	desc := strings.TrimSpace(shot.Description)
	if desc != "" {
		textLines = (len(desc) + charsPerLine - 1) / charsPerLine
	}

	return frameHeight + float64(textLines+metaLines)*lineHeight + blockSpacing
}
