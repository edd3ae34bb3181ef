package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/pkg/pagelayout"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// 渲染比例：每毫米像素数
const pxPerMM = 4.0

var (
	pageBg     = color.RGBA{255, 255, 255, 255}
	frameFill  = color.RGBA{236, 238, 240, 255}
	borderGray = color.RGBA{139, 148, 158, 255}
	inkBlack   = color.RGBA{31, 35, 40, 255}
	metaGray   = color.RGBA{87, 96, 106, 255}
)

func labelFor(ref pagelayout.ShotRef) string {
	return fmt.Sprintf("%d.%d", ref.SceneIndex+1, ref.ShotIndex+1)
}

// renderPageImage 将单个已排版页面渲染为 PNG
func (s *exportService) renderPageImage(doc *domain.ProjectDocument,
	page pagelayout.Page, settings pagelayout.Settings) ([]byte, error) {

	w := int(settings.PageWidthMM() * pxPerMM)
	h := int(settings.PageHeightMM() * pxPerMM)
	margin := int(settings.MarginMM * pxPerMM)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{pageBg}, image.Point{}, draw.Src)

	y := margin
	if page.Header != nil {
		drawText(img, margin, y+13,
			fmt.Sprintf("Scene %d - %s", page.Header.SceneIndex+1, page.Header.Title), inkBlack)
		y += 36
	}

	cols := 1
	if settings.Mode == pagelayout.ModeGrid {
		cols = 2
	}
	contentW := w - 2*margin
	cellW := contentW / cols
	rows := (len(page.Shots) + cols - 1) / cols
	rowH := (h - y - margin) / rows

	for i, ref := range page.Shots {
		col := i % cols
		row := i / cols
		x := margin + col*cellW
		cy := y + row*rowH

		frameH := rowH * 55 / 100
		frame := image.Rect(x+8, cy+8, x+cellW-8, cy+8+frameH)
		draw.Draw(img, frame, &image.Uniform{frameFill}, image.Point{}, draw.Src)
		strokeRect(img, frame, borderGray)

		drawText(img, x+14, cy+24, labelFor(ref), inkBlack)

		textY := cy + frameH + 24
		for _, line := range wrapText(ref.Description, cellW/8) {
			drawText(img, x+8, textY, line, inkBlack)
			textY += 16
		}

		if shot := shotByID(doc.Storyboard, ref.ShotID); shot != nil {
			meta := fmt.Sprintf("%s | %s | %s | %s",
				shot.ShotType, shot.CameraAngle, shot.CameraMovement, shot.Mood)
			drawText(img, x+8, textY, meta, metaGray)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// strokeRect 画 1px 边框
func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawText 以基线坐标绘制一行文本
func drawText(img *image.RGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// wrapText 按字符数折行
func wrapText(text string, charsPerLine int) []string {
	if charsPerLine < 12 {
		charsPerLine = 12
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > charsPerLine {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)

	// 控制单镜头块的文本高度
	if len(lines) > 4 {
		lines = lines[:4]
		lines[3] += "…"
	}
	return lines
}
