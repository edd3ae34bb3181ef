package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/dto"
	"github.com/haierkeys/storyboard-studio-service/internal/metric"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"
	"github.com/haierkeys/storyboard-studio-service/pkg/pagelayout"
	"github.com/haierkeys/storyboard-studio-service/pkg/storage"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// Export format union, closed
// 导出格式联合，封闭集合
const (
	ExportTypePDF    = "pdf"
	ExportTypeHTML   = "html"
	ExportTypeImages = "images"
)

// ExportService 定义导出服务接口
type ExportService interface {
	// Export 按请求格式导出项目故事板，产物经存储层写出
	Export(ctx context.Context, uid, projectID int64, params *dto.ExportRequest) (*dto.ExportDTO, error)
}

// exportService 实现 ExportService 接口
type exportService struct {
	projectRepo domain.ProjectRepository
	store       storage.Storager
	pusher      ProgressPusher
	logger      *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(projectRepo domain.ProjectRepository, store storage.Storager,
	pusher ProgressPusher, logger *zap.Logger) ExportService {
	if pusher == nil {
		pusher = nopPusher{}
	}
	return &exportService{
		projectRepo: projectRepo,
		store:       store,
		pusher:      pusher,
		logger:      logger,
	}
}

// layoutSettings 由请求参数构造布局设置
func layoutSettings(params *dto.ExportRequest) pagelayout.Settings {
	sizes := map[string]string{
		"a4": pagelayout.SizeA4, "a3": pagelayout.SizeA3, "letter": pagelayout.SizeLetter,
	}
	return pagelayout.Settings{
		Mode:         pagelayout.Mode(params.Mode),
		ShotsPerPage: params.ShotsPerPage,
		PageSize:     sizes[params.PageSize],
		Orientation:  pagelayout.Orientation(params.Orientation),
		MarginMM:     params.MarginMM,
	}.Normalize()
}

// flattenShots 将故事板压平为有序镜头序列
func flattenShots(sb *domain.Storyboard) []pagelayout.ShotRef {
	var out []pagelayout.ShotRef
	for i, scene := range sb.Scenes {
		for j, shot := range scene.Shots {
			out = append(out, pagelayout.ShotRef{
				SceneID:       scene.ID,
				ShotID:        shot.ID,
				SceneIndex:    i,
				ShotIndex:     j,
				SceneTitle:    scene.Title,
				StartsNewPage: scene.StartsNewPage,
				Description:   shot.Description,
			})
		}
	}
	return out
}

// Export 按请求格式导出
func (s *exportService) Export(ctx context.Context, uid, projectID int64, params *dto.ExportRequest) (*dto.ExportDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		return nil, code.ErrorProjectNotFound
	}
	doc := project.Document
	if doc == nil || doc.Storyboard == nil {
		return nil, code.ErrorExportFailed.WithDetails("project has no storyboard")
	}

	settings := layoutSettings(params)
	pages := pagelayout.Paginate(flattenShots(doc.Storyboard), settings)

	started := time.Now()
	stamp := started.Format("20060102-150405")
	prefix := fmt.Sprintf("%d/%d/storyboard-%s", uid, projectID, stamp)

	result := &dto.ExportDTO{Type: params.Type, PageCount: len(pages)}

	switch params.Type {
	case ExportTypePDF:
		raw, err := s.renderPDF(project, doc, pages, settings)
		if err != nil {
			return nil, code.ErrorExportFailed.WithDetails(err.Error())
		}
		url, err := s.store.SendContent(prefix+".pdf", raw, started)
		if err != nil {
			return nil, code.ErrorStorageFailed.WithDetails(err.Error())
		}
		result.URL = url
		result.Size = int64(len(raw))

	case ExportTypeHTML:
		raw, err := s.renderHTML(project, doc, pages)
		if err != nil {
			return nil, code.ErrorExportFailed.WithDetails(err.Error())
		}
		url, err := s.store.SendContent(prefix+".html", raw, started)
		if err != nil {
			return nil, code.ErrorStorageFailed.WithDetails(err.Error())
		}
		result.URL = url
		result.Size = int64(len(raw))

	case ExportTypeImages:
		for i, page := range pages {
			raw, err := s.renderPageImage(doc, page, settings)
			if err != nil {
				return nil, code.ErrorExportFailed.WithDetails(err.Error())
			}
			url, err := s.store.SendContent(fmt.Sprintf("%s-page-%02d.png", prefix, i+1), raw, started)
			if err != nil {
				return nil, code.ErrorStorageFailed.WithDetails(err.Error())
			}
			result.URLs = append(result.URLs, url)
			result.Size += int64(len(raw))
		}
		if len(result.URLs) > 0 {
			result.URL = result.URLs[0]
		}

	default:
		return nil, code.ErrorInvalidExportType
	}

	metric.ExportTotal.WithLabelValues(params.Type).Inc()
	metric.ExportDuration.WithLabelValues(params.Type).Observe(time.Since(started).Seconds())

	s.logger.Info("export finished",
		zap.Int64("project", projectID),
		zap.String("type", params.Type),
		zap.Int("pages", len(pages)),
		zap.Int64("bytes", result.Size))

	s.pusher.PushToUser(uid, dto.WSActionExportDone, &dto.WSExportDoneDTO{
		ProjectID: projectID,
		Type:      params.Type,
		URL:       result.URL,
		PageCount: len(pages),
	})
	return result, nil
}

// shotByID 导出渲染时按 ID 反查镜头
func shotByID(sb *domain.Storyboard, shotID string) *domain.Shot {
	_, shot, _ := sb.FindShot(shotID)
	return shot
}

// renderPDF 渲染 PDF：封面 + 按 §布局分页的镜头框
func (s *exportService) renderPDF(project *domain.Project, doc *domain.ProjectDocument,
	pages []pagelayout.Page, settings pagelayout.Settings) ([]byte, error) {

	orient := "P"
	if settings.Orientation == pagelayout.Landscape {
		orient = "L"
	}

	pdf := fpdf.New(orient, "mm", settings.PageSize, "")
	pdf.SetTitle(project.Name, true)
	pdf.SetAutoPageBreak(false, settings.MarginMM)

	margin := settings.MarginMM
	contentW := settings.PageWidthMM() - 2*margin

	// 封面：标题、故事梗概、项目二维码
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(margin, margin+20)
	pdf.MultiCell(contentW, 12, project.Name, "", "C", false)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(margin, pdf.GetY()+10)
	pdf.MultiCell(contentW, 5, truncate(doc.StoryText, 600), "", "L", false)

	if qr, err := qrcode.Encode(fmt.Sprintf("storyboard:project:%d", project.ID), qrcode.Medium, 256); err == nil {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("cover-qr", opts, bytes.NewReader(qr))
		pdf.ImageOptions("cover-qr", settings.PageWidthMM()-margin-24, settings.PageHeightMM()-margin-24,
			24, 24, false, opts, 0, "")
	}

	cols := 1
	if settings.Mode == pagelayout.ModeGrid {
		cols = 2
	}
	cellW := contentW / float64(cols)

	for _, page := range pages {
		pdf.AddPage()
		y := margin

		if page.Header != nil {
			pdf.SetFont("Helvetica", "B", 14)
			pdf.SetXY(margin, y)
			pdf.CellFormat(contentW, 8,
				fmt.Sprintf("Scene %d — %s", page.Header.SceneIndex+1, page.Header.Title),
				"", 0, "L", false, 0, "")
			y += 12
		}

		rows := (len(page.Shots) + cols - 1) / cols
		rowH := (settings.PageHeightMM() - y - margin) / float64(rows)

		for i, ref := range page.Shots {
			col := i % cols
			row := i / cols
			x := margin + float64(col)*cellW
			cy := y + float64(row)*rowH

			frameH := rowH * 0.55
			pdf.Rect(x+2, cy+2, cellW-4, frameH, "D")

			shot := shotByID(doc.Storyboard, ref.ShotID)
			label := fmt.Sprintf("%d.%d", ref.SceneIndex+1, ref.ShotIndex+1)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetXY(x+4, cy+4)
			pdf.CellFormat(cellW-8, 5, label, "", 0, "L", false, 0, "")

			pdf.SetFont("Helvetica", "", 9)
			pdf.SetXY(x+2, cy+frameH+4)
			pdf.MultiCell(cellW-4, 4, truncate(ref.Description, 220), "", "L", false)

			if shot != nil {
				pdf.SetFont("Helvetica", "I", 8)
				pdf.SetX(x + 2)
				pdf.MultiCell(cellW-4, 4,
					fmt.Sprintf("%s | %s | %s | %s", shot.ShotType, shot.CameraAngle, shot.CameraMovement, shot.Mood),
					"", "L", false)
				if settings.Mode == pagelayout.ModeDetailed {
					pdf.SetX(x + 2)
					pdf.MultiCell(cellW-4, 4,
						fmt.Sprintf("Light: %s / Audio: %s", shot.Lighting, shot.Audio),
						"", "L", false)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
