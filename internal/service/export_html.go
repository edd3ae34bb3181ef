package service

import (
	"bytes"
	"html/template"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/pkg/pagelayout"

	"github.com/yuin/goldmark"
)

// 自包含 HTML 导出模板，样式内联
const htmlExportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 0; background: #f4f4f5; color: #1f2328; }
.page { background: #fff; max-width: 960px; margin: 24px auto; padding: 32px; box-shadow: 0 1px 4px rgba(0,0,0,.12); page-break-after: always; }
h1 { font-size: 28px; margin: 0 0 8px; }
h2 { font-size: 18px; margin: 0 0 16px; border-bottom: 2px solid #1f2328; padding-bottom: 6px; }
.story { font-size: 14px; line-height: 1.6; color: #444; }
.grid { display: grid; grid-template-columns: repeat({{.Columns}}, 1fr); gap: 16px; }
.shot { border: 1px solid #d0d7de; border-radius: 6px; padding: 12px; }
.frame { background: #eceef0; border: 1px dashed #8b949e; height: 160px; display: flex; align-items: center; justify-content: center; color: #8b949e; font-size: 13px; margin-bottom: 8px; }
.frame img { max-width: 100%; max-height: 100%; }
.label { font-weight: 700; font-size: 13px; margin-bottom: 4px; }
.desc { font-size: 13px; line-height: 1.5; }
.meta { font-size: 11px; color: #57606a; font-style: italic; margin-top: 6px; }
</style>
</head>
<body>
<div class="page">
<h1>{{.Title}}</h1>
<div class="story">{{.Story}}</div>
</div>
{{range .Pages}}
<div class="page">
{{if .Header}}<h2>Scene {{.Header.Num}} &mdash; {{.Header.Title}}</h2>{{end}}
<div class="grid">
{{range .Shots}}
<div class="shot">
<div class="label">{{.Label}}</div>
<div class="frame">{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Label}}">{{else}}frame pending{{end}}</div>
<div class="desc">{{.Description}}</div>
<div class="meta">{{.Meta}}</div>
</div>
{{end}}
</div>
</div>
{{end}}
</body>
</html>
`

type htmlShotView struct {
	Label       string
	ImageURL    string
	Description string
	Meta        string
}

type htmlHeaderView struct {
	Num   int
	Title string
}

type htmlPageView struct {
	Header *htmlHeaderView
	Shots  []htmlShotView
}

type htmlExportView struct {
	Title   string
	Story   template.HTML
	Columns int
	Pages   []htmlPageView
}

var htmlExportTmpl = template.Must(template.New("export").Parse(htmlExportTemplate))

// renderHTML 渲染自包含 HTML 文档；故事文本经 goldmark 转为 HTML
func (s *exportService) renderHTML(project *domain.Project, doc *domain.ProjectDocument,
	pages []pagelayout.Page) ([]byte, error) {

	var storyHTML bytes.Buffer
	if err := goldmark.Convert([]byte(doc.StoryText), &storyHTML); err != nil {
		return nil, err
	}

	view := htmlExportView{
		Title:   project.Name,
		Story:   template.HTML(storyHTML.String()),
		Columns: 2,
	}

	for _, page := range pages {
		pv := htmlPageView{}
		if page.Header != nil {
			pv.Header = &htmlHeaderView{Num: page.Header.SceneIndex + 1, Title: page.Header.Title}
		}
		for _, ref := range page.Shots {
			sv := htmlShotView{
				Label:       labelFor(ref),
				Description: ref.Description,
			}
			if shot := shotByID(doc.Storyboard, ref.ShotID); shot != nil {
				sv.ImageURL = shot.ImageURL
				sv.Meta = string(shot.ShotType) + " | " + string(shot.CameraAngle) + " | " +
					string(shot.CameraMovement) + " | " + string(shot.Mood)
			}
			pv.Shots = append(pv.Shots, sv)
		}
		view.Pages = append(view.Pages, pv)
	}

	var out bytes.Buffer
	if err := htmlExportTmpl.Execute(&out, view); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
