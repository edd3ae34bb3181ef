package domain

import "time"

// StyleSettings 故事板整体视觉风格设置
type StyleSettings struct {
	ArtStyle    string `json:"artStyle" default:"cinematic"`
	ColorScheme string `json:"colorScheme" default:"natural"`
	AspectRatio string `json:"aspectRatio" default:"16:9"`
	ImageWidth  int    `json:"imageWidth" default:"768"`
	ImageHeight int    `json:"imageHeight" default:"432"`
}

// Character 角色资料，生成时从文本中猜测，也可由用户维护
type Character struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// VersionEntry is a deep frozen snapshot of the document plus settings,
// immutable once stored
// VersionEntry 是文档与设置的深度冻结快照，入库后不可变
type VersionEntry struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	DiffSummary string         `json:"diffSummary"`
	Storyboard  *Storyboard    `json:"storyboard"`
	StoryText   string         `json:"storyText"`
	Style       *StyleSettings `json:"style"`
	Characters  []Character    `json:"characters"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ProjectDocument 项目文档，整体读写的 JSON 载荷
type ProjectDocument struct {
	Storyboard *Storyboard    `json:"storyboard"`
	StoryText  string         `json:"storyText"`
	Style      *StyleSettings `json:"style"`
	Characters []Character    `json:"characters"`
	Versions   []VersionEntry `json:"versions"`
}

// Normalize 保证文档集合字段非 nil
func (d *ProjectDocument) Normalize() {
	if d.Style == nil {
		d.Style = &StyleSettings{
			ArtStyle:    "cinematic",
			ColorScheme: "natural",
			AspectRatio: "16:9",
			ImageWidth:  768,
			ImageHeight: 432,
		}
	}
	if d.Characters == nil {
		d.Characters = []Character{}
	}
	if d.Versions == nil {
		d.Versions = []VersionEntry{}
	}
	if d.Storyboard != nil {
		d.Storyboard.Normalize()
	}
}

// Project 项目领域模型
type Project struct {
	ID        int64
	UID       int64
	Name      string
	Document  *ProjectDocument
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Template 风格模板领域模型，按用户保存
type Template struct {
	ID        int64
	UID       int64
	Name      string
	Style     *StyleSettings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User 用户领域模型
type User struct {
	UID       int64
	Email     string
	Nickname  string
	Password  string
	Salt      string
	Token     string
	Avatar    string
	IsDeleted int
	CreatedAt time.Time
	UpdatedAt time.Time
}
