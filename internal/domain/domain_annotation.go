package domain

import (
	"time"
)

// AnnotationKind 批注种类，封闭集合
type AnnotationKind string

const (
	AnnotationKindText     AnnotationKind = "text"
	AnnotationKindSticky   AnnotationKind = "sticky"
	AnnotationKindFreehand AnnotationKind = "freehand"
	AnnotationKindShape    AnnotationKind = "shape"
)

// Point 画布坐标点
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TextAnnotation 文本批注负载
type TextAnnotation struct {
	Content  string  `json:"content"`
	FontSize float64 `json:"fontSize"`
	Color    string  `json:"color"`
}

// StickyAnnotation 便签批注负载
type StickyAnnotation struct {
	Content string `json:"content"`
	Color   string `json:"color"`
}

// FreehandAnnotation 手绘批注负载
type FreehandAnnotation struct {
	Points      []Point `json:"points"`
	StrokeWidth float64 `json:"strokeWidth"`
	Color       string  `json:"color"`
}

// ShapeKind 图形种类
type ShapeKind string

const (
	ShapeKindRect    ShapeKind = "rect"
	ShapeKindEllipse ShapeKind = "ellipse"
	ShapeKindArrow   ShapeKind = "arrow"
)

// ShapeAnnotation 图形批注负载
type ShapeAnnotation struct {
	Shape  ShapeKind `json:"shape"`
	From   Point     `json:"from"`
	To     Point     `json:"to"`
	Color  string    `json:"color"`
	Filled bool      `json:"filled"`
}

// Annotation is a closed tagged union over the four annotation kinds.
// Exactly one payload matching Kind is set, and the annotation references
// at most one scene or one shot, never both.
// Annotation 是覆盖四种批注的封闭标签联合。
// 有且仅有与 Kind 匹配的一个负载被设置；批注最多引用一个场景或一个镜头，不可同时引用。
type Annotation struct {
	ID      string         `json:"id"`
	Kind    AnnotationKind `json:"kind"`
	SceneID string         `json:"sceneId,omitempty"`
	ShotID  string         `json:"shotId,omitempty"`

	Position Point `json:"position"`

	Text     *TextAnnotation     `json:"text,omitempty"`
	Sticky   *StickyAnnotation   `json:"sticky,omitempty"`
	Freehand *FreehandAnnotation `json:"freehand,omitempty"`
	Shape    *ShapeAnnotation    `json:"shape,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Valid reports whether the union is well formed: a known kind, exactly the
// matching payload present, and a scene xor shot target
// Valid 校验联合是否良构：已知种类、负载与种类一一对应、目标为场景与镜头二选一
func (a *Annotation) Valid() bool {
	if a.SceneID == "" && a.ShotID == "" {
		return false
	}
	if a.SceneID != "" && a.ShotID != "" {
		return false
	}

	payloads := 0
	if a.Text != nil {
		payloads++
	}
	if a.Sticky != nil {
		payloads++
	}
	if a.Freehand != nil {
		payloads++
	}
	if a.Shape != nil {
		payloads++
	}
	if payloads != 1 {
		return false
	}

	switch a.Kind {
	case AnnotationKindText:
		return a.Text != nil
	case AnnotationKindSticky:
		return a.Sticky != nil
	case AnnotationKindFreehand:
		return a.Freehand != nil && len(a.Freehand.Points) > 0
	case AnnotationKindShape:
		return a.Shape != nil
	}
	return false
}
