package domain

import "testing"

func TestAnnotationValid(t *testing.T) {
	text := &TextAnnotation{Content: "note", FontSize: 12, Color: "#000"}
	sticky := &StickyAnnotation{Content: "remember", Color: "#ff0"}
	freehand := &FreehandAnnotation{Points: []Point{{X: 1, Y: 2}}, StrokeWidth: 2, Color: "#00f"}
	shape := &ShapeAnnotation{Shape: ShapeKindArrow, From: Point{}, To: Point{X: 10}, Color: "#f00"}

	tests := []struct {
		name string
		a    Annotation
		want bool
	}{
		{"text on scene", Annotation{Kind: AnnotationKindText, SceneID: "s1", Text: text}, true},
		{"sticky on shot", Annotation{Kind: AnnotationKindSticky, ShotID: "sh1", Sticky: sticky}, true},
		{"freehand on shot", Annotation{Kind: AnnotationKindFreehand, ShotID: "sh1", Freehand: freehand}, true},
		{"shape on scene", Annotation{Kind: AnnotationKindShape, SceneID: "s1", Shape: shape}, true},

		{"no target", Annotation{Kind: AnnotationKindText, Text: text}, false},
		{"both targets", Annotation{Kind: AnnotationKindText, SceneID: "s1", ShotID: "sh1", Text: text}, false},
		{"no payload", Annotation{Kind: AnnotationKindText, SceneID: "s1"}, false},
		{"two payloads", Annotation{Kind: AnnotationKindText, SceneID: "s1", Text: text, Sticky: sticky}, false},
		{"kind payload mismatch", Annotation{Kind: AnnotationKindSticky, SceneID: "s1", Text: text}, false},
		{"unknown kind", Annotation{Kind: "banner", SceneID: "s1", Text: text}, false},
		{"freehand without points", Annotation{Kind: AnnotationKindFreehand, ShotID: "sh1", Freehand: &FreehandAnnotation{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
