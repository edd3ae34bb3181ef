package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// makeStoryboard 构造确定结构的测试故事板
func makeStoryboard(sceneCount, shotsPerScene int) *Storyboard {
	s := &Storyboard{ID: "sb", Title: "test board"}
	for i := 0; i < sceneCount; i++ {
		scene := &Scene{
			ID:    fmt.Sprintf("scene-%d", i),
			Title: fmt.Sprintf("Scene %d", i+1),
		}
		for j := 0; j < shotsPerScene; j++ {
			scene.Shots = append(scene.Shots, &Shot{
				ID:          fmt.Sprintf("shot-%d-%d", i, j),
				SceneID:     scene.ID,
				Description: fmt.Sprintf("shot %d of scene %d", j, i),
			})
		}
		s.Scenes = append(s.Scenes, scene)
	}
	s.Normalize()
	return s
}

func sceneIDs(s *Storyboard) []string {
	ids := make([]string, 0, len(s.Scenes))
	for _, scene := range s.Scenes {
		ids = append(ids, scene.ID)
	}
	return ids
}

func TestReorderScenes(t *testing.T) {
	s := makeStoryboard(3, 2)

	next, err := s.ReorderScenes([]string{"scene-2", "scene-0", "scene-1"})
	if err != nil {
		t.Fatalf("ReorderScenes failed: %v", err)
	}

	got := sceneIDs(next)
	want := []string{"scene-2", "scene-0", "scene-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scene order mismatch at %d: got %s, want %s", i, got[i], want[i])
		}
	}

	// 原文档保持不变
	if s.Scenes[0].ID != "scene-0" {
		t.Errorf("original storyboard was mutated: first scene is %s", s.Scenes[0].ID)
	}
}

func TestReorderScenesRejectsNonPermutation(t *testing.T) {
	s := makeStoryboard(3, 2)

	tests := []struct {
		name string
		ids  []string
	}{
		{"wrong length", []string{"scene-0", "scene-1"}},
		{"foreign id", []string{"scene-0", "scene-1", "scene-x"}},
		{"duplicated id", []string{"scene-0", "scene-1", "scene-1"}},
		{"empty list", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.ReorderScenes(tt.ids); err != ErrInvalidReorder {
				t.Errorf("expected ErrInvalidReorder, got %v", err)
			}
		})
	}
}

func TestReorderShots(t *testing.T) {
	s := makeStoryboard(2, 3)

	next, err := s.ReorderShots("scene-0", []string{"shot-0-2", "shot-0-0", "shot-0-1"})
	if err != nil {
		t.Fatalf("ReorderShots failed: %v", err)
	}

	scene, _ := next.FindScene("scene-0")
	want := []string{"shot-0-2", "shot-0-0", "shot-0-1"}
	for i := range want {
		if scene.Shots[i].ID != want[i] {
			t.Errorf("shot order mismatch at %d: got %s, want %s", i, scene.Shots[i].ID, want[i])
		}
	}

	// 其它场景不受影响
	other, _ := next.FindScene("scene-1")
	if other.Shots[0].ID != "shot-1-0" {
		t.Errorf("unrelated scene was reordered: got %s", other.Shots[0].ID)
	}

	if _, err := s.ReorderShots("missing", []string{"a"}); err != ErrSceneNotFound {
		t.Errorf("expected ErrSceneNotFound, got %v", err)
	}
	if _, err := s.ReorderShots("scene-0", []string{"shot-0-0"}); err != ErrInvalidReorder {
		t.Errorf("expected ErrInvalidReorder, got %v", err)
	}
}

// 任意重排都成立且保持 ID 集合不变
func TestReorderScenesPermutationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("any shuffle of scene ids reorders successfully", prop.ForAll(
		func(seed int64, sceneCount int) bool {
			s := makeStoryboard(sceneCount, 1)

			ids := sceneIDs(s)
			rng := rand.New(rand.NewSource(seed))
			rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

			next, err := s.ReorderScenes(ids)
			if err != nil {
				return false
			}
			got := sceneIDs(next)
			for i := range ids {
				if got[i] != ids[i] {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}

func TestDeleteScene(t *testing.T) {
	s := makeStoryboard(2, 2)

	next, err := s.DeleteScene("scene-0")
	if err != nil {
		t.Fatalf("DeleteScene failed: %v", err)
	}
	if len(next.Scenes) != 1 || next.Scenes[0].ID != "scene-1" {
		t.Errorf("unexpected scenes after delete: %v", sceneIDs(next))
	}

	if _, err := s.DeleteScene("missing"); err != ErrSceneNotFound {
		t.Errorf("expected ErrSceneNotFound, got %v", err)
	}
}

func TestDeleteLastSceneRejected(t *testing.T) {
	s := makeStoryboard(1, 2)

	_, err := s.DeleteScene("scene-0")
	if err != ErrLastSceneUndeletable {
		t.Fatalf("expected ErrLastSceneUndeletable, got %v", err)
	}
	if len(s.Scenes) != 1 {
		t.Errorf("storyboard changed after rejected delete: %d scenes", len(s.Scenes))
	}
}

func TestDeleteLastShotRejected(t *testing.T) {
	s := makeStoryboard(2, 1)

	_, err := s.DeleteShot("shot-0-0")
	if err != ErrLastShotUndeletable {
		t.Fatalf("expected ErrLastShotUndeletable, got %v", err)
	}
	if s.ShotCount() != 2 {
		t.Errorf("storyboard changed after rejected delete: %d shots", s.ShotCount())
	}
}

func TestDeleteSceneRemovesAttachedAnnotations(t *testing.T) {
	s := makeStoryboard(2, 2)
	s.Annotations = []Annotation{
		{ID: "a1", Kind: AnnotationKindText, SceneID: "scene-0", Text: &TextAnnotation{Content: "on scene"}},
		{ID: "a2", Kind: AnnotationKindText, ShotID: "shot-0-1", Text: &TextAnnotation{Content: "on shot"}},
		{ID: "a3", Kind: AnnotationKindText, SceneID: "scene-1", Text: &TextAnnotation{Content: "kept"}},
	}

	next, err := s.DeleteScene("scene-0")
	if err != nil {
		t.Fatalf("DeleteScene failed: %v", err)
	}
	if len(next.Annotations) != 1 || next.Annotations[0].ID != "a3" {
		t.Errorf("expected only annotation a3 to survive, got %d annotations", len(next.Annotations))
	}
}

func TestDeleteShotRemovesAttachedAnnotations(t *testing.T) {
	s := makeStoryboard(1, 3)
	s.Annotations = []Annotation{
		{ID: "a1", Kind: AnnotationKindSticky, ShotID: "shot-0-1", Sticky: &StickyAnnotation{Content: "gone"}},
		{ID: "a2", Kind: AnnotationKindSticky, ShotID: "shot-0-2", Sticky: &StickyAnnotation{Content: "kept"}},
	}

	next, err := s.DeleteShot("shot-0-1")
	if err != nil {
		t.Fatalf("DeleteShot failed: %v", err)
	}
	if len(next.Annotations) != 1 || next.Annotations[0].ID != "a2" {
		t.Errorf("expected only annotation a2 to survive, got %d annotations", len(next.Annotations))
	}
}

func TestAddShotDoesNotMutateReceiver(t *testing.T) {
	s := makeStoryboard(1, 2)

	next, err := s.AddShot("scene-0", &Shot{Description: "new shot"})
	if err != nil {
		t.Fatalf("AddShot failed: %v", err)
	}
	if next.ShotCount() != 3 {
		t.Errorf("expected 3 shots in new storyboard, got %d", next.ShotCount())
	}
	if s.ShotCount() != 2 {
		t.Errorf("receiver was mutated: got %d shots", s.ShotCount())
	}

	added := next.Scenes[0].Shots[2]
	if added.ID == "" {
		t.Error("added shot should receive a generated id")
	}
	if added.SceneID != "scene-0" {
		t.Errorf("added shot scene backref mismatch: %s", added.SceneID)
	}
}

func TestAnnotationLifecycle(t *testing.T) {
	s := makeStoryboard(1, 2)

	a := Annotation{
		Kind:   AnnotationKindShape,
		ShotID: "shot-0-0",
		Shape:  &ShapeAnnotation{Shape: ShapeKindRect, Color: "#ff0000"},
	}
	next, err := s.AddAnnotation(a)
	if err != nil {
		t.Fatalf("AddAnnotation failed: %v", err)
	}
	if len(next.Annotations) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(next.Annotations))
	}
	id := next.Annotations[0].ID
	if id == "" {
		t.Fatal("annotation should receive a generated id")
	}

	updated := next.Annotations[0]
	updated.Shape = &ShapeAnnotation{Shape: ShapeKindEllipse, Color: "#00ff00"}
	next2, err := next.UpdateAnnotation(updated)
	if err != nil {
		t.Fatalf("UpdateAnnotation failed: %v", err)
	}
	if next2.Annotations[0].Shape.Shape != ShapeKindEllipse {
		t.Errorf("annotation was not updated: %v", next2.Annotations[0].Shape.Shape)
	}

	next3, err := next2.DeleteAnnotation(id)
	if err != nil {
		t.Fatalf("DeleteAnnotation failed: %v", err)
	}
	if len(next3.Annotations) != 0 {
		t.Errorf("expected 0 annotations after delete, got %d", len(next3.Annotations))
	}

	if _, err := next2.DeleteAnnotation("missing"); err != ErrAnnotationNotFound {
		t.Errorf("expected ErrAnnotationNotFound, got %v", err)
	}
	if _, err := next2.UpdateAnnotation(Annotation{ID: "missing", Kind: AnnotationKindText, SceneID: "scene-0", Text: &TextAnnotation{}}); err != ErrAnnotationNotFound {
		t.Errorf("expected ErrAnnotationNotFound, got %v", err)
	}
}

func TestAddAnnotationValidatesTarget(t *testing.T) {
	s := makeStoryboard(1, 1)

	_, err := s.AddAnnotation(Annotation{
		Kind: AnnotationKindText, SceneID: "missing", Text: &TextAnnotation{Content: "x"},
	})
	if err != ErrSceneNotFound {
		t.Errorf("expected ErrSceneNotFound, got %v", err)
	}

	_, err = s.AddAnnotation(Annotation{
		Kind: AnnotationKindText, ShotID: "missing", Text: &TextAnnotation{Content: "x"},
	})
	if err != ErrShotNotFound {
		t.Errorf("expected ErrShotNotFound, got %v", err)
	}

	_, err = s.AddAnnotation(Annotation{Kind: AnnotationKindText, Text: &TextAnnotation{Content: "x"}})
	if err != ErrInvalidAnnotation {
		t.Errorf("expected ErrInvalidAnnotation for untargeted annotation, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := makeStoryboard(2, 2)

	clone, err := s.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}

	clone.Scenes[0].Title = "changed"
	clone.Scenes[0].Shots[0].Description = "changed"

	if s.Scenes[0].Title == "changed" {
		t.Error("clone shares scene memory with the original")
	}
	if s.Scenes[0].Shots[0].Description == "changed" {
		t.Error("clone shares shot memory with the original")
	}
}
