package dao

import (
	"testing"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func testDocument() *domain.ProjectDocument {
	doc := &domain.ProjectDocument{
		StoryText: "Alice ran. She fell.\n\nBob laughed.",
		Storyboard: &domain.Storyboard{
			ID:    "sb-1",
			Title: "Alice ran.",
			Scenes: []*domain.Scene{
				{
					ID:    "scene-1",
					Title: "Scene 1",
					Shots: []*domain.Shot{
						{ID: "shot-1", SceneID: "scene-1", Description: "Alice ran.", ShotType: domain.ShotTypeWide},
						{ID: "shot-2", SceneID: "scene-1", Description: "She fell.", ShotType: domain.ShotTypeCloseUp},
					},
				},
			},
			Annotations: []domain.Annotation{
				{ID: "a-1", Kind: domain.AnnotationKindText, SceneID: "scene-1", Text: &domain.TextAnnotation{Content: "pacing note"}},
			},
		},
		Style:      &domain.StyleSettings{ArtStyle: "noir", ColorScheme: "monochrome", AspectRatio: "16:9", ImageWidth: 768, ImageHeight: 432},
		Characters: []domain.Character{{Name: "Alice"}, {Name: "Bob"}},
		Versions: []domain.VersionEntry{
			{ID: "v-1", Label: "first draft", DiffSummary: "no changes"},
		},
	}
	doc.Normalize()
	return doc
}

func TestProjectDocumentRoundTrip(t *testing.T) {
	r := &projectRepository{}

	p := &domain.Project{
		ID:       1,
		UID:      10,
		Name:     "harbor story",
		Document: testDocument(),
	}

	m, err := r.toModel(p)
	assert.Nil(t, err)
	assert.NotEmpty(t, m.Doc)

	got, err := r.toDomain(m)
	assert.Nil(t, err)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.UID, got.UID)
	assert.Equal(t, p.Name, got.Name)

	doc := got.Document
	assert.NotNil(t, doc)
	assert.Equal(t, p.Document.StoryText, doc.StoryText)
	assert.Equal(t, "sb-1", doc.Storyboard.ID)
	assert.Len(t, doc.Storyboard.Scenes, 1)
	assert.Len(t, doc.Storyboard.Scenes[0].Shots, 2)
	assert.Len(t, doc.Storyboard.Annotations, 1)
	assert.Equal(t, domain.AnnotationKindText, doc.Storyboard.Annotations[0].Kind)
	assert.Equal(t, "noir", doc.Style.ArtStyle)
	assert.Len(t, doc.Characters, 2)
	assert.Len(t, doc.Versions, 1)

	// 加载路径保证镜头反向引用一致
	for _, shot := range doc.Storyboard.Scenes[0].Shots {
		assert.Equal(t, "scene-1", shot.SceneID)
	}
}

func TestProjectDocumentMalformedJSON(t *testing.T) {
	r := &projectRepository{}

	m := &model.Project{
		ID:   2,
		UID:  10,
		Name: "broken",
		Doc:  `{"storyboard": {"scenes": [`,
	}

	got, err := r.toDomain(m)
	assert.NotNil(t, err)
	assert.Nil(t, got)
}

func TestProjectDocumentEmptyDoc(t *testing.T) {
	r := &projectRepository{}

	m := &model.Project{ID: 3, UID: 10, Name: "fresh"}

	got, err := r.toDomain(m)
	assert.Nil(t, err)
	assert.NotNil(t, got)
	assert.Nil(t, got.Document)
}
