package service

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
)

func TestBuildStoryboardSceneAndShotCounts(t *testing.T) {
	svc := &generateService{}
	text := "The sun rose over the bay. Fishermen pushed their boats out.\n\n" +
		"A storm gathered by noon. Waves grew taller. The crews turned back.\n\n" +
		"By night the harbor was quiet again."

	sb, _, err := svc.BuildStoryboard(text, nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("BuildStoryboard failed: %v", err)
	}

	if len(sb.Scenes) != 3 {
		t.Fatalf("expected one scene per paragraph (3), got %d", len(sb.Scenes))
	}
	for i, scene := range sb.Scenes {
		if len(scene.Shots) < 2 || len(scene.Shots) > 4 {
			t.Errorf("scene %d has %d shots, want 2-4", i, len(scene.Shots))
		}
		for j, shot := range scene.Shots {
			if shot.SceneID != scene.ID {
				t.Errorf("scene %d shot %d backref mismatch", i, j)
			}
			if shot.ImageStatus != domain.ImageStatusPending {
				t.Errorf("new shot should be pending, got %s", shot.ImageStatus)
			}
			if shot.Prompt == "" {
				t.Errorf("scene %d shot %d has empty prompt", i, j)
			}
		}
	}
}

func TestBuildStoryboardShotTypePlacement(t *testing.T) {
	svc := &generateService{}
	text := "One. Two. Three. Four. Five. Six."

	sb, _, err := svc.BuildStoryboard(text, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("BuildStoryboard failed: %v", err)
	}

	shots := sb.Scenes[0].Shots
	first := shots[0].ShotType
	if first != domain.ShotTypeWide && first != domain.ShotTypeEstablishing {
		t.Errorf("first shot should open wide, got %s", first)
	}
	last := shots[len(shots)-1].ShotType
	if last != domain.ShotTypeCloseUp && last != domain.ShotTypeExtremeCloseUp {
		t.Errorf("last shot should close tight, got %s", last)
	}
}

func TestBuildStoryboardPartitionsSentencesInOrder(t *testing.T) {
	svc := &generateService{}
	sentences := []string{
		"The door creaked open.", "Dust hung in the light.", "Nobody had been here for years.",
		"A ledger lay on the desk.", "Its pages were damp.", "Someone had torn the last one out.",
	}
	text := strings.Join(sentences, " ")

	sb, _, err := svc.BuildStoryboard(text, nil, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("BuildStoryboard failed: %v", err)
	}

	var parts []string
	for _, shot := range sb.Scenes[0].Shots {
		parts = append(parts, shot.Description)
	}
	joined := strings.Join(parts, " ")
	if joined != text {
		t.Errorf("shot descriptions should partition the paragraph in order:\n got: %s\nwant: %s", joined, text)
	}
}

func TestBuildStoryboardSeedDeterminism(t *testing.T) {
	svc := &generateService{}
	text := "Rain fell on the empty street. A car idled at the corner.\n\n" +
		"Inside the diner, Maria counted the till. The phone rang twice and stopped."

	a, _, err := svc.BuildStoryboard(text, nil, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("BuildStoryboard failed: %v", err)
	}
	b, _, err := svc.BuildStoryboard(text, nil, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("BuildStoryboard failed: %v", err)
	}

	if len(a.Scenes) != len(b.Scenes) {
		t.Fatalf("scene counts differ: %d vs %d", len(a.Scenes), len(b.Scenes))
	}
	for i := range a.Scenes {
		as, bs := a.Scenes[i], b.Scenes[i]
		if len(as.Shots) != len(bs.Shots) {
			t.Fatalf("scene %d shot counts differ: %d vs %d", i, len(as.Shots), len(bs.Shots))
		}
		for j := range as.Shots {
			x, y := as.Shots[j], bs.Shots[j]
			if x.ShotType != y.ShotType || x.CameraAngle != y.CameraAngle ||
				x.CameraMovement != y.CameraMovement || x.Mood != y.Mood ||
				x.DurationSec != y.DurationSec || x.Description != y.Description {
				t.Errorf("scene %d shot %d differs between identical seeds", i, j)
			}
		}
	}
}

func TestBuildStoryboardEmptyText(t *testing.T) {
	svc := &generateService{}
	for _, text := range []string{"", "   ", "\n\n\t\n"} {
		if _, _, err := svc.BuildStoryboard(text, nil, rand.New(rand.NewSource(1))); err == nil {
			t.Errorf("expected error for empty story text %q", text)
		}
	}
}

func TestBuildStoryboardCharacterGuessing(t *testing.T) {
	svc := &generateService{}
	text := "Alice ran. She fell.\n\nBob laughed."

	sb, characters, err := svc.BuildStoryboard(text, nil, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("BuildStoryboard failed: %v", err)
	}

	if len(sb.Scenes) != 2 {
		t.Errorf("expected 2 scenes, got %d", len(sb.Scenes))
	}

	names := map[string]bool{}
	for _, c := range characters {
		names[c.Name] = true
	}
	if !names["Alice"] || !names["Bob"] {
		t.Errorf("expected Alice and Bob as characters, got %v", characters)
	}
	if names["She"] {
		t.Error("pronoun stopword leaked into characters")
	}
}

func TestSynthesizePrompt(t *testing.T) {
	svc := &generateService{}
	shot := &domain.Shot{
		Description:    "A lighthouse beam sweeps the cliffs",
		ShotType:       domain.ShotTypeWide,
		CameraAngle:    domain.CameraAngleLow,
		CameraMovement: domain.CameraMovementPan,
		Mood:           domain.MoodMysterious,
		Lighting:       "Low-key night lighting, deep shadows and cool moonlight",
		Characters:     []string{"Keeper"},
	}
	style := &domain.StyleSettings{ArtStyle: "noir", ColorScheme: "monochrome"}

	prompt := svc.SynthesizePrompt(shot, style)

	for _, want := range []string{
		shot.Description, "wide shot", "low angle", "pan camera",
		"mysterious mood", "featuring Keeper", "noir style", "monochrome palette",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %s", want, prompt)
		}
	}
}

func TestLightingFor(t *testing.T) {
	tests := []struct {
		paragraph string
		contains  string
	}{
		{"They met at night near the docks.", "night"},
		{"The sunset painted the field orange.", "golden-hour"},
		{"Early morning fog covered the road.", "morning"},
		{"A plain afternoon in the office.", "daylight"},
	}
	for _, tt := range tests {
		got := lightingFor(tt.paragraph)
		if !strings.Contains(strings.ToLower(got), tt.contains) {
			t.Errorf("lightingFor(%q) = %q, want mention of %q", tt.paragraph, got, tt.contains)
		}
	}
}

func TestPartitionSentences(t *testing.T) {
	sentences := []string{"a", "b", "c", "d", "e"}

	chunks := partitionSentences(sentences, 3)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	var flat []string
	for _, c := range chunks {
		flat = append(flat, c...)
	}
	if len(flat) != len(sentences) {
		t.Fatalf("partition lost sentences: %v", chunks)
	}
	for i := range sentences {
		if flat[i] != sentences[i] {
			t.Errorf("partition reordered sentences: %v", chunks)
		}
	}

	// 镜头数超过句子数时允许空块
	sparse := partitionSentences([]string{"only"}, 3)
	nonEmpty := 0
	for _, c := range sparse {
		if len(c) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty != 1 {
		t.Errorf("expected exactly one non-empty chunk, got %d", nonEmpty)
	}
}
