// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/dto"
	"github.com/haierkeys/storyboard-studio-service/internal/metric"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"

	"go.uber.org/zap"
)

// GenerateService 定义故事板生成服务接口
type GenerateService interface {
	// Generate 从故事文本生成结构化故事板并整体写入项目文档
	Generate(ctx context.Context, uid, projectID int64, params *dto.GenerateRequest) (*dto.StoryboardDTO, error)

	// BuildStoryboard 纯生成管线：文本 → 场景/镜头结构（随机源注入，便于测试）
	BuildStoryboard(storyText string, style *domain.StyleSettings, rng *rand.Rand) (*domain.Storyboard, []domain.Character, error)

	// SynthesizePrompt 由镜头属性与风格设置合成生图提示词
	SynthesizePrompt(shot *domain.Shot, style *domain.StyleSettings) string
}

// generateService 实现 GenerateService 接口
type generateService struct {
	projectRepo domain.ProjectRepository
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewGenerateService 创建 GenerateService 实例
func NewGenerateService(projectRepo domain.ProjectRepository, logger *zap.Logger, config *ServiceConfig) GenerateService {
	return &generateService{
		projectRepo: projectRepo,
		logger:      logger,
		config:      config,
	}
}

var (
	paragraphSplitRe = regexp.MustCompile(`\n[ \t]*\n`)
	sentenceRe       = regexp.MustCompile(`[^.!?]+[.!?]*`)
	characterRe      = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

// 角色猜测时跳过的常见句首词
var characterStopwords = map[string]bool{
	"The": true, "A": true, "An": true, "And": true, "But": true, "Then": true,
	"She": true, "He": true, "They": true, "It": true, "When": true, "After": true,
	"Before": true, "In": true, "On": true, "At": true, "As": true,
}

var (
	firstShotCandidates  = []domain.ShotType{domain.ShotTypeWide, domain.ShotTypeEstablishing}
	lastShotCandidates   = []domain.ShotType{domain.ShotTypeCloseUp, domain.ShotTypeExtremeCloseUp}
	middleShotCandidates = []domain.ShotType{
		domain.ShotTypeMedium, domain.ShotTypeOverTheShoulder,
		domain.ShotTypeTwoShot, domain.ShotTypePointOfView,
	}

	cameraAngles = []domain.CameraAngle{
		domain.CameraAngleEyeLevel, domain.CameraAngleHigh, domain.CameraAngleLow,
		domain.CameraAngleBirdsEye, domain.CameraAngleDutch,
	}
	cameraMovements = []domain.CameraMovement{
		domain.CameraMovementStatic, domain.CameraMovementPan, domain.CameraMovementTilt,
		domain.CameraMovementDolly, domain.CameraMovementTracking,
		domain.CameraMovementZoom, domain.CameraMovementHandheld,
	}
	moods = []domain.Mood{
		domain.MoodTense, domain.MoodCalm, domain.MoodJoyful,
		domain.MoodMelancholic, domain.MoodMysterious, domain.MoodDramatic,
	}
)

// 情绪对应的音效描述
var audioByMood = map[domain.Mood]string{
	domain.MoodTense:       "Low pulsing drone, sparse percussion",
	domain.MoodCalm:        "Quiet ambient room tone, soft pads",
	domain.MoodJoyful:      "Bright upbeat score, light strings",
	domain.MoodMelancholic: "Slow piano theme, distant reverb",
	domain.MoodMysterious:  "Airy textures, faint whispers",
	domain.MoodDramatic:    "Swelling orchestral score, heavy brass",
}

// Generate 从故事文本生成结构化故事板并整体写入项目文档
func (s *generateService) Generate(ctx context.Context, uid, projectID int64, params *dto.GenerateRequest) (*dto.StoryboardDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		return nil, code.ErrorProjectNotFound
	}

	var rng *rand.Rand
	if params.Seed != nil {
		rng = rand.New(rand.NewSource(*params.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	style := params.Style
	if style == nil && project.Document != nil {
		style = project.Document.Style
	}

	storyboard, characters, err := s.BuildStoryboard(params.StoryText, style, rng)
	if err != nil {
		return nil, err
	}

	doc := project.Document
	if doc == nil {
		doc = &domain.ProjectDocument{}
	}
	doc.Storyboard = storyboard
	doc.StoryText = params.StoryText
	if params.Style != nil {
		doc.Style = params.Style
	}
	doc.Characters = characters
	doc.Normalize()
	project.Document = doc

	if _, err := s.projectRepo.Update(ctx, project, uid); err != nil {
		s.logger.Error("generate: save project failed",
			zap.Int64("project", projectID), zap.Error(err))
		return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}

	metric.GenerateTotal.Inc()
	metric.GenerateScenes.Observe(float64(len(storyboard.Scenes)))

	s.logger.Info("storyboard generated",
		zap.Int64("project", projectID),
		zap.Int("scenes", len(storyboard.Scenes)),
		zap.Int("shots", storyboard.ShotCount()))

	return &dto.StoryboardDTO{Storyboard: storyboard, Characters: characters}, nil
}

// BuildStoryboard 纯生成管线：段落 → 场景，句子区间 → 镜头
func (s *generateService) BuildStoryboard(storyText string, style *domain.StyleSettings, rng *rand.Rand) (*domain.Storyboard, []domain.Character, error) {
	paragraphs := splitParagraphs(storyText)
	if len(paragraphs) == 0 {
		return nil, nil, code.ErrorEmptyStoryText
	}

	now := time.Now()
	storyboard := &domain.Storyboard{
		ID:        domain.NewID(),
		Title:     storyTitle(paragraphs[0]),
		Scenes:    make([]*domain.Scene, 0, len(paragraphs)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for i, paragraph := range paragraphs {
		scene := s.buildScene(i, paragraph, style, rng)
		storyboard.Scenes = append(storyboard.Scenes, scene)
	}

	characters := guessCharacters(storyText)
	storyboard.Normalize()
	return storyboard, characters, nil
}

// buildScene 将一个段落拆分为一个场景与 2–4 个镜头
func (s *generateService) buildScene(index int, paragraph string, style *domain.StyleSettings, rng *rand.Rand) *domain.Scene {
	scene := &domain.Scene{
		ID:          domain.NewID(),
		Title:       fmt.Sprintf("Scene %d", index+1),
		Description: truncate(paragraph, 140),
	}

	sentences := splitSentences(paragraph)
	shotCount := 2 + rng.Intn(3)
	chunks := partitionSentences(sentences, shotCount)

	lighting := lightingFor(paragraph)
	now := time.Now()

	for j, chunk := range chunks {
		desc := strings.TrimSpace(strings.Join(chunk, " "))
		if desc == "" && len(sentences) > 0 {
			// 镜头数超过句子数时回落到末句，见边界约定
			desc = sentences[len(sentences)-1]
		}

		var shotType domain.ShotType
		switch {
		case j == 0:
			shotType = firstShotCandidates[rng.Intn(len(firstShotCandidates))]
		case j == len(chunks)-1:
			shotType = lastShotCandidates[rng.Intn(len(lastShotCandidates))]
		default:
			shotType = middleShotCandidates[rng.Intn(len(middleShotCandidates))]
		}

		mood := moods[rng.Intn(len(moods))]
		shot := &domain.Shot{
			ID:             domain.NewID(),
			SceneID:        scene.ID,
			Description:    desc,
			ShotType:       shotType,
			CameraAngle:    cameraAngles[rng.Intn(len(cameraAngles))],
			CameraMovement: cameraMovements[rng.Intn(len(cameraMovements))],
			Mood:           mood,
			Lighting:       lighting,
			Audio:          audioByMood[mood],
			Characters:     guessCharacterNames(desc),
			ImageStatus:    domain.ImageStatusPending,
			DurationSec:    2 + rng.Intn(5),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		shot.Prompt = s.SynthesizePrompt(shot, style)
		scene.Shots = append(scene.Shots, shot)
	}

	return scene
}

// SynthesizePrompt 由镜头属性与风格设置合成生图提示词
func (s *generateService) SynthesizePrompt(shot *domain.Shot, style *domain.StyleSettings) string {
	var b strings.Builder
	b.WriteString(shot.Description)
	b.WriteString(fmt.Sprintf(", %s shot, %s angle, %s camera, %s mood",
		shot.ShotType, shot.CameraAngle, shot.CameraMovement, shot.Mood))
	if shot.Lighting != "" {
		b.WriteString(", ")
		b.WriteString(shot.Lighting)
	}
	if len(shot.Characters) > 0 {
		b.WriteString(", featuring ")
		b.WriteString(strings.Join(shot.Characters, " and "))
	}
	if style != nil {
		b.WriteString(fmt.Sprintf(", %s style, %s palette", style.ArtStyle, style.ColorScheme))
	}
	return b.String()
}

// splitParagraphs 按空行边界切分并去除空段
func splitParagraphs(text string) []string {
	parts := paragraphSplitRe.Split(strings.ReplaceAll(text, "\r\n", "\n"), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// splitSentences 按句末标点切分
func splitSentences(paragraph string) []string {
	matches := sentenceRe.FindAllString(paragraph, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if t := strings.TrimSpace(m); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// partitionSentences splits sentences into n contiguous, roughly equal,
// order-preserving chunks; chunks may be empty when len(sentences) < n
// partitionSentences 将句子切成 n 个连续且大致均匀的有序块；句子数不足时允许空块
func partitionSentences(sentences []string, n int) [][]string {
	chunks := make([][]string, n)
	total := len(sentences)
	for i := 0; i < n; i++ {
		start := i * total / n
		end := (i + 1) * total / n
		chunks[i] = sentences[start:end]
	}
	return chunks
}

// lightingFor 根据段落关键词选择灯光描述
func lightingFor(paragraph string) string {
	lower := strings.ToLower(paragraph)
	switch {
	case strings.Contains(lower, "night") || strings.Contains(lower, "dark"):
		return "Low-key night lighting, deep shadows and cool moonlight"
	case strings.Contains(lower, "sunset") || strings.Contains(lower, "dusk"):
		return "Warm golden-hour light, long soft shadows"
	case strings.Contains(lower, "morning") || strings.Contains(lower, "dawn"):
		return "Soft diffused morning light, gentle haze"
	}
	return "Neutral daylight, balanced exposure"
}

// guessCharacterNames 大写词猜测角色名，去重并最多保留两个
func guessCharacterNames(text string) []string {
	names := []string{}
	seen := map[string]bool{}
	for _, w := range characterRe.FindAllString(text, -1) {
		if characterStopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		names = append(names, w)
		if len(names) == 2 {
			break
		}
	}
	return names
}

// guessCharacters 从整篇文本构建角色资料
func guessCharacters(text string) []domain.Character {
	out := []domain.Character{}
	for _, name := range guessCharacterNames(text) {
		out = append(out, domain.Character{Name: name})
	}
	return out
}

// storyTitle 取首段前几个词作为标题
func storyTitle(paragraph string) string {
	words := strings.Fields(paragraph)
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
