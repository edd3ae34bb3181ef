// Package domain 定义领域模型和接口
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShotType 定义镜头景别类型
type ShotType string

const (
	ShotTypeWide             ShotType = "wide"
	ShotTypeEstablishing     ShotType = "establishing"
	ShotTypeMedium           ShotType = "medium"
	ShotTypeCloseUp          ShotType = "close-up"
	ShotTypeExtremeCloseUp   ShotType = "extreme-close-up"
	ShotTypeOverTheShoulder  ShotType = "over-the-shoulder"
	ShotTypePointOfView      ShotType = "pov"
	ShotTypeTwoShot          ShotType = "two-shot"
)

// CameraAngle 定义机位角度
type CameraAngle string

const (
	CameraAngleEyeLevel CameraAngle = "eye-level"
	CameraAngleHigh     CameraAngle = "high"
	CameraAngleLow      CameraAngle = "low"
	CameraAngleBirdsEye CameraAngle = "birds-eye"
	CameraAngleDutch    CameraAngle = "dutch"
)

// CameraMovement 定义运镜方式
type CameraMovement string

const (
	CameraMovementStatic   CameraMovement = "static"
	CameraMovementPan      CameraMovement = "pan"
	CameraMovementTilt     CameraMovement = "tilt"
	CameraMovementDolly    CameraMovement = "dolly"
	CameraMovementTracking CameraMovement = "tracking"
	CameraMovementZoom     CameraMovement = "zoom"
	CameraMovementHandheld CameraMovement = "handheld"
)

// Mood 定义镜头情绪基调
type Mood string

const (
	MoodTense       Mood = "tense"
	MoodCalm        Mood = "calm"
	MoodJoyful      Mood = "joyful"
	MoodMelancholic Mood = "melancholic"
	MoodMysterious  Mood = "mysterious"
	MoodDramatic    Mood = "dramatic"
)

// ImageStatus 镜头画面生成状态
type ImageStatus string

const (
	ImageStatusPending   ImageStatus = "pending"
	ImageStatusQueued    ImageStatus = "queued"
	ImageStatusReady     ImageStatus = "ready"
	ImageStatusFallback  ImageStatus = "fallback"
)

// Shot 镜头领域模型
// SceneID 必须指向所属场景
type Shot struct {
	ID             string         `json:"id"`
	SceneID        string         `json:"sceneId"`
	Description    string         `json:"description"`
	ShotType       ShotType       `json:"shotType"`
	CameraAngle    CameraAngle    `json:"cameraAngle"`
	CameraMovement CameraMovement `json:"cameraMovement"`
	Mood           Mood           `json:"mood"`
	Lighting       string         `json:"lighting"`
	Audio          string         `json:"audio"`
	Characters     []string       `json:"characters"`
	Prompt         string         `json:"prompt"`
	ImageURL       string         `json:"imageUrl"`
	ImageStatus    ImageStatus    `json:"imageStatus"`
	DurationSec    int            `json:"durationSec"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Scene 场景领域模型
type Scene struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	StartsNewPage bool    `json:"startsNewPage"`
	Shots         []*Shot `json:"shots"`
}

// Storyboard 故事板领域模型，生成管线整体创建或从持久化 JSON 加载
type Storyboard struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Scenes      []*Scene     `json:"scenes"`
	Annotations []Annotation `json:"annotations"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewID generates an opaque unique identifier
// NewID 生成不透明的唯一标识
func NewID() string {
	return uuid.NewString()
}

// Normalize ensures collection fields are non-nil and shot back references
// are consistent; called after load and before save
// Normalize 保证集合字段非 nil 且镜头反向引用一致；加载后与保存前调用
func (s *Storyboard) Normalize() {
	if s.Annotations == nil {
		s.Annotations = []Annotation{}
	}
	if s.Scenes == nil {
		s.Scenes = []*Scene{}
	}
	for _, scene := range s.Scenes {
		if scene.Shots == nil {
			scene.Shots = []*Shot{}
		}
		for _, shot := range scene.Shots {
			shot.SceneID = scene.ID
			if shot.Characters == nil {
				shot.Characters = []string{}
			}
		}
	}
}

// FindScene 按 ID 查找场景，返回场景与其下标
func (s *Storyboard) FindScene(sceneID string) (*Scene, int) {
	for i, scene := range s.Scenes {
		if scene.ID == sceneID {
			return scene, i
		}
	}
	return nil, -1
}

// FindShot 按 ID 查找镜头及其所属场景
func (s *Storyboard) FindShot(shotID string) (*Scene, *Shot, int) {
	for _, scene := range s.Scenes {
		for i, shot := range scene.Shots {
			if shot.ID == shotID {
				return scene, shot, i
			}
		}
	}
	return nil, nil, -1
}

// ShotCount 返回全部镜头数量
func (s *Storyboard) ShotCount() int {
	n := 0
	for _, scene := range s.Scenes {
		n += len(scene.Shots)
	}
	return n
}
