package domain

import (
	"time"

	"github.com/haierkeys/storyboard-studio-service/pkg/convert"

	"github.com/pkg/errors"
)

// 文档编辑采用 reducer 风格：每个操作接收当前文档，返回全新的文档值，
// 失败时原文档保持不变
var (
	ErrSceneNotFound       = errors.New("scene not found")
	ErrShotNotFound        = errors.New("shot not found")
	ErrAnnotationNotFound  = errors.New("annotation not found")
	ErrLastSceneUndeletable = errors.New("the last scene cannot be deleted")
	ErrLastShotUndeletable  = errors.New("the last shot in a scene cannot be deleted")
	ErrInvalidReorder      = errors.New("reorder is not a permutation of existing ids")
	ErrInvalidAnnotation   = errors.New("annotation union is malformed")
)

// Clone 基于序列化往返做深拷贝，冻结快照与编辑操作共用
func (s *Storyboard) Clone() (*Storyboard, error) {
	out := &Storyboard{}
	if err := convert.DeepClone(out, s); err != nil {
		return nil, errors.Wrap(err, "storyboard clone")
	}
	out.Normalize()
	return out, nil
}

// isPermutation reports whether proposed is a reordering of existing:
// same length, same id set, no foreign or duplicated ids
// isPermutation 判断 proposed 是否为 existing 的重排：长度相同、ID 集合相同、无外部或重复 ID
func isPermutation(existing, proposed []string) bool {
	if len(existing) != len(proposed) {
		return false
	}
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	used := make(map[string]bool, len(proposed))
	for _, id := range proposed {
		if !seen[id] || used[id] {
			return false
		}
		used[id] = true
	}
	return true
}

// ReorderScenes returns a new storyboard with scenes arranged per orderedIDs.
// The id list must be a pure permutation of the current scene ids.
// ReorderScenes 返回按 orderedIDs 排列场景后的新故事板。
// ID 列表必须是当前场景 ID 的纯重排。
func (s *Storyboard) ReorderScenes(orderedIDs []string) (*Storyboard, error) {
	existing := make([]string, 0, len(s.Scenes))
	for _, scene := range s.Scenes {
		existing = append(existing, scene.ID)
	}
	if !isPermutation(existing, orderedIDs) {
		return nil, ErrInvalidReorder
	}

	next, err := s.Clone()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Scene, len(next.Scenes))
	for _, scene := range next.Scenes {
		byID[scene.ID] = scene
	}
	ordered := make([]*Scene, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		ordered = append(ordered, byID[id])
	}
	next.Scenes = ordered
	next.UpdatedAt = time.Now()
	return next, nil
}

// ReorderShots 返回指定场景内镜头按 orderedIDs 排列后的新故事板
func (s *Storyboard) ReorderShots(sceneID string, orderedIDs []string) (*Storyboard, error) {
	scene, _ := s.FindScene(sceneID)
	if scene == nil {
		return nil, ErrSceneNotFound
	}

	existing := make([]string, 0, len(scene.Shots))
	for _, shot := range scene.Shots {
		existing = append(existing, shot.ID)
	}
	if !isPermutation(existing, orderedIDs) {
		return nil, ErrInvalidReorder
	}

	next, err := s.Clone()
	if err != nil {
		return nil, err
	}

	nextScene, _ := next.FindScene(sceneID)
	byID := make(map[string]*Shot, len(nextScene.Shots))
	for _, shot := range nextScene.Shots {
		byID[shot.ID] = shot
	}
	ordered := make([]*Shot, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		ordered = append(ordered, byID[id])
	}
	nextScene.Shots = ordered
	next.UpdatedAt = time.Now()
	return next, nil
}

// AddScene 追加场景并返回新故事板
func (s *Storyboard) AddScene(scene *Scene) (*Storyboard, error) {
	next, err := s.Clone()
	if err != nil {
		return nil, err
	}
	if scene.ID == "" {
		scene.ID = NewID()
	}
	for _, shot := range scene.Shots {
		shot.SceneID = scene.ID
		if shot.ID == "" {
			shot.ID = NewID()
		}
	}
	next.Scenes = append(next.Scenes, scene)
	next.Normalize()
	next.UpdatedAt = time.Now()
	return next, nil
}

// AddShot 向场景追加镜头并返回新故事板
func (s *Storyboard) AddShot(sceneID string, shot *Shot) (*Storyboard, error) {
	if scene, _ := s.FindScene(sceneID); scene == nil {
		return nil, ErrSceneNotFound
	}
	next, err := s.Clone()
	if err != nil {
		return nil, err
	}
	scene, _ := next.FindScene(sceneID)
	if shot.ID == "" {
		shot.ID = NewID()
	}
	shot.SceneID = sceneID
	shot.CreatedAt = time.Now()
	shot.UpdatedAt = shot.CreatedAt
	scene.Shots = append(scene.Shots, shot)
	next.Normalize()
	next.UpdatedAt = time.Now()
	return next, nil
}

// DeleteScene removes a scene; removing the sole remaining scene is
// rejected by policy and the document is unchanged
// DeleteScene 删除场景；按策略拒绝删除最后一个场景，文档保持不变
func (s *Storyboard) DeleteScene(sceneID string) (*Storyboard, error) {
	scene, idx := s.FindScene(sceneID)
	if scene == nil {
		return nil, ErrSceneNotFound
	}
	if len(s.Scenes) <= 1 {
		return nil, ErrLastSceneUndeletable
	}

	next, err := s.Clone()
	if err != nil {
		return nil, err
	}
	next.Scenes = append(next.Scenes[:idx], next.Scenes[idx+1:]...)

	// 同步清理引用该场景及其镜头的批注
	shotIDs := make(map[string]bool, len(scene.Shots))
	for _, shot := range scene.Shots {
		shotIDs[shot.ID] = true
	}
	kept := next.Annotations[:0]
	for _, a := range next.Annotations {
		if a.SceneID == sceneID || shotIDs[a.ShotID] {
			continue
		}
		kept = append(kept, a)
	}
	next.Annotations = kept
	next.UpdatedAt = time.Now()
	return next, nil
}

// DeleteShot 删除镜头；按策略拒绝删除场景中仅剩的镜头
func (s *Storyboard) DeleteShot(shotID string) (*Storyboard, error) {
	scene, shot, idx := s.FindShot(shotID)
	if shot == nil {
		return nil, ErrShotNotFound
	}
	if len(scene.Shots) <= 1 {
		return nil, ErrLastShotUndeletable
	}

	next, err := s.Clone()
	if err != nil {
		return nil, err
	}
	nextScene, _ := next.FindScene(scene.ID)
	nextScene.Shots = append(nextScene.Shots[:idx], nextScene.Shots[idx+1:]...)

	kept := next.Annotations[:0]
	for _, a := range next.Annotations {
		if a.ShotID == shotID {
			continue
		}
		kept = append(kept, a)
	}
	next.Annotations = kept
	next.UpdatedAt = time.Now()
	return next, nil
}

// UpdateScene 对指定场景应用变更函数并返回新故事板
func (s *Storyboard) UpdateScene(sceneID string, mutate func(*Scene)) (*Storyboard, error) {
	if scene, _ := s.FindScene(sceneID); scene == nil {
		return nil, ErrSceneNotFound
	}
	next, err := s.Clone()
	if err != nil {
		return nil, err
	}
	scene, _ := next.FindScene(sceneID)
	mutate(scene)
	next.UpdatedAt = time.Now()
	return next, nil
}

// UpdateShot 对指定镜头应用变更函数并返回新故事板
func (s *Storyboard) UpdateShot(shotID string, mutate func(*Shot)) (*Storyboard, error) {
	if _, shot, _ := s.FindShot(shotID); shot == nil {
		return nil, ErrShotNotFound
	}
	next, err := s.Clone()
	if err != nil {
		return nil, err
	}
	_, shot, _ := next.FindShot(shotID)
	mutate(shot)
	shot.UpdatedAt = time.Now()
	next.UpdatedAt = time.Now()
	return next, nil
}

// AddAnnotation validates the union and its target before attaching
// AddAnnotation 校验联合及其目标后挂载批注
func (s *Storyboard) AddAnnotation(a Annotation) (*Storyboard, error) {
	if !a.Valid() {
		return nil, ErrInvalidAnnotation
	}
	if a.SceneID != "" {
		if scene, _ := s.FindScene(a.SceneID); scene == nil {
			return nil, ErrSceneNotFound
		}
	}
	if a.ShotID != "" {
		if _, shot, _ := s.FindShot(a.ShotID); shot == nil {
			return nil, ErrShotNotFound
		}
	}

	next, err := s.Clone()
	if err != nil {
		return nil, err
	}
	if a.ID == "" {
		a.ID = NewID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	next.Annotations = append(next.Annotations, a)
	next.UpdatedAt = time.Now()
	return next, nil
}

// UpdateAnnotation 替换同 ID 批注，新值须通过联合校验
func (s *Storyboard) UpdateAnnotation(a Annotation) (*Storyboard, error) {
	if !a.Valid() {
		return nil, ErrInvalidAnnotation
	}
	idx := -1
	for i := range s.Annotations {
		if s.Annotations[i].ID == a.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrAnnotationNotFound
	}

	next, err := s.Clone()
	if err != nil {
		return nil, err
	}
	next.Annotations[idx] = a
	next.UpdatedAt = time.Now()
	return next, nil
}

// DeleteAnnotation 移除批注
func (s *Storyboard) DeleteAnnotation(annotationID string) (*Storyboard, error) {
	idx := -1
	for i := range s.Annotations {
		if s.Annotations[i].ID == annotationID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrAnnotationNotFound
	}

	next, err := s.Clone()
	if err != nil {
		return nil, err
	}
	next.Annotations = append(next.Annotations[:idx], next.Annotations[idx+1:]...)
	next.UpdatedAt = time.Now()
	return next, nil
}
