package dto

// WS push action names
// WS 推送动作名
const (
	WSActionImageProgress = "image.progress"
	WSActionImageDone     = "image.done"
	WSActionExportDone    = "export.done"
)

// WSImageProgressDTO 画面生成进度推送负载
type WSImageProgressDTO struct {
	ProjectID int64  `json:"projectId"`
	ShotID    string `json:"shotId"`
	Status    string `json:"status"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Queued    int    `json:"queued"`
}

// WSExportDoneDTO 导出完成推送负载
type WSExportDoneDTO struct {
	ProjectID int64  `json:"projectId"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	PageCount int    `json:"pageCount"`
}
