package dto

// ExportRequest 导出请求参数
type ExportRequest struct {
	ProjectID    int64   `json:"projectId" form:"projectId" binding:"required"`
	Type         string  `json:"type" form:"type" binding:"required,oneof=pdf html images"` // Export format // 导出格式
	Mode         string  `json:"mode" form:"mode" binding:"omitempty,oneof=grid list detailed"`
	ShotsPerPage int     `json:"shotsPerPage" form:"shotsPerPage" binding:"omitempty,min=1,max=24"`
	PageSize     string  `json:"pageSize" form:"pageSize" binding:"omitempty,oneof=a4 a3 letter"`
	Orientation  string  `json:"orientation" form:"orientation" binding:"omitempty,oneof=portrait landscape"`
	MarginMM     float64 `json:"marginMm" form:"marginMm" binding:"omitempty,min=0,max=50"`
}

// ---------------- DTO / Response ----------------

// ExportDTO 导出结果
type ExportDTO struct {
	Type      string   `json:"type"`
	URL       string   `json:"url"`            // Primary artifact key/URL // 主产物键或 URL
	URLs      []string `json:"urls,omitempty"` // Per-page artifacts for images export // images 导出的分页产物
	PageCount int      `json:"pageCount"`
	Size      int64    `json:"size"`
}
