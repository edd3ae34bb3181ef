package model

import (
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"
)

// Project 项目表；Doc 列为整体读写的 JSON 文档
type Project struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID       int64      `gorm:"column:uid;index" json:"uid"`
	Name      string     `gorm:"column:name;size:255" json:"name"`
	Doc       string     `gorm:"column:doc;type:text" json:"doc"`
	IsDeleted int64      `gorm:"column:is_deleted;default:0" json:"isDeleted"`
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Project) TableName() string {
	return "project"
}
