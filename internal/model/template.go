package model

import (
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"
)

// Template 风格模板表；Style 列为 JSON 序列化的风格设置
type Template struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID       int64      `gorm:"column:uid;index" json:"uid"`
	Name      string     `gorm:"column:name;size:255" json:"name"`
	Style     string     `gorm:"column:style;type:text" json:"style"`
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Template) TableName() string {
	return "template"
}
