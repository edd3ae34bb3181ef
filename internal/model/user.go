package model

import (
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"
)

// User 用户表
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string     `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	Nickname  string     `gorm:"column:nickname;size:64" json:"nickname"`
	Password  string     `gorm:"column:password;size:255" json:"-"`
	Salt      string     `gorm:"column:salt;size:64" json:"-"`
	Token     string     `gorm:"column:token;size:512" json:"token"`
	Avatar    string     `gorm:"column:avatar;size:512" json:"avatar"`
	IsDeleted int64      `gorm:"column:is_deleted;default:0" json:"isDeleted"`
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string {
	return "user"
}
