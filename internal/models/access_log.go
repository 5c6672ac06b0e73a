package models

import "time"

// AccessLog records one beta-access entry (name + optional organization).
type AccessLog struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserName     string    `gorm:"column:user_name;not null" json:"user_name"`
	Organization string    `gorm:"column:organization" json:"organization"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}
