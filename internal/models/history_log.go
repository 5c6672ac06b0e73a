package models

import (
	"time"

	"gorm.io/datatypes"
)

// HistoryLog is one append-only snapshot of a project's sales state on one
// date. The table is never truncated or rewritten; supersession is by "most
// recent entry at or before a target date", which keeps point-in-time queries
// and audits possible.
type HistoryLog struct {
	ID            uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ScrapedDate   datatypes.Date `gorm:"column:scraped_date;index" json:"scraped_date"`
	DeveloperName string         `gorm:"column:developer_name;index" json:"developer_name"`
	ProjectCode   string         `gorm:"column:project_code" json:"project_code"`
	ProjectName   string         `gorm:"column:project_name" json:"project_name"`
	TotalUnits    int            `gorm:"column:total_units" json:"total_units"`
	UnitsSold     int            `gorm:"column:units_sold" json:"units_sold"`
	UnitsUnsold   int            `gorm:"column:units_unsold" json:"units_unsold"`
	UnitsBumi     int            `gorm:"column:units_bumi" json:"units_bumi"`
	SalesValue    float64        `gorm:"column:sales_value" json:"sales_value"`
	TakeUpRate    float64        `gorm:"column:take_up_rate" json:"take_up_rate"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (HistoryLog) TableName() string {
	return "history_logs"
}
