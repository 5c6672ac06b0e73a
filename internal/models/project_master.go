package models

import "time"

// ProjectMaster is one project's descriptive metadata row in the serving
// store. The table is truncated and fully replaced on every publish cycle;
// scrape values are kept as raw text and normalized at read time.
type ProjectMaster struct {
	ID               uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectCode      string    `gorm:"column:project_code" json:"project_code"`
	ProjectName      string    `gorm:"column:project_name" json:"project_name"`
	PemajuName       string    `gorm:"column:pemaju_name" json:"pemaju_name"`
	PermitNo         string    `gorm:"column:permit_no" json:"permit_no"`
	StatusOverall    string    `gorm:"column:status_overall" json:"status_overall"`
	DevelopmentInfo  string    `gorm:"column:development_info" json:"development_info"`
	LocationDistrict string    `gorm:"column:location_district" json:"location_district"`
	LocationState    string    `gorm:"column:location_state" json:"location_state"`
	PermitValidDate  string    `gorm:"column:permit_valid_date" json:"permit_valid_date"`
	ScrapedDate      string    `gorm:"column:scraped_date" json:"scraped_date"`
	ScrapedTimestamp string    `gorm:"column:scraped_timestamp" json:"scraped_timestamp"`
	CreatedAt        time.Time `json:"created_at"`
}

func (ProjectMaster) TableName() string {
	return "projects_master"
}
