package models

import "time"

// UnitDetail is one sale-unit row in the serving store. Rows are immutable
// once published and superseded wholesale by the next publish cycle.
type UnitDetail struct {
	ID               uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectCode      string    `gorm:"column:project_code" json:"project_code"`
	ProjectName      string    `gorm:"column:project_name" json:"project_name"`
	PemajuName       string    `gorm:"column:pemaju_name" json:"pemaju_name"`
	PermitNo         string    `gorm:"column:permit_no" json:"permit_no"`
	UnitNo           string    `gorm:"column:unit_no" json:"unit_no"`
	PriceSales       string    `gorm:"column:price_sales" json:"price_sales"`
	Status           string    `gorm:"column:status" json:"status"`
	BumiQuota        string    `gorm:"column:bumi_quota" json:"bumi_quota"`
	ScrapedDate      string    `gorm:"column:scraped_date" json:"scraped_date"`
	ScrapedTimestamp string    `gorm:"column:scraped_timestamp" json:"scraped_timestamp"`
	CreatedAt        time.Time `json:"created_at"`
}

func (UnitDetail) TableName() string {
	return "units_detail"
}
