package models

import "time"

// HouseType is one house-type component row in the serving store.
type HouseType struct {
	ID               uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectCode      string    `gorm:"column:project_code" json:"project_code"`
	ProjectName      string    `gorm:"column:project_name" json:"project_name"`
	PemajuName       string    `gorm:"column:pemaju_name" json:"pemaju_name"`
	HouseTypeName    string    `gorm:"column:house_type" json:"house_type"`
	NumFloors        string    `gorm:"column:num_floors" json:"num_floors"`
	NumRooms         string    `gorm:"column:num_rooms" json:"num_rooms"`
	NumBathrooms     string    `gorm:"column:num_bathrooms" json:"num_bathrooms"`
	BuiltUpSize      string    `gorm:"column:built_up_size" json:"built_up_size"`
	TotalUnits       string    `gorm:"column:total_units" json:"total_units"`
	PriceMin         string    `gorm:"column:price_min" json:"price_min"`
	PriceMax         string    `gorm:"column:price_max" json:"price_max"`
	PercentActual    string    `gorm:"column:percent_actual" json:"percent_actual"`
	ComponentStatus  string    `gorm:"column:component_status" json:"component_status"`
	DateCCCCFO       string    `gorm:"column:date_ccc_cfo" json:"date_ccc_cfo"`
	DateVP           string    `gorm:"column:date_vp" json:"date_vp"`
	ScrapedDate      string    `gorm:"column:scraped_date" json:"scraped_date"`
	ScrapedTimestamp string    `gorm:"column:scraped_timestamp" json:"scraped_timestamp"`
	CreatedAt        time.Time `json:"created_at"`
}

func (HouseType) TableName() string {
	return "house_types"
}
