package schema

// Canonical row shapes produced by the normalizer. Every downstream consumer
// (aggregator, publisher, serving store) sees only these fully-shaped records;
// source-column vocabulary differences stop here.

// UnitRecord is one sale-unit row.
type UnitRecord struct {
	DeveloperName    string `json:"pemaju_name"`
	ProjectCode      string `json:"project_code"`
	ProjectName      string `json:"project_name"`
	PermitNo         string `json:"permit_no"`
	UnitNo           string `json:"unit_no"`
	PriceSales       string `json:"price_sales"`
	Status           string `json:"status"`
	BumiQuota        string `json:"bumi_quota"`
	ScrapedDate      string `json:"scraped_date"`
	ScrapedTimestamp string `json:"scraped_timestamp"`
}

// ProjectMasterRecord is one project's descriptive metadata row.
type ProjectMasterRecord struct {
	DeveloperName    string `json:"pemaju_name"`
	ProjectCode      string `json:"project_code"`
	ProjectName      string `json:"project_name"`
	PermitNo         string `json:"permit_no"`
	StatusOverall    string `json:"status_overall"`
	DevelopmentInfo  string `json:"development_info"`
	LocationDistrict string `json:"location_district"`
	LocationState    string `json:"location_state"`
	PermitValidDate  string `json:"permit_valid_date"`
	ScrapedDate      string `json:"scraped_date"`
	ScrapedTimestamp string `json:"scraped_timestamp"`
}

// HouseTypeRecord is one house-type component row.
type HouseTypeRecord struct {
	DeveloperName    string `json:"pemaju_name"`
	ProjectCode      string `json:"project_code"`
	ProjectName      string `json:"project_name"`
	HouseType        string `json:"house_type"`
	NumFloors        string `json:"num_floors"`
	NumRooms         string `json:"num_rooms"`
	NumBathrooms     string `json:"num_bathrooms"`
	BuiltUpSize      string `json:"built_up_size"`
	TotalUnits       string `json:"total_units"`
	PriceMin         string `json:"price_min"`
	PriceMax         string `json:"price_max"`
	PercentActual    string `json:"percent_actual"`
	ComponentStatus  string `json:"component_status"`
	DateCCCCFO       string `json:"date_ccc_cfo"`
	DateVP           string `json:"date_vp"`
	ScrapedDate      string `json:"scraped_date"`
	ScrapedTimestamp string `json:"scraped_timestamp"`
}

// Label returns the combined "CODE NAME" display label used as the project
// identity for grouping, master merge, and history keys.
func (u UnitRecord) Label() string {
	return DisplayLabel(u.ProjectCode, u.ProjectName)
}

func (m ProjectMasterRecord) Label() string {
	return DisplayLabel(m.ProjectCode, m.ProjectName)
}

func (h HouseTypeRecord) Label() string {
	return DisplayLabel(h.ProjectCode, h.ProjectName)
}
