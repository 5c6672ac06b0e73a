package schema

import (
	"strings"
)

// Variant tags the source-column vocabulary of a raw row.
type Variant int

const (
	// VariantLegacy is the scraper CSV export with Malay free-text headers
	// ("Kod Projek & Nama Projek", "Harga Jualan (RM)", ...).
	VariantLegacy Variant = iota
	// VariantSnake is the renamed snake_case vocabulary used by the serving
	// store ("project_code", "price_sales", ...).
	VariantSnake
)

// Canonical field keys shared by the mapping tables below.
const (
	fieldDeveloper       = "pemaju_name"
	fieldProjectRaw      = "project_name_raw"
	fieldProjectCode     = "project_code"
	fieldProjectName     = "project_name"
	fieldPermitNo        = "permit_no"
	fieldUnitNo          = "unit_no"
	fieldPriceSales      = "price_sales"
	fieldStatus          = "status"
	fieldBumiQuota       = "bumi_quota"
	fieldStatusOverall   = "status_overall"
	fieldDevelopmentInfo = "development_info"
	fieldDistrict        = "location_district"
	fieldState           = "location_state"
	fieldPermitValid     = "permit_valid_date"
	fieldHouseType       = "house_type"
	fieldNumFloors       = "num_floors"
	fieldNumRooms        = "num_rooms"
	fieldNumBathrooms    = "num_bathrooms"
	fieldBuiltUpSize     = "built_up_size"
	fieldTotalUnits      = "total_units"
	fieldPriceMin        = "price_min"
	fieldPriceMax        = "price_max"
	fieldPercentActual   = "percent_actual"
	fieldComponentStatus = "component_status"
	fieldDateCCCCFO      = "date_ccc_cfo"
	fieldDateVP          = "date_vp"
	fieldScrapedDate     = "scraped_date"
	fieldScrapedTime     = "scraped_timestamp"
)

// unitLegacyColumns maps the scraper's Malay unit-detail headers to canonical
// fields. Unknown columns are dropped on lookup.
var unitLegacyColumns = map[string]string{
	"Kod Projek & Nama Projek": fieldProjectRaw,
	"Kod Pemaju & Nama Pemaju": fieldDeveloper,
	"No. Permit":               fieldPermitNo,
	"No Unit":                  fieldUnitNo,
	"Harga Jualan (RM)":        fieldPriceSales,
	"Status Jualan":            fieldStatus,
	"Kuota Bumi":               fieldBumiQuota,
	"Scraped_Date":             fieldScrapedDate,
	"Scraped_Timestamp":        fieldScrapedTime,
}

var masterLegacyColumns = map[string]string{
	"Kod Projek & Nama Projek":       fieldProjectRaw,
	"Kod Pemaju & Nama Pemaju":       fieldDeveloper,
	"No. Permit":                     fieldPermitNo,
	"Status Projek Keseluruhan":      fieldStatusOverall,
	"Maklumat Pembangunan":           fieldDevelopmentInfo,
	"Daerah Projek":                  fieldDistrict,
	"Negeri Projek":                  fieldState,
	"Tarikh Sah Laku Permit Terkini": fieldPermitValid,
	"Scraped_Date":                   fieldScrapedDate,
	"Scraped_Timestamp":              fieldScrapedTime,
}

var houseLegacyColumns = map[string]string{
	"Kod Projek":               fieldProjectCode,
	"Nama Projek":              fieldProjectName,
	"Kod Pemaju & Nama Pemaju": fieldDeveloper,
	"Jenis Rumah":              fieldHouseType,
	"Bil Tingkat":              fieldNumFloors,
	"Bil Bilik":                fieldNumRooms,
	"Bil Tandas":               fieldNumBathrooms,
	"Keluasan Binaan (Mps)":    fieldBuiltUpSize,
	"Bil.Unit":                 fieldTotalUnits,
	"Harga Minimum (RM)":       fieldPriceMin,
	"Harga Maksimum (RM)":      fieldPriceMax,
	"Peratus Sebenar %":        fieldPercentActual,
	"Status Komponen":          fieldComponentStatus,
	"Tarikh CCC/CFO":           fieldDateCCCCFO,
	"Tarikh VP":                fieldDateVP,
	"Scraped_Date":             fieldScrapedDate,
	"Scraped_Timestamp":        fieldScrapedTime,
}

// snakeColumns is the identity vocabulary of the serving store. One table
// covers all three entities; each normalizer picks the fields it knows.
var snakeColumns = map[string]string{
	fieldDeveloper:       fieldDeveloper,
	"developer_name":     fieldDeveloper,
	fieldProjectRaw:      fieldProjectRaw,
	fieldProjectCode:     fieldProjectCode,
	fieldProjectName:     fieldProjectName,
	fieldPermitNo:        fieldPermitNo,
	fieldUnitNo:          fieldUnitNo,
	fieldPriceSales:      fieldPriceSales,
	fieldStatus:          fieldStatus,
	fieldBumiQuota:       fieldBumiQuota,
	fieldStatusOverall:   fieldStatusOverall,
	fieldDevelopmentInfo: fieldDevelopmentInfo,
	fieldDistrict:        fieldDistrict,
	fieldState:           fieldState,
	fieldPermitValid:     fieldPermitValid,
	fieldHouseType:       fieldHouseType,
	fieldNumFloors:       fieldNumFloors,
	fieldNumRooms:        fieldNumRooms,
	fieldNumBathrooms:    fieldNumBathrooms,
	fieldBuiltUpSize:     fieldBuiltUpSize,
	fieldTotalUnits:      fieldTotalUnits,
	fieldPriceMin:        fieldPriceMin,
	fieldPriceMax:        fieldPriceMax,
	fieldPercentActual:   fieldPercentActual,
	fieldComponentStatus: fieldComponentStatus,
	fieldDateCCCCFO:      fieldDateCCCCFO,
	fieldDateVP:          fieldDateVP,
	fieldScrapedDate:     fieldScrapedDate,
	fieldScrapedTime:     fieldScrapedTime,
}

// CanonicalHeader strips a UTF-8 byte-order mark and surrounding whitespace
// from a raw header cell so it can be used for map lookup.
func CanonicalHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.TrimSpace(h)
}

// SplitProjectLabel splits an embedded "CODE NAME" value at the first
// whitespace run. The remainder (possibly empty) is the name.
func SplitProjectLabel(raw string) (code, name string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	fields := strings.Fields(raw)
	code = fields[0]
	if len(fields) > 1 {
		name = strings.Join(fields[1:], " ")
	}
	return code, name
}

// DisplayLabel joins a code and a name into the combined display label.
// Either side may be empty; the result never has stray spaces.
func DisplayLabel(code, name string) string {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	switch {
	case code == "":
		return name
	case name == "":
		return code
	default:
		return code + " " + name
	}
}

func variantColumns(v Variant, legacy map[string]string) map[string]string {
	if v == VariantSnake {
		return snakeColumns
	}
	return legacy
}

// canonicalize maps a raw row into canonical field keys, dropping columns the
// vocabulary does not know and absorbing BOM/whitespace noise in headers.
func canonicalize(raw map[string]string, columns map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if field, ok := columns[CanonicalHeader(k)]; ok {
			out[field] = strings.TrimSpace(v)
		}
	}
	return out
}

// splitRawLabel fills project_code/project_name from project_name_raw when
// the source carries the combined field instead of the split pair.
func splitRawLabel(row map[string]string) {
	rawLabel, ok := row[fieldProjectRaw]
	if !ok || rawLabel == "" {
		return
	}
	if row[fieldProjectCode] == "" && row[fieldProjectName] == "" {
		code, name := SplitProjectLabel(rawLabel)
		row[fieldProjectCode] = code
		row[fieldProjectName] = name
	}
}

// NormalizeUnit maps a raw row (column name → value) into a UnitRecord.
// Missing expected columns default to "".
func NormalizeUnit(raw map[string]string, v Variant) UnitRecord {
	row := canonicalize(raw, variantColumns(v, unitLegacyColumns))
	splitRawLabel(row)
	return UnitRecord{
		DeveloperName:    row[fieldDeveloper],
		ProjectCode:      row[fieldProjectCode],
		ProjectName:      row[fieldProjectName],
		PermitNo:         row[fieldPermitNo],
		UnitNo:           row[fieldUnitNo],
		PriceSales:       row[fieldPriceSales],
		Status:           row[fieldStatus],
		BumiQuota:        row[fieldBumiQuota],
		ScrapedDate:      row[fieldScrapedDate],
		ScrapedTimestamp: row[fieldScrapedTime],
	}
}

// NormalizeMaster maps a raw row into a ProjectMasterRecord.
func NormalizeMaster(raw map[string]string, v Variant) ProjectMasterRecord {
	row := canonicalize(raw, variantColumns(v, masterLegacyColumns))
	splitRawLabel(row)
	return ProjectMasterRecord{
		DeveloperName:    row[fieldDeveloper],
		ProjectCode:      row[fieldProjectCode],
		ProjectName:      row[fieldProjectName],
		PermitNo:         row[fieldPermitNo],
		StatusOverall:    row[fieldStatusOverall],
		DevelopmentInfo:  row[fieldDevelopmentInfo],
		LocationDistrict: row[fieldDistrict],
		LocationState:    row[fieldState],
		PermitValidDate:  row[fieldPermitValid],
		ScrapedDate:      row[fieldScrapedDate],
		ScrapedTimestamp: row[fieldScrapedTime],
	}
}

// NormalizeHouseType maps a raw row into a HouseTypeRecord.
func NormalizeHouseType(raw map[string]string, v Variant) HouseTypeRecord {
	row := canonicalize(raw, variantColumns(v, houseLegacyColumns))
	splitRawLabel(row)
	return HouseTypeRecord{
		DeveloperName:    row[fieldDeveloper],
		ProjectCode:      row[fieldProjectCode],
		ProjectName:      row[fieldProjectName],
		HouseType:        row[fieldHouseType],
		NumFloors:        row[fieldNumFloors],
		NumRooms:         row[fieldNumRooms],
		NumBathrooms:     row[fieldNumBathrooms],
		BuiltUpSize:      row[fieldBuiltUpSize],
		TotalUnits:       row[fieldTotalUnits],
		PriceMin:         row[fieldPriceMin],
		PriceMax:         row[fieldPriceMax],
		PercentActual:    row[fieldPercentActual],
		ComponentStatus:  row[fieldComponentStatus],
		DateCCCCFO:       row[fieldDateCCCCFO],
		DateVP:           row[fieldDateVP],
		ScrapedDate:      row[fieldScrapedDate],
		ScrapedTimestamp: row[fieldScrapedTime],
	}
}
