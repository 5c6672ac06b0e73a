package publisher

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"devintel-backend/internal/schema"

	"github.com/rs/zerolog/log"
)

// Filename markers the scraper uses for the three entity kinds.
const (
	markerUnitDetails = "_UNIT_DETAILS_"
	markerAllProjects = "_ALL_PROJECTS_"
	markerHouseType   = "_HOUSE_TYPE_"
)

// Datasets holds one publish run's normalized input.
type Datasets struct {
	Units   []schema.UnitRecord
	Masters []schema.ProjectMasterRecord
	Houses  []schema.HouseTypeRecord
}

// ScanDataDir walks the scraper drop folder, classifies CSV files by their
// filename marker, and normalizes every row through the legacy column maps.
// Files matching no marker are skipped.
func ScanDataDir(dir string) (Datasets, error) {
	var ds Datasets

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		switch {
		case strings.Contains(name, markerUnitDetails):
			rows, err := readCSVRows(path)
			if err != nil {
				return err
			}
			for _, raw := range rows {
				ds.Units = append(ds.Units, schema.NormalizeUnit(raw, schema.VariantLegacy))
			}
		case strings.Contains(name, markerAllProjects):
			rows, err := readCSVRows(path)
			if err != nil {
				return err
			}
			for _, raw := range rows {
				ds.Masters = append(ds.Masters, schema.NormalizeMaster(raw, schema.VariantLegacy))
			}
		case strings.Contains(name, markerHouseType):
			rows, err := readCSVRows(path)
			if err != nil {
				return err
			}
			for _, raw := range rows {
				ds.Houses = append(ds.Houses, schema.NormalizeHouseType(raw, schema.VariantLegacy))
			}
		default:
			log.Debug().Str("file", name).Msg("skipping file without entity marker")
		}
		return nil
	})
	if err != nil {
		return Datasets{}, fmt.Errorf("scan %s: %w", dir, err)
	}
	return ds, nil
}

// readCSVRows reads one CSV file into header-keyed row maps. The header row
// is taken verbatim; BOM and whitespace are absorbed later by the schema
// lookup. Short rows leave trailing columns empty.
func readCSVRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
