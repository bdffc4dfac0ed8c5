package pricelist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/planor/portal-api/pkg/model"
)

// areaUnit is the unit marker carried by localized area strings ("355,8 m²").
const areaUnit = "m²"

// Row is one usable line parsed from an uploaded pricelist file. The upstream
// export writes semicolon-separated fields: type, object label, count or area,
// level, element id. Count-based rows carry Area 0; area-based rows carry the
// upstream's implicit Count of 1.
type Row struct {
	Type      string
	Object    string
	Count     int
	Area      float64
	Level     string
	ElementID string
}

// Parse converts pricelist file content into rows, inferring the category from
// the file name. Malformed lines are skipped, never fatal; the only error is a
// file that yields no usable rows at all.
func Parse(content, fileName string) ([]Row, model.Category, error) {
	category := model.CategoryFromFileName(fileName)

	var rows []Row
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		fields := strings.Split(line, ";")
		nonEmpty := 0
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
			if fields[i] != "" {
				nonEmpty++
			}
		}
		// Header and blank lines never reach three populated fields.
		if len(fields) < 3 || nonEmpty < 3 {
			continue
		}

		row := Row{Type: fields[0], Object: fields[1]}
		if len(fields) > 3 {
			row.Level = fields[3]
		}
		if len(fields) > 4 {
			row.ElementID = fields[4]
		}

		value := fields[2]
		switch {
		case category.Known() && category.CountBased():
			row.Count = parseCount(value)
		case category.Known():
			row.Area = parseArea(value)
			row.Count = 1
		default:
			// Unknown category: classify the value field itself.
			if _, err := strconv.ParseFloat(value, 64); err == nil {
				row.Count = parseCount(value)
			} else if strings.Contains(value, areaUnit) {
				row.Area = parseArea(value)
				row.Count = 1
			} else {
				continue
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, category, fmt.Errorf("no usable rows in %s", fileName)
	}
	return rows, category, nil
}

// parseCount reads a discrete item count, defaulting to 1 on malformed input.
func parseCount(raw string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return int(f)
	}
	return 1
}

// parseArea reads a localized area string such as "355,8 m²": the unit marker
// is stripped and the decimal comma normalized before parsing. Malformed
// values default to 0.
func parseArea(raw string) float64 {
	clean := strings.ReplaceAll(raw, areaUnit, "")
	clean = strings.ReplaceAll(strings.TrimSpace(clean), ",", ".")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return f
}
