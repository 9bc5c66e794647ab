package report

import (
	"time"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mpapenbr/lapreport/pkg/model"
)

// RenderJSON creates the report as JSON array.
// Ordering and filtering are the same as in Render. A filter without match
// results in an empty array.
func RenderJSON(drivers []*model.Driver, ascending bool, driverFilter string) (string, error) {
	var selected []*model.Driver
	if driverFilter != "" {
		selected = []*model.Driver{}
		if d, ok := FindDriver(drivers, driverFilter); ok {
			selected = append(selected, d)
		}
	} else {
		selected = Rank(drivers, ascending)
	}
	rows := lo.Map(selected, func(d *model.Driver, idx int) any {
		return jsonRow(idx+1, d)
	})
	opts := ojg.DefaultOptions
	opts.Indent = 2
	opts.Sort = true
	data, err := oj.Marshal(rows, &opts)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func jsonRow(position int, d *model.Driver) map[string]any {
	row := map[string]any{
		"position":     position,
		"abbreviation": d.Abbreviation,
		"name":         d.Name,
		"team":         d.Team,
		"lapTime":      nil,
		"lapSeconds":   nil,
	}
	if lap, ok := d.BestLap(); ok {
		row["lapTime"] = FormatLapTime(lap)
		row["lapSeconds"] = lapSeconds(lap)
	}
	return row
}

// lapSeconds returns the lap in seconds with exactly three decimals, e.g. "90.500".
// Sub-millisecond parts are truncated like in FormatLapTime.
func lapSeconds(lap time.Duration) string {
	return decimal.NewFromInt(lap.Milliseconds()).Shift(-3).StringFixed(3)
}
