package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/lapreport/pkg/model"
)

const (
	DriverNotFound = "Driver not found"
	NoTime         = "no time"

	// drivers up to this position qualify for the next session
	qualificationCutoff = 15
)

var divider = strings.Repeat("-", 60)

// ComputeBestLaps computes the best lap for all drivers.
// Returns the drivers which have no best lap because a timestamp is missing.
func ComputeBestLaps(drivers []*model.Driver) []*model.Driver {
	return lo.Reject(drivers, func(d *model.Driver, _ int) bool {
		return d.ComputeBestLap()
	})
}

// Rank orders the drivers by best lap, fastest first.
// Drivers without best lap follow in the given order.
// If ascending is false the complete list is reversed.
func Rank(drivers []*model.Driver, ascending bool) []*model.Driver {
	timed := lo.Filter(drivers, func(d *model.Driver, _ int) bool { return d.HasBestLap() })
	untimed := lo.Reject(drivers, func(d *model.Driver, _ int) bool { return d.HasBestLap() })
	slices.SortStableFunc(timed, func(a, b *model.Driver) int {
		la, _ := a.BestLap()
		lb, _ := b.BestLap()
		return cmp.Compare(la, lb)
	})
	ret := append(timed, untimed...)
	if !ascending {
		slices.Reverse(ret)
	}
	return ret
}

// FindDriver returns the first driver whose name contains query, ignoring case.
func FindDriver(drivers []*model.Driver, query string) (*model.Driver, bool) {
	q := strings.ToLower(query)
	return lo.Find(drivers, func(d *model.Driver) bool {
		return strings.Contains(strings.ToLower(d.Name), q)
	})
}

// Render creates the text report.
// If driverFilter is set only the statistics line of the first matching
// driver is returned (or DriverNotFound).
func Render(drivers []*model.Driver, ascending bool, driverFilter string) string {
	if driverFilter != "" {
		if d, ok := FindDriver(drivers, driverFilter); ok {
			return Statistics(d)
		}
		return DriverNotFound
	}

	lines := lo.Map(Rank(drivers, ascending), func(d *model.Driver, idx int) string {
		return fmt.Sprintf("%2d. %s", idx+1, Statistics(d))
	})
	if ascending && len(lines) >= qualificationCutoff {
		lines = slices.Insert(lines, qualificationCutoff, divider)
	}
	return strings.Join(lines, "\n")
}

func Statistics(d *model.Driver) string {
	return fmt.Sprintf("%-20s |%-25s |%s", d.Name, d.Team, lapTime(d))
}

func lapTime(d *model.Driver) string {
	if lap, ok := d.BestLap(); ok {
		return FormatLapTime(lap)
	}
	return NoTime
}

// FormatLapTime formats d as H:MM:SS.mmm (H is not padded).
// Sub-millisecond parts are truncated.
func FormatLapTime(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	us := (d % time.Second) / time.Microsecond
	full := fmt.Sprintf("%d:%02d:%02d.%06d", h, m, s, us)
	return full[:len(full)-3]
}
