package model

import (
	"time"

	"github.com/aarondl/opt/omit"
)

type Driver struct {
	Abbreviation string
	Name         string
	Team         string
	StartTime    omit.Val[time.Time]
	StopTime     omit.Val[time.Time]
	bestLap      omit.Val[time.Duration] // derived, see ComputeBestLap
}

func NewDriver(abbr, name, team string) *Driver {
	return &Driver{Abbreviation: abbr, Name: name, Team: team}
}

// ComputeBestLap sets the best lap from start and stop time.
// Start and stop are swapped if they were recorded in reverse order.
// Returns false if one of the timestamps is missing.
func (d *Driver) ComputeBestLap() bool {
	start, okStart := d.StartTime.Get()
	stop, okStop := d.StopTime.Get()
	if !okStart || !okStop {
		d.bestLap.Unset()
		return false
	}
	if start.After(stop) {
		start, stop = stop, start
		d.StartTime.Set(start)
		d.StopTime.Set(stop)
	}
	d.bestLap.Set(stop.Sub(start))
	return true
}

func (d *Driver) BestLap() (time.Duration, bool) {
	return d.bestLap.Get()
}

func (d *Driver) HasBestLap() bool {
	return d.bestLap.IsValue()
}
