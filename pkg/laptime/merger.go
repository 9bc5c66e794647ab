package laptime

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/samber/lo"

	"github.com/mpapenbr/lapreport/log"
	"github.com/mpapenbr/lapreport/pkg/datasource"
	"github.com/mpapenbr/lapreport/pkg/model"
)

const (
	abbrLen = 3
	// fractional seconds are accepted by time.Parse even if not in the layout
	timeOfDayLayout = "15:04:05"
)

// Stats summarizes a merge run.
type Stats struct {
	Starts      int      // start times attached
	Stops       int      // stop times attached
	Unmatched   []string // abbreviations found in the logs but not in the roster
	MissingLaps []string // roster drivers without start or stop time
}

type target func(d *model.Driver, ts time.Time)

// Merge reads the start and stop logs and attaches the timestamps to the
// drivers of the roster.
// Lines of the logs have the form ABR_HH:MM:SS.mmm.
// All timestamps are parsed on the same reference date.
func Merge(
	ctx context.Context,
	src *datasource.Source,
	roster *model.Roster,
	startFile, stopFile string,
) (*Stats, error) {
	logger := log.GetFromContext(ctx).Named("laptime")
	stats := &Stats{Unmatched: []string{}}
	var err error

	stats.Starts, err = attach(logger, src, startFile, roster, stats,
		func(d *model.Driver, ts time.Time) { d.StartTime = omit.From(ts) })
	if err != nil {
		return nil, err
	}
	stats.Stops, err = attach(logger, src, stopFile, roster, stats,
		func(d *model.Driver, ts time.Time) { d.StopTime = omit.From(ts) })
	if err != nil {
		return nil, err
	}
	stats.Unmatched = lo.Uniq(stats.Unmatched)
	stats.MissingLaps = lo.Map(
		lo.Filter(roster.Drivers(), func(d *model.Driver, _ int) bool {
			return d.StartTime.IsUnset() || d.StopTime.IsUnset()
		}),
		func(d *model.Driver, _ int) string { return d.Abbreviation })

	logger.Debug("lap times merged",
		log.Int("starts", stats.Starts),
		log.Int("stops", stats.Stops),
		log.Strings("unmatched", stats.Unmatched),
		log.Strings("missing", stats.MissingLaps))
	return stats, nil
}

//nolint:whitespace // can't make both editor and linter happy
func attach(
	logger *log.Logger,
	src *datasource.Source,
	file string,
	roster *model.Roster,
	stats *Stats,
	set target,
) (int, error) {
	lines, err := src.ReadLines(file)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, line := range lines {
		abbr, ts, err := ParseLine(line.Text)
		if err != nil {
			return 0, datasource.NewLineError(src.Path(file), line.Num, err, line.Text)
		}
		d, err := roster.Lookup(abbr)
		if err != nil {
			if !errors.Is(err, model.ErrDriverNotFound) {
				return 0, err
			}
			logger.Debug("ignoring unknown abbreviation",
				log.String("file", file),
				log.String("abbreviation", abbr))
			stats.Unmatched = append(stats.Unmatched, abbr)
			continue
		}
		set(d, ts)
		count++
	}
	return count, nil
}

// ParseLine splits a log line into the abbreviation (first 3 characters) and
// the timestamp, which is the second underscore separated field.
// Further fields are ignored.
func ParseLine(text string) (abbr string, ts time.Time, err error) {
	if len(text) < abbrLen {
		return "", time.Time{}, datasource.ErrMalformedLine
	}
	fields := strings.Split(text, "_")
	if len(fields) < 2 {
		return "", time.Time{}, datasource.ErrMalformedLine
	}
	ts, err = ParseTimeOfDay(strings.TrimSpace(fields[1]))
	if err != nil {
		return "", time.Time{}, err
	}
	return text[:abbrLen], ts, nil
}

// ParseTimeOfDay parses HH:MM:SS with optional fractional seconds.
// The date part of the result is the zero date for every input.
func ParseTimeOfDay(s string) (time.Time, error) {
	ts, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return time.Time{}, datasource.ErrInvalidTimestamp
	}
	return ts, nil
}
