package roster

import (
	"context"
	"strings"

	"github.com/mpapenbr/lapreport/log"
	"github.com/mpapenbr/lapreport/pkg/datasource"
	"github.com/mpapenbr/lapreport/pkg/model"
)

const fieldSep = "_"

// Load reads the abbreviation file and returns the drivers in file order.
// Each line has the form ABR_Full Name_Team Name.
func Load(ctx context.Context, src *datasource.Source, file string) (*model.Roster, error) {
	logger := log.GetFromContext(ctx).Named("roster")

	lines, err := src.ReadLines(file)
	if err != nil {
		return nil, err
	}
	r := model.NewRoster()
	for _, line := range lines {
		d, err := parseLine(line.Text)
		if err != nil {
			return nil, datasource.NewLineError(src.Path(file), line.Num, err, line.Text)
		}
		if !r.Add(d) {
			logger.Warn("duplicate abbreviation, lookups use the first entry",
				log.String("abbreviation", d.Abbreviation),
				log.Int("line", line.Num))
		}
	}
	logger.Debug("roster loaded",
		log.String("file", src.Path(file)),
		log.Int("drivers", r.Len()))
	return r, nil
}

func parseLine(text string) (*model.Driver, error) {
	fields := strings.Split(text, fieldSep)
	if len(fields) != 3 {
		return nil, datasource.ErrMalformedLine
	}
	abbr := strings.TrimSpace(fields[0])
	name := strings.TrimSpace(fields[1])
	team := strings.TrimSpace(fields[2])
	if abbr == "" || name == "" {
		return nil, datasource.ErrMalformedLine
	}
	return model.NewDriver(abbr, name, team), nil
}
