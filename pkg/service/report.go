package service

import (
	"context"
	"io/fs"

	"github.com/mpapenbr/lapreport/log"
	"github.com/mpapenbr/lapreport/pkg/config"
	"github.com/mpapenbr/lapreport/pkg/datasource"
	"github.com/mpapenbr/lapreport/pkg/laptime"
	"github.com/mpapenbr/lapreport/pkg/model"
	"github.com/mpapenbr/lapreport/pkg/report"
	"github.com/mpapenbr/lapreport/pkg/roster"
)

type ReportService struct {
	cfg config.Config
	src *datasource.Source
}

type ReportServiceOption func(*ReportService)

// WithSource reads the data files from fsys instead of cfg.DataDir
func WithSource(fsys fs.FS) ReportServiceOption {
	return func(s *ReportService) {
		s.src = datasource.NewSource(fsys, s.cfg.DataDir)
	}
}

func NewReportService(cfg config.Config, opts ...ReportServiceOption) *ReportService {
	ret := &ReportService{cfg: cfg}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.src == nil {
		ret.src = datasource.NewDirSource(cfg.DataDir)
	}
	return ret
}

// LoadDrivers reads the data files and returns the drivers in roster order
// with computed best laps.
func (s *ReportService) LoadDrivers(ctx context.Context) ([]*model.Driver, error) {
	logger := log.GetFromContext(ctx).Named("service")

	r, err := roster.Load(ctx, s.src, s.cfg.AbbreviationsFile)
	if err != nil {
		return nil, err
	}
	stats, err := laptime.Merge(ctx, s.src, r, s.cfg.StartLogFile, s.cfg.EndLogFile)
	if err != nil {
		return nil, err
	}
	if len(stats.Unmatched) > 0 {
		logger.Info("log entries without roster entry were ignored",
			log.Strings("abbreviations", stats.Unmatched))
	}

	drivers := r.Drivers()
	for _, d := range report.ComputeBestLaps(drivers) {
		logger.Warn("driver has no lap time",
			log.String("abbreviation", d.Abbreviation),
			log.Bool("start", d.StartTime.IsValue()),
			log.Bool("stop", d.StopTime.IsValue()))
	}
	return drivers, nil
}

// BuildReport loads the drivers and renders them as configured.
func (s *ReportService) BuildReport(ctx context.Context) (string, error) {
	drivers, err := s.LoadDrivers(ctx)
	if err != nil {
		return "", err
	}
	log.GetFromContext(ctx).Named("service").Debug("rendering report",
		log.Int("drivers", len(drivers)),
		log.String("order", string(s.cfg.Order)),
		log.String("driver", s.cfg.Driver),
		log.String("format", string(s.cfg.Format)))

	if s.cfg.Format == config.FormatJSON {
		return report.RenderJSON(drivers, s.cfg.Ascending(), s.cfg.Driver)
	}
	return report.Render(drivers, s.cfg.Ascending(), s.cfg.Driver), nil
}
