package config

import (
	"errors"
	"fmt"
)

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DataDir      string // directory containing the data files
	Descending   bool   // if true, the report lists the slowest driver first
	Ascending    bool   // explicit request for the default order
	Driver       string // name (or part of it) of the driver to report
	OutputFormat string // report output format (text, json)
	LogLevel     string // sets the log level (zap log level values)
	LogFormat    string // text vs json
	LogFilter    string // zapfilter rules
	LogConfig    string // path to log config file
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

const (
	DefaultDataDir           = "data"
	DefaultAbbreviationsFile = "abbreviations.txt"
	DefaultStartLogFile      = "start.log"
	DefaultEndLogFile        = "end.log"
)

var (
	ErrInvalidOrder  = errors.New("invalid order")
	ErrInvalidFormat = errors.New("invalid format")
	ErrMissingValue  = errors.New("missing value")
)

// Config holds the configuration values which are used by the application.
// It is passed by value and not changed once created.
type Config struct {
	DataDir           string
	AbbreviationsFile string
	StartLogFile      string
	EndLogFile        string
	Order             Order
	Driver            string // empty means no filter
	Format            Format
}

type Option func(*Config)

func WithDataDir(dir string) Option {
	return func(c *Config) { c.DataDir = dir }
}

func WithOrder(o Order) Option {
	return func(c *Config) { c.Order = o }
}

func WithDriver(name string) Option {
	return func(c *Config) { c.Driver = name }
}

func WithFormat(f Format) Option {
	return func(c *Config) { c.Format = f }
}

func WithFileNames(abbreviations, startLog, endLog string) Option {
	return func(c *Config) {
		c.AbbreviationsFile = abbreviations
		c.StartLogFile = startLog
		c.EndLogFile = endLog
	}
}

func New(opts ...Option) Config {
	c := Config{
		DataDir:           DefaultDataDir,
		AbbreviationsFile: DefaultAbbreviationsFile,
		StartLogFile:      DefaultStartLogFile,
		EndLogFile:        DefaultEndLogFile,
		Order:             OrderAsc,
		Format:            FormatText,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FromFlags builds a validated Config from the values resolved by the CLI.
func FromFlags() (Config, error) {
	order := OrderAsc
	if Descending && !Ascending {
		order = OrderDesc
	}
	format := Format(OutputFormat)
	if format == "" {
		format = FormatText
	}
	c := New(
		WithDataDir(DataDir),
		WithOrder(order),
		WithDriver(Driver),
		WithFormat(format),
	)
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.Order {
	case OrderAsc, OrderDesc:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrder, c.Order)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	for _, v := range []struct{ name, value string }{
		{"data dir", c.DataDir},
		{"abbreviations file", c.AbbreviationsFile},
		{"start log file", c.StartLogFile},
		{"end log file", c.EndLogFile},
	} {
		if v.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingValue, v.name)
		}
	}
	return nil
}

func (c Config) Ascending() bool {
	return c.Order != OrderDesc
}
