package basedata

import (
	"embed"
	"fmt"
	"io/fs"
	"testing/fstest"
	"time"

	"github.com/aarondl/opt/omit"

	"github.com/mpapenbr/lapreport/pkg/model"
)

//go:embed monaco
var monaco embed.FS

// MonacoFS contains the data files of the Monaco 2018 qualifying (19 drivers).
func MonacoFS() fs.FS {
	sub, err := fs.Sub(monaco, "monaco")
	if err != nil {
		panic(err)
	}
	return sub
}

// MonacoFastest is the expected ascending order of MonacoFS.
var MonacoFastest = []string{
	"SVF", "VBM", "SVM", "KRF", "CLS", "SPF", "RGH", "PGS", "CSR", "NHR",
	"BHS", "MES", "LSW", "KMH", "FAM", "DRR", "SSW", "EOF", "LHM",
}

// SingleDriverFS contains one driver with a lap of 0:01:30.500
func SingleDriverFS() fstest.MapFS {
	return fstest.MapFS{
		"abbreviations.txt": {Data: []byte("SVF_Sebastian Vettel_Ferrari\n")},
		"start.log":         {Data: []byte("SVF_12:00:00.000\n")},
		"end.log":           {Data: []byte("SVF_12:01:30.500\n")},
	}
}

// RaceFS builds data files from the given lines.
func RaceFS(abbreviations, startLog, endLog string) fstest.MapFS {
	return fstest.MapFS{
		"abbreviations.txt": {Data: []byte(abbreviations)},
		"start.log":         {Data: []byte(startLog)},
		"end.log":           {Data: []byte(endLog)},
	}
}

func RefTime(hms string) time.Time {
	t, err := time.Parse("15:04:05", hms)
	if err != nil {
		panic(err)
	}
	return t
}

// TimedDriver creates a driver with a computed best lap of lap.
func TimedDriver(abbr, name, team string, lap time.Duration) *model.Driver {
	d := model.NewDriver(abbr, name, team)
	start := RefTime("12:00:00")
	d.StartTime = omit.From(start)
	d.StopTime = omit.From(start.Add(lap))
	d.ComputeBestLap()
	return d
}

// SyntheticDrivers creates n drivers with strictly increasing lap times,
// starting at 1:10.000 with a step of 100ms.
// Driver i (0-based) is named "Driver NN" with abbreviation "DNN".
func SyntheticDrivers(n int) []*model.Driver {
	ret := make([]*model.Driver, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, TimedDriver(
			fmt.Sprintf("D%02d", i+1),
			fmt.Sprintf("Driver %02d", i+1),
			fmt.Sprintf("Team %d", i/2+1),
			70*time.Second+time.Duration(i)*100*time.Millisecond,
		))
	}
	return ret
}
