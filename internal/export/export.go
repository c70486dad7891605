package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/solver"
)

type ExportData struct {
	Params     reactor.Params `json:"params"`
	StepCount  int            `json:"step_count"`
	Times      []float64      `json:"times"`
	Analytical []float64      `json:"analytical"`
	EulerTimes []float64      `json:"euler_times"`
	Euler      []float64      `json:"euler"`
}

func newExportData(sol *solver.Solution) ExportData {
	return ExportData{
		Params:     sol.Params,
		StepCount:  sol.StepCount(),
		Times:      sol.Times,
		Analytical: sol.Analytical,
		EulerTimes: sol.EulerTimes,
		Euler:      sol.Euler,
	}
}

// WriteJSON encodes sol as indented JSON.
func WriteJSON(w io.Writer, sol *solver.Solution) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(sol))
}

func ExportJSON(path string, sol *solver.Solution) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, sol)
}

// WriteCSV writes one row per analytical sample. The Euler columns are
// filled on the rows that fall inside the Euler sequence and left blank
// after it ends.
func WriteCSV(w io.Writer, sol *solver.Solution) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"i", "time", "analytical", "euler_time", "euler"}); err != nil {
		return err
	}

	rows := len(sol.Times)
	if len(sol.Euler) > rows {
		rows = len(sol.Euler)
	}

	for i := 0; i < rows; i++ {
		rec := []string{strconv.Itoa(i), "", "", "", ""}
		if i < len(sol.Times) {
			rec[1] = formatFloat(sol.Times[i])
			rec[2] = formatFloat(sol.Analytical[i])
		}
		if i < len(sol.Euler) {
			rec[3] = formatFloat(sol.EulerTimes[i])
			rec[4] = formatFloat(sol.Euler[i])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
