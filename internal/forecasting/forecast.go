package forecasting

import (
	"encoding/csv"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"

	"finmark/internal/dataprocessing"
	"finmark/internal/errors"
)

// DailyPoint is one observed day of total sales
type DailyPoint struct {
	Date       time.Time
	TotalSales float64
}

// ForecastPoint is one modelled day: the fitted or predicted value and its
// trend and weekly components.
type ForecastPoint struct {
	Date      time.Time
	Predicted float64
	Trend     float64
	Weekly    float64
}

// Aggregate reduces cleaned records to one point per date. total_sales
// repeats across the regions of a day, so the first value per date wins.
// The result is sorted by date.
func Aggregate(records []dataprocessing.Record) []DailyPoint {
	seen := make(map[time.Time]bool)
	var points []DailyPoint

	for _, r := range records {
		if seen[r.Date] {
			continue
		}
		seen[r.Date] = true
		points = append(points, DailyPoint{Date: r.Date, TotalSales: r.TotalSales})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}

// LoadDailyHistory reads the cleaned table from disk and aggregates it to
// daily points. Only the date and total_sales columns are consumed.
func LoadDailyHistory(path string) ([]DailyPoint, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("cleaned data file does not exist", err).
				WithContext("path", path)
		}
		return nil, errors.NewStorageError("failed to open cleaned data file", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read cleaned data file", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	dateIdx, salesIdx := -1, -1
	for i, name := range rows[0] {
		switch name {
		case dataprocessing.ColDate:
			dateIdx = i
		case dataprocessing.ColTotalSales:
			salesIdx = i
		}
	}
	if dateIdx < 0 || salesIdx < 0 {
		return nil, errors.NewValidationError("cleaned data file is missing date or total_sales column", nil).
			WithContext("path", path)
	}

	var records []dataprocessing.Record
	for _, row := range rows[1:] {
		if dateIdx >= len(row) || salesIdx >= len(row) {
			continue
		}
		date, err := time.Parse(dataprocessing.DateFormat, row[dateIdx])
		if err != nil {
			continue
		}
		sales, err := strconv.ParseFloat(row[salesIdx], 64)
		if err != nil {
			continue
		}
		records = append(records, dataprocessing.Record{Date: date, TotalSales: sales})
	}

	return Aggregate(records), nil
}

// Model is a fitted trend + weekly seasonality sales model
type Model struct {
	intercept float64
	slope     float64
	// weekly holds the seasonal offset per weekday, indexed by time.Weekday
	weekly [7]float64
	// origin anchors the trend's time axis
	origin  time.Time
	history []DailyPoint
}

// minSeasonalPoints is the observation count below which the weekly
// component is not identifiable and the fit falls back to trend only.
const minSeasonalPoints = 14

// Fit estimates the model from daily history by ordinary least squares.
// With fewer than two points there is nothing to extrapolate and an error
// is returned.
func Fit(points []DailyPoint) (*Model, error) {
	if len(points) < 2 {
		return nil, errors.NewValidationError("not enough history to fit a forecast model", nil).
			WithContext("points", len(points))
	}

	m := &Model{
		origin:  points[0].Date,
		history: append([]DailyPoint(nil), points...),
	}

	seasonal := len(points) >= minSeasonalPoints

	// Design matrix: intercept, day index, and six weekday dummies with
	// Sunday as the baseline to keep the matrix full rank.
	cols := 2
	if seasonal {
		cols = 8
	}

	x := mat.NewDense(len(points), cols, nil)
	y := mat.NewVecDense(len(points), nil)

	for i, p := range points {
		t := p.Date.Sub(m.origin).Hours() / 24
		x.Set(i, 0, 1)
		x.Set(i, 1, t)
		if seasonal {
			if wd := int(p.Date.Weekday()); wd > 0 {
				x.Set(i, 1+wd, 1)
			}
		}
		y.SetVec(i, p.TotalSales)
	}

	var qr mat.QR
	qr.Factorize(x)

	beta := mat.NewDense(cols, 1, nil)
	if err := qr.SolveTo(beta, false, y); err != nil {
		return nil, errors.NewValidationError("failed to solve least squares system", err)
	}

	m.intercept = beta.At(0, 0)
	m.slope = beta.At(1, 0)
	if seasonal {
		for wd := 1; wd < 7; wd++ {
			m.weekly[wd] = beta.At(1+wd, 0)
		}
	}

	slog.Debug("fitted forecast model",
		slog.Int("points", len(points)),
		slog.Bool("seasonal", seasonal),
		slog.Float64("slope", m.slope))

	return m, nil
}

// At evaluates the model for a single date
func (m *Model) At(date time.Time) ForecastPoint {
	t := date.Sub(m.origin).Hours() / 24
	trend := m.intercept + m.slope*t
	weekly := m.weekly[int(date.Weekday())]
	return ForecastPoint{
		Date:      date,
		Predicted: trend + weekly,
		Trend:     trend,
		Weekly:    weekly,
	}
}

// Forecast returns the fitted history followed by horizon future days
func (m *Model) Forecast(horizon int) []ForecastPoint {
	last := m.history[len(m.history)-1].Date

	out := make([]ForecastPoint, 0, len(m.history)+horizon)
	for _, p := range m.history {
		out = append(out, m.At(p.Date))
	}
	for i := 1; i <= horizon; i++ {
		out = append(out, m.At(last.AddDate(0, 0, i)))
	}
	return out
}

// History returns the observed points the model was fitted on
func (m *Model) History() []DailyPoint {
	return m.history
}

// WeeklyProfile returns the seasonal offset per weekday
func (m *Model) WeeklyProfile() [7]float64 {
	return m.weekly
}
