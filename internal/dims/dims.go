// Package dims generates the dimension tables that accompany the
// aggregate outputs in a BI model: a daily calendar, the 24 hours, the
// seven weekdays, and the distance buckets. The calendar range is
// detected from the monthly revenue artifact so the dimensions always
// cover the fact data.
package dims

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"taxicli/internal/aggregate"
	"taxicli/internal/errors"
	"taxicli/internal/exporter"
)

// DetectDateRange reads the monthly revenue CSV and returns the first day
// of its earliest month and the last day of its latest month. The file
// must exist, carry a pickup_month column, and hold at least one row;
// otherwise a ConfigurationError is returned before anything is written.
func DetectDateRange(path string) (time.Time, time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, time.Time{}, errors.NewConfiguration(
				fmt.Sprintf("monthly revenue CSV not found: %s", path))
		}
		return time.Time{}, time.Time{}, fmt.Errorf("failed to open monthly CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewParsingError("failed to read monthly CSV", err)
	}
	if len(records) == 0 {
		return time.Time{}, time.Time{}, errors.NewConfiguration("monthly revenue CSV is empty")
	}

	monthCol := -1
	for i, name := range records[0] {
		if name == "pickup_month" {
			monthCol = i
			break
		}
	}
	if monthCol < 0 {
		return time.Time{}, time.Time{}, errors.NewConfiguration(
			"monthly revenue CSV has no pickup_month column")
	}

	var minM, maxM string
	for _, rec := range records[1:] {
		if monthCol >= len(rec) || rec[monthCol] == "" {
			continue
		}
		m := rec[monthCol]
		// YYYY-MM keys order lexicographically
		if minM == "" || m < minM {
			minM = m
		}
		if m > maxM {
			maxM = m
		}
	}
	if minM == "" {
		return time.Time{}, time.Time{}, errors.NewConfiguration("monthly revenue CSV has no rows")
	}

	start, err := time.Parse("2006-01", minM)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewParsingError(
			fmt.Sprintf("invalid pickup_month value %q", minM), err)
	}
	last, err := time.Parse("2006-01", maxM)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewParsingError(
			fmt.Sprintf("invalid pickup_month value %q", maxM), err)
	}
	end := last.AddDate(0, 1, -1) // last day of the max month
	return start, end, nil
}

// Generator builds the dimension tables.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a generator. A nil logger falls back to the default.
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger}
}

// Build produces all four dimension tables for the given calendar range.
func (g *Generator) Build(start, end time.Time) []exporter.Table {
	tables := []exporter.Table{
		g.dimDate(start, end),
		dimHour(),
		dimWeekday(),
		dimDistanceBucket(),
	}
	g.logger.Info("Dimension tables built",
		slog.String("start", start.Format("2006-01-02")),
		slog.String("end", end.Format("2006-01-02")))
	return tables
}

// dimDate is a daily calendar covering [start, end]. WeekdayNum runs
// Monday=1 through Sunday=7 to match DAX WEEKDAY(,2).
func (g *Generator) dimDate(start, end time.Time) exporter.Table {
	var records [][]string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weekdayMon1 := (int(d.Weekday())+6)%7 + 1
		isWeekend := "0"
		dayType := "Weekday"
		if weekdayMon1 >= 6 {
			isWeekend = "1"
			dayType = "Weekend"
		}
		records = append(records, []string{
			d.Format("2006-01-02"),
			strconv.Itoa(d.Year()),
			strconv.Itoa(int(d.Month())),
			d.Format("Jan"),
			d.Format("2006-01"),
			strconv.Itoa(weekdayMon1),
			d.Format("Mon"),
			isWeekend,
			dayType,
		})
	}
	return exporter.Table{
		Name: "dim_date",
		Headers: []string{
			"Date", "Year", "MonthNum", "MonthName", "YearMonth",
			"WeekdayNum", "WeekdayName", "IsWeekend", "DayType",
		},
		Records: records,
	}
}

func dimHour() exporter.Table {
	records := make([][]string, 0, 24)
	for h := 0; h < 24; h++ {
		records = append(records, []string{strconv.Itoa(h), fmt.Sprintf("%02d:00", h)})
	}
	return exporter.Table{
		Name:    "dim_hour",
		Headers: []string{"Hour", "HourLabel"},
		Records: records,
	}
}

func dimWeekday() exporter.Table {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	records := make([][]string, 0, 7)
	for n := 1; n <= 7; n++ {
		isWeekend := "0"
		if n >= 6 {
			isWeekend = "1"
		}
		records = append(records, []string{strconv.Itoa(n), names[n-1], isWeekend, strconv.Itoa(n)})
	}
	return exporter.Table{
		Name:    "dim_weekday",
		Headers: []string{"WeekdayNum", "WeekdayName", "IsWeekend", "SortOrder"},
		Records: records,
	}
}

// dimDistanceBucket mirrors the buckets the aggregate builder uses so the
// two stay aligned.
func dimDistanceBucket() exporter.Table {
	records := make([][]string, 0, len(aggregate.DistanceBuckets))
	for _, b := range aggregate.DistanceBuckets {
		records = append(records, []string{
			strconv.Itoa(int(b.Min)),
			strconv.Itoa(int(b.Max)),
			b.Label,
		})
	}
	return exporter.Table{
		Name:    "dim_distance_bucket",
		Headers: []string{"BucketMinIncl", "BucketMaxExcl", "Label"},
		Records: records,
	}
}
