package dims

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxicli/internal/errors"
	"taxicli/internal/exporter"
)

func writeMonthly(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monthly_revenue.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetectDateRange(t *testing.T) {
	path := writeMonthly(t, "pickup_month,total_amount\n2024-02,100\n2024-01,50\n2024-03,75\n")

	start, end, err := DetectDateRange(path)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", start.Format("2006-01-02"))
	// range extends to the last day of the latest month
	assert.Equal(t, "2024-03-31", end.Format("2006-01-02"))
}

func TestDetectDateRangeMissingFile(t *testing.T) {
	_, _, err := DetectDateRange(filepath.Join(t.TempDir(), "absent.csv"))

	var cfgErr *errors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestDetectDateRangeMissingColumn(t *testing.T) {
	path := writeMonthly(t, "month,total_amount\n2024-01,50\n")

	_, _, err := DetectDateRange(path)

	var cfgErr *errors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "pickup_month")
}

func TestDetectDateRangeNoRows(t *testing.T) {
	path := writeMonthly(t, "pickup_month,total_amount\n")

	_, _, err := DetectDateRange(path)

	var cfgErr *errors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func dimTable(t *testing.T, tables []exporter.Table, name string) exporter.Table {
	t.Helper()
	for _, tb := range tables {
		if tb.Name == name {
			return tb
		}
	}
	t.Fatalf("table %s not built", name)
	return exporter.Table{}
}

func TestBuildDimDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	tables := NewGenerator(nil).Build(start, end)
	require.Len(t, tables, 4)

	date := dimTable(t, tables, "dim_date")
	require.Len(t, date.Records, 7)

	// 2024-01-01 is a Monday
	assert.Equal(t,
		[]string{"2024-01-01", "2024", "1", "Jan", "2024-01", "1", "Mon", "0", "Weekday"},
		date.Records[0])
	// 2024-01-06 is a Saturday
	assert.Equal(t,
		[]string{"2024-01-06", "2024", "1", "Jan", "2024-01", "6", "Sat", "1", "Weekend"},
		date.Records[5])
	// 2024-01-07 is a Sunday, WeekdayNum 7
	assert.Equal(t, "7", date.Records[6][5])
}

func TestBuildDimHour(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tables := NewGenerator(nil).Build(start, start)

	hour := dimTable(t, tables, "dim_hour")
	require.Len(t, hour.Records, 24)
	assert.Equal(t, []string{"0", "00:00"}, hour.Records[0])
	assert.Equal(t, []string{"23", "23:00"}, hour.Records[23])
}

func TestBuildDimWeekday(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tables := NewGenerator(nil).Build(start, start)

	weekday := dimTable(t, tables, "dim_weekday")
	require.Len(t, weekday.Records, 7)
	assert.Equal(t, []string{"1", "Mon", "0", "1"}, weekday.Records[0])
	assert.Equal(t, []string{"6", "Sat", "1", "6"}, weekday.Records[5])
	assert.Equal(t, []string{"7", "Sun", "1", "7"}, weekday.Records[6])
}

func TestBuildDimDistanceBucket(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tables := NewGenerator(nil).Build(start, start)

	buckets := dimTable(t, tables, "dim_distance_bucket")
	require.Len(t, buckets.Records, 7)
	assert.Equal(t, []string{"0", "1", "0-1"}, buckets.Records[0])
	assert.Equal(t, []string{"50", "100", "50-100"}, buckets.Records[6])
}
