package config

// NYC bounding box used by the geographic filter. Process-wide constant,
// inclusive on all four limits. This is a rectangle, not a borough polygon.
const (
	LatMin = 40.4
	LatMax = 41.1
	LonMin = -74.5
	LonMax = -72.9
)

// Recognized column names of the NYC TLC trip schema.
const (
	ColPickupTime  = "tpep_pickup_datetime"
	ColDropoffTime = "tpep_dropoff_datetime"
	ColPickupLat   = "pickup_latitude"
	ColPickupLon   = "pickup_longitude"
	ColDropoffLat  = "dropoff_latitude"
	ColDropoffLon  = "dropoff_longitude"
	ColTotalAmount = "total_amount"
	ColDistance    = "trip_distance"

	// Legacy rate-code spelling and its canonical form.
	ColRateCodeLegacy    = "RatecodeID"
	ColRateCodeCanonical = "RateCodeID"
)

// Columns derived by the feature stage.
const (
	ColPickupHour    = "pickup_hour"
	ColPickupDate    = "pickup_date"
	ColPickupMonth   = "pickup_month"
	ColPickupWeekday = "pickup_weekday"
	ColTripDuration  = "trip_duration_min"
)

// Well-known artifact file names.
const (
	CuratedCSV         = "nyc_taxi_curated.csv"
	HourlyTripsCSV     = "hourly_trips.csv"
	MonthlyRevenueCSV  = "monthly_revenue.csv"
	FareStatsCSV       = "fare_stats.csv"
	CurationSummaryTXT = "curation_summary.txt"
)
