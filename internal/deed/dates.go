package deed

import (
	"math/rand/v2"
	"time"
)

// DateLayout is the ISO calendar date layout used for every date field
const DateLayout = "2006-01-02"

// TimestampLayout matches a naive local ISO-8601 timestamp with microseconds
const TimestampLayout = "2006-01-02T15:04:05.000000"

const secondsPerDay = 24 * 60 * 60

// DaysBetween counts calendar days from Jan 1 of startYear through Dec 31
// of endYear, both inclusive. Spans are taken from Unix seconds since a
// time.Duration cannot hold more than about 292 years.
func DaysBetween(startYear, endYear int) int {
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	return int((end.Unix()-start.Unix())/secondsPerDay) + 1
}

// Date returns a uniformly sampled date in [startYear-01-01, endYear-12-31].
// Work is done in UTC so DST shifts never move a day boundary.
func Date(r *rand.Rand, startYear, endYear int) string {
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := r.IntN(DaysBetween(startYear, endYear))
	return start.AddDate(0, 0, offset).Format(DateLayout)
}
