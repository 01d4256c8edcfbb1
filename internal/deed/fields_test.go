package deed

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nicPattern        = regexp.MustCompile(`^(5[0-9]|[6-9][0-9])(00[1-9]|0[1-9][0-9]|[12][0-9]{2}|3[0-5][0-9]|36[0-6])[1-9][0-9]{3}[VX]$`)
	deedNumberPattern = regexp.MustCompile(`^D/(199[0-9]|20[01][0-9]|202[0-4])/[0-9]{5}$`)
	surveyPlanPattern = regexp.MustCompile(`^(SP|LR|PR)/([1-9]|1[0-9]|2[0-5])/[0-9]{4,5}$`)
	lotPattern        = regexp.MustCompile(`^LOT-[0-9]{1,3}$`)
	extentPattern     = regexp.MustCompile(`^(\d+)A ([0-3])R ([0-3]?\d)P$`)
	addressPattern    = regexp.MustCompile(`^[0-9]{1,3}, [A-Za-z ]+, Kandy$`)
)

const samples = 2000

func TestFieldFormats(t *testing.T) {
	r := NewSeededRand(7)

	t.Run("NIC", func(t *testing.T) {
		for range samples {
			nic := NIC(r)
			require.Regexp(t, nicPattern, nic)
		}
	})

	t.Run("DeedNumber", func(t *testing.T) {
		for range samples {
			require.Regexp(t, deedNumberPattern, DeedNumber(r))
		}
	})

	t.Run("SurveyPlan", func(t *testing.T) {
		for range samples {
			require.Regexp(t, surveyPlanPattern, SurveyPlan(r))
		}
	})

	t.Run("LotNumber", func(t *testing.T) {
		for range samples {
			lot := LotNumber(r)
			require.Regexp(t, lotPattern, lot)
			n, err := strconv.Atoi(strings.TrimPrefix(lot, "LOT-"))
			require.NoError(t, err)
			require.True(t, n >= 1 && n <= 500, "lot %d out of range", n)
		}
	})

	t.Run("Extent", func(t *testing.T) {
		for range samples {
			m := extentPattern.FindStringSubmatch(Extent(r))
			require.NotNil(t, m)
			acres, _ := strconv.Atoi(m[1])
			perches, _ := strconv.Atoi(m[3])
			assert.LessOrEqual(t, acres, 10)
			assert.LessOrEqual(t, perches, 39)
		}
	})

	t.Run("Address", func(t *testing.T) {
		for range samples {
			require.Regexp(t, addressPattern, Address(r, "Kandy"))
		}
	})

	t.Run("Name", func(t *testing.T) {
		for range samples {
			name := Name(r)
			first, last, ok := strings.Cut(name, " ")
			require.True(t, ok)
			assert.Contains(t, firstNames, first)
			assert.Contains(t, lastNames, last)
		}
	})

	t.Run("Boundaries", func(t *testing.T) {
		for range samples {
			b := NewBoundaries(r)
			assert.True(t, strings.HasPrefix(b.North, "Property of "))
			assert.True(t, strings.HasPrefix(b.South, "Property of "))
			assert.True(t, contains(eastBoundaries, b.East) || strings.HasPrefix(b.East, "Property of "), b.East)
			assert.True(t, contains(westBoundaries, b.West) || strings.HasPrefix(b.West, "Property of "), b.West)
		}
	})
}

func TestEncumbranceCoversAllOutcomes(t *testing.T) {
	r := NewSeededRand(11)
	seen := map[string]int{}
	for range samples {
		e := Encumbrance(r)
		if e == nil {
			seen["<nil>"]++
			continue
		}
		seen[*e]++
	}

	assert.Len(t, seen, 4)
	for outcome, n := range seen {
		// Uniform over 4 outcomes: expect ~500 each.
		assert.InDelta(t, samples/4, n, 150, "outcome %s", outcome)
	}
}

func TestVerificationStatusRatio(t *testing.T) {
	r := NewSeededRand(13)
	verified := 0
	for range samples {
		switch VerificationStatus(r) {
		case "Verified":
			verified++
		case "Pending":
		default:
			t.Fatal("unexpected verification status")
		}
	}
	assert.InDelta(t, float64(samples)*2/3, float64(verified), 150)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       int
	}{
		{"common year", 2023, 2023, 365},
		{"leap year", 2024, 2024, 366},
		{"century not leap", 1900, 1900, 365},
		{"quad century leap", 2000, 2000, 366},
		{"registration range", 1990, 2024, 35*365 + 9},
		{"scan range", 2020, 2024, 5*365 + 2},
		{"whole calendar", 1, 9999, 3652059},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.start, tt.end))
		})
	}
}

func TestDate(t *testing.T) {
	t.Run("WideRangeReachesLastYears", func(t *testing.T) {
		r := NewSeededRand(19)
		latest := ""
		for range samples {
			d := Date(r, 1, 9999)
			assert.True(t, d >= "0001-01-01" && d <= "9999-12-31", d)
			if d > latest {
				latest = d
			}
		}
		assert.True(t, latest >= "9000-01-01", "latest sampled date %s", latest)
	})

	t.Run("WithinRange", func(t *testing.T) {
		r := NewSeededRand(17)
		for range samples {
			d := Date(r, 1990, 2024)
			parsed, err := time.Parse(DateLayout, d)
			require.NoError(t, err)
			assert.Equal(t, d, parsed.Format(DateLayout))
			assert.True(t, d >= "1990-01-01" && d <= "2024-12-31", d)
		}
	})

	t.Run("SingleYearReachesBothEnds", func(t *testing.T) {
		r := NewSeededRand(19)
		seen := map[string]bool{}
		for range 20000 {
			seen[Date(r, 2024, 2024)] = true
		}
		assert.Len(t, seen, 366)
		assert.True(t, seen["2024-01-01"])
		assert.True(t, seen["2024-02-29"])
		assert.True(t, seen["2024-12-31"])
	})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
