package services

import (
	"iter"
	"slices"
	"sort"
	"time"

	"airmetr/constants"
	"airmetr/errors"
	"airmetr/models"
)

const secondsPerDay = 24 * 60 * 60

// Stay is the billing outcome of a date range: whole nights and their price.
type Stay struct {
	TotalDays  int     `json:"totalDays"`
	TotalPrice float64 `json:"totalPrice"`
}

// CivilDate drops the clock and zone of t, keeping its calendar date, and
// returns that date at UTC midnight.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return CivilDate(t), nil
}

func FormatDate(t time.Time) string {
	return CivilDate(t).Format(constants.DateLayout)
}

// DaysBetween returns the number of calendar days from start to end.
// Both sides are reduced to UTC civil dates first, so the difference is always
// a whole multiple of a day. Counted in Unix seconds, since a time.Duration
// saturates past about 292 years.
func DaysBetween(start, end time.Time) int {
	return int((CivilDate(end).Unix() - CivilDate(start).Unix()) / secondsPerDay)
}

// rangesOverlap uses inclusive bounds on both ends: a stay ending on day N
// conflicts with one starting on day N.
func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !CivilDate(aStart).After(CivilDate(bEnd)) && !CivilDate(aEnd).Before(CivilDate(bStart))
}

// CheckOverlap reports whether [candidateStart, candidateEnd] shares at least
// one calendar date with any reservation in existing. A reservation whose ID
// equals excludeID is skipped; pass 0 to compare against all of them.
func CheckOverlap(candidateStart, candidateEnd time.Time, existing []models.Reservation, excludeID uint) bool {
	return firstConflict(candidateStart, candidateEnd, existing, excludeID) != nil
}

func firstConflict(candidateStart, candidateEnd time.Time, existing []models.Reservation, excludeID uint) *models.Reservation {
	for i := range existing {
		r := &existing[i]
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if rangesOverlap(candidateStart, candidateEnd, r.StartDate, r.EndDate) {
			return r
		}
	}
	return nil
}

// UnavailableDates yields every date covered by a reservation, start and end
// included, as YYYY-MM-DD. Dates come out once each and in ascending order,
// whatever the order of existing.
func UnavailableDates(existing []models.Reservation) iter.Seq[string] {
	ranges := make([][2]time.Time, 0, len(existing))
	for _, r := range existing {
		ranges = append(ranges, [2]time.Time{CivilDate(r.StartDate), CivilDate(r.EndDate)})
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i][0].Before(ranges[j][0])
	})

	return func(yield func(string) bool) {
		// covered is the last date already yielded
		var covered time.Time
		started := false
		for _, rg := range ranges {
			from, to := rg[0], rg[1]
			if started && !from.After(covered) {
				from = covered.AddDate(0, 0, 1)
			}
			for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
				if !yield(d.Format(constants.DateLayout)) {
					return
				}
				covered = d
				started = true
			}
		}
	}
}

// UnavailableDateList collects UnavailableDates. The result is never nil.
func UnavailableDateList(existing []models.Reservation) []string {
	dates := slices.Collect(UnavailableDates(existing))
	if dates == nil {
		return []string{}
	}
	return dates
}

// ComputeStay prices a stay from start to end at nightlyPrice per night.
func ComputeStay(start, end time.Time, nightlyPrice float64) (Stay, error) {
	totalDays := DaysBetween(start, end)
	if totalDays <= 0 {
		return Stay{}, errors.InvalidRange("The end date must be after the start date")
	}
	if nightlyPrice < 0 {
		return Stay{}, errors.Validation(errors.ErrCodeInvalidAmount, "The nightly price must not be negative")
	}
	return Stay{
		TotalDays:  totalDays,
		TotalPrice: float64(totalDays) * nightlyPrice,
	}, nil
}

// OverlappingPairs returns every pair of distinct reservations in rs that
// conflict with each other. Used by the integrity audit.
func OverlappingPairs(rs []models.Reservation) [][2]models.Reservation {
	sorted := slices.Clone(rs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	var pairs [][2]models.Reservation
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			// sorted by start: once j starts after i ends, nothing later can overlap i
			if CivilDate(sorted[j].StartDate).After(CivilDate(sorted[i].EndDate)) {
				break
			}
			if rangesOverlap(sorted[i].StartDate, sorted[i].EndDate, sorted[j].StartDate, sorted[j].EndDate) {
				pairs = append(pairs, [2]models.Reservation{sorted[i], sorted[j]})
			}
		}
	}
	return pairs
}
