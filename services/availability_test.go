package services

import (
	"slices"
	"testing"
	"time"
	_ "time/tzdata"

	"airmetr/errors"
	"airmetr/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func reservation(t *testing.T, id uint, start, end string) models.Reservation {
	t.Helper()
	return models.Reservation{ID: id, PropertyID: 1, StartDate: mustDate(t, start), EndDate: mustDate(t, end)}
}

func TestComputeStay(t *testing.T) {
	stay, err := ComputeStay(mustDate(t, "2024-06-01"), mustDate(t, "2024-06-04"), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stay.TotalDays != 3 || stay.TotalPrice != 3000 {
		t.Fatalf("expected 3 days / 3000, got %d / %v", stay.TotalDays, stay.TotalPrice)
	}

	again, _ := ComputeStay(mustDate(t, "2024-06-01"), mustDate(t, "2024-06-04"), 1000)
	if again != stay {
		t.Fatalf("expected identical result on repeat, got %+v and %+v", stay, again)
	}
}

func TestComputeStayRejectsEmptyOrReversedRange(t *testing.T) {
	cases := []struct{ start, end string }{
		{"2024-06-04", "2024-06-04"},
		{"2024-06-05", "2024-06-04"},
	}
	for _, tc := range cases {
		_, err := ComputeStay(mustDate(t, tc.start), mustDate(t, tc.end), 1000)
		if !errors.Is(err, errors.ErrInvalidRange) {
			t.Fatalf("%s -> %s: expected ErrInvalidRange, got %v", tc.start, tc.end, err)
		}
	}
}

func TestComputeStayRejectsNegativePrice(t *testing.T) {
	_, err := ComputeStay(mustDate(t, "2024-06-01"), mustDate(t, "2024-06-02"), -1)
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestComputeStayOverCenturies(t *testing.T) {
	stay, err := ComputeStay(mustDate(t, "1700-01-01"), mustDate(t, "2100-01-01"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 400 Gregorian years are exactly 146097 days
	if stay.TotalDays != 146097 || stay.TotalPrice != 146097 {
		t.Fatalf("expected 146097 days, got %+v", stay)
	}
	if got := DaysBetween(mustDate(t, "0001-01-01"), mustDate(t, "9999-12-31")); got != 3652058 {
		t.Fatalf("expected 3652058 days, got %d", got)
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	oslo, err := time.LoadLocation("Europe/Oslo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// clocks go forward on 2024-03-31 in Oslo, so this span is only 47h of wall time
	start := time.Date(2024, 3, 30, 0, 0, 0, 0, oslo)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, oslo)
	if got := DaysBetween(start, end); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}

	// late evening times keep their calendar date
	start = time.Date(2024, 10, 26, 23, 30, 0, 0, oslo)
	end = time.Date(2024, 10, 28, 0, 15, 0, 0, oslo)
	if got := DaysBetween(start, end); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
}

func TestCheckOverlapInclusiveBoundary(t *testing.T) {
	existing := []models.Reservation{reservation(t, 1, "2024-06-10", "2024-06-14")}

	if !CheckOverlap(mustDate(t, "2024-06-14"), mustDate(t, "2024-06-18"), existing, 0) {
		t.Fatal("expected 14-18 to conflict with 10-14")
	}
	if CheckOverlap(mustDate(t, "2024-06-15"), mustDate(t, "2024-06-18"), existing, 0) {
		t.Fatal("expected 15-18 to be free")
	}
	if !CheckOverlap(mustDate(t, "2024-06-05"), mustDate(t, "2024-06-10"), existing, 0) {
		t.Fatal("expected 05-10 to conflict with 10-14")
	}
	if !CheckOverlap(mustDate(t, "2024-06-01"), mustDate(t, "2024-06-30"), existing, 0) {
		t.Fatal("expected an enclosing range to conflict")
	}
}

func TestCheckOverlapExcludesOwnReservation(t *testing.T) {
	existing := []models.Reservation{
		reservation(t, 7, "2024-06-10", "2024-06-14"),
		reservation(t, 8, "2024-06-20", "2024-06-22"),
	}
	if CheckOverlap(mustDate(t, "2024-06-10"), mustDate(t, "2024-06-14"), existing, 7) {
		t.Fatal("a reservation must not conflict with itself")
	}
	if !CheckOverlap(mustDate(t, "2024-06-10"), mustDate(t, "2024-06-20"), existing, 7) {
		t.Fatal("expected conflict with reservation 8")
	}
	if CheckOverlap(mustDate(t, "2024-06-01"), mustDate(t, "2024-06-02"), nil, 0) {
		t.Fatal("expected no conflict with no reservations")
	}
}

func TestUnavailableDates(t *testing.T) {
	existing := []models.Reservation{
		reservation(t, 1, "2024-06-10", "2024-06-12"),
		reservation(t, 2, "2024-06-01", "2024-06-05"),
	}
	want := []string{
		"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04", "2024-06-05",
		"2024-06-10", "2024-06-11", "2024-06-12",
	}

	got := UnavailableDateList(existing)
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	slices.Reverse(existing)
	if again := UnavailableDateList(existing); !slices.Equal(again, want) {
		t.Fatalf("expected order-independent result %v, got %v", want, again)
	}
}

func TestUnavailableDatesMergesOverlappingRanges(t *testing.T) {
	existing := []models.Reservation{
		reservation(t, 1, "2024-06-01", "2024-06-04"),
		reservation(t, 2, "2024-06-03", "2024-06-06"),
		reservation(t, 3, "2024-06-02", "2024-06-03"),
	}
	want := []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06"}
	if got := UnavailableDateList(existing); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestUnavailableDatesEmpty(t *testing.T) {
	got := UnavailableDateList(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestUnavailableDatesStopsEarly(t *testing.T) {
	existing := []models.Reservation{reservation(t, 1, "2024-01-01", "2024-12-31")}
	var first []string
	for d := range UnavailableDates(existing) {
		first = append(first, d)
		if len(first) == 3 {
			break
		}
	}
	if !slices.Equal(first, []string{"2024-01-01", "2024-01-02", "2024-01-03"}) {
		t.Fatalf("unexpected prefix %v", first)
	}
}

func TestOverlappingPairs(t *testing.T) {
	rs := []models.Reservation{
		reservation(t, 1, "2024-06-01", "2024-06-05"),
		reservation(t, 2, "2024-06-05", "2024-06-07"),
		reservation(t, 3, "2024-06-10", "2024-06-12"),
		reservation(t, 4, "2024-06-02", "2024-06-03"),
	}
	pairs := OverlappingPairs(rs)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %+v", len(pairs), pairs)
	}
	seen := map[[2]uint]bool{}
	for _, p := range pairs {
		a, b := p[0].ID, p[1].ID
		if a > b {
			a, b = b, a
		}
		seen[[2]uint{a, b}] = true
	}
	if !seen[[2]uint{1, 2}] || !seen[[2]uint{1, 4}] {
		t.Fatalf("unexpected pairs %v", seen)
	}

	if len(OverlappingPairs(rs[2:3])) != 0 {
		t.Fatal("expected no pairs for a single reservation")
	}
}
