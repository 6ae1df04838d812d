package jobs

import (
	"context"
	"testing"
	"time"

	"airmetr/models"
	"airmetr/services/logger"

	"github.com/robfig/cron/v3"
)

type fakeAuditStore map[uint][]models.Reservation

func (f fakeAuditStore) ListPropertyIDs(context.Context) ([]uint, error) {
	ids := make([]uint, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f fakeAuditStore) GetReservationsByProperty(_ context.Context, id uint) ([]models.Reservation, error) {
	return f[id], nil
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestAuditOverlaps(t *testing.T) {
	store := fakeAuditStore{
		1: {
			{ID: 1, PropertyID: 1, StartDate: date("2024-06-01"), EndDate: date("2024-06-05")},
			{ID: 2, PropertyID: 1, StartDate: date("2024-06-06"), EndDate: date("2024-06-08")},
		},
		2: {
			{ID: 3, PropertyID: 2, StartDate: date("2024-06-01"), EndDate: date("2024-06-05")},
			{ID: 4, PropertyID: 2, StartDate: date("2024-06-05"), EndDate: date("2024-06-07")},
		},
	}

	conflicts, err := NewAuditor(store, logger.NewNopLogger()).AuditOverlaps(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].PropertyID != 2 {
		t.Fatalf("expected one conflict on property 2, got %+v", conflicts)
	}
}

func TestInitCronJobsRejectsBadSchedule(t *testing.T) {
	c := cron.New()
	defer c.Stop()
	auditor := NewAuditor(fakeAuditStore{}, logger.NewNopLogger())
	if err := InitCronJobs(c, "not a schedule", auditor, logger.NewNopLogger()); err == nil {
		t.Fatal("expected an error for an invalid schedule")
	}
	if err := InitCronJobs(c, "", auditor, logger.NewNopLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("expected one scheduled entry, got %d", len(c.Entries()))
	}
}
