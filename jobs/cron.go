package jobs

import (
	"context"
	"fmt"
	"time"

	"airmetr/models"
	"airmetr/services"
	"airmetr/services/logger"

	"github.com/robfig/cron/v3"
)

const DefaultAuditSchedule = "0 3 * * *"

// AuditStore is the read side the integrity audit needs.
type AuditStore interface {
	ListPropertyIDs(ctx context.Context) ([]uint, error)
	GetReservationsByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error)
}

// Conflict is a pair of reservations of one property sharing a date.
type Conflict struct {
	PropertyID uint
	First      models.Reservation
	Second     models.Reservation
}

type Auditor struct {
	store  AuditStore
	logger logger.Logger
}

func NewAuditor(store AuditStore, log logger.Logger) *Auditor {
	return &Auditor{store: store, logger: log}
}

// AuditOverlaps checks every property for double bookings and logs each one
// found. A healthy database returns no conflicts.
func (a *Auditor) AuditOverlaps(ctx context.Context) ([]Conflict, error) {
	ids, err := a.store.ListPropertyIDs(ctx)
	if err != nil {
		return nil, err
	}

	var conflicts []Conflict
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return conflicts, err
		}
		reservations, err := a.store.GetReservationsByProperty(ctx, id)
		if err != nil {
			return conflicts, err
		}
		for _, pair := range services.OverlappingPairs(reservations) {
			a.logger.Error("double booking on property %d: reservation %d (%s to %s) overlaps reservation %d (%s to %s)",
				id,
				pair[0].ID, services.FormatDate(pair[0].StartDate), services.FormatDate(pair[0].EndDate),
				pair[1].ID, services.FormatDate(pair[1].StartDate), services.FormatDate(pair[1].EndDate))
			conflicts = append(conflicts, Conflict{PropertyID: id, First: pair[0], Second: pair[1]})
		}
	}
	return conflicts, nil
}

// InitCronJobs schedules the nightly audit and starts the scheduler.
func InitCronJobs(c *cron.Cron, schedule string, auditor *Auditor, log logger.Logger) error {
	if schedule == "" {
		schedule = DefaultAuditSchedule
	}
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		start := time.Now()
		conflicts, err := auditor.AuditOverlaps(ctx)
		if err != nil {
			log.Error("reservation audit failed: %v", err)
			return
		}
		log.Info("reservation audit finished in %v, %d conflicts", time.Since(start), len(conflicts))
	})
	if err != nil {
		return fmt.Errorf("invalid audit schedule %q: %w", schedule, err)
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}
