package services

import (
	"context"
	"sync"
	"testing"

	"airmetr/errors"
	"airmetr/repositories"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openSQLiteStore opens a seeded in-memory database. Seeded property 2 takes
// 4 guests.
func openSQLiteStore(t *testing.T) *repositories.GormReservationStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := repositories.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := repositories.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repositories.NewGormReservationStore(db)
}

// noLocker leaves serialisation entirely to the store transaction.
type noLocker struct{}

func (noLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

func TestConcurrentCreatesAgainstGormStore(t *testing.T) {
	lockers := map[string]Locker{
		"store transaction only": noLocker{},
		"local locker":           NewLocalLocker(),
	}
	for name, locker := range lockers {
		t.Run(name, func(t *testing.T) {
			store := openSQLiteStore(t)
			svc := NewReservationService(ReservationServiceOptions{Store: store, Locker: locker})
			ctx := context.Background()

			const workers = 12
			startBase := mustDate(t, "2024-09-01")
			endBase := mustDate(t, "2024-09-04")
			var wg sync.WaitGroup
			errs := make(chan error, workers)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					// every request covers 2024-09-04
					_, err := svc.CreateReservation(ctx, ReservationInput{
						PropertyID:     2,
						CustomerID:     "3",
						StartDate:      startBase.AddDate(0, 0, i%4),
						EndDate:        endBase.AddDate(0, 0, i%2),
						NumberOfGuests: 2,
					})
					errs <- err
				}(i)
			}
			wg.Wait()
			close(errs)

			succeeded := 0
			for err := range errs {
				switch {
				case err == nil:
					succeeded++
				case !errors.Is(err, errors.ErrDateConflict):
					t.Fatalf("unexpected error: %v", err)
				}
			}
			stored, err := store.GetReservationsByProperty(ctx, 2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if succeeded != 1 || len(stored) != 1 {
				t.Fatalf("expected exactly one booking, got %d succeeded and %d stored", succeeded, len(stored))
			}
		})
	}
}
