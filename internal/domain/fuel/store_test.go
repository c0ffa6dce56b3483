package fuel

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"opsdash/internal/platform/db"
)

const missingID = "00000000-0000-0000-0000-000000000000"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, "../../../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &Store{DB: pool}
}

func TestGetMissingRatio(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Get(context.Background(), missingID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMissingRatio(t *testing.T) {
	s := newTestStore(t)

	start := time.Now().Add(-8 * time.Hour)
	end := 110.0
	ratio := Ratio{
		UnitCode: "EXC-01", UnitType: "Excavator", Operator: "Budi", Shift: ShiftDay,
		StartHourMeter: 100, EndHourMeter: &end,
		StartFillAt:    &start,
		RefillLiters:   120,
		ToleranceLower: 10, ToleranceUpper: 14,
	}
	if _, err := s.Update(context.Background(), missingID, ratio); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// A failed query must surface as its own error, not masquerade as a
// missing row.
func TestGetQueryFailureIsNotMappedToNotFound(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, missingID)
	if err == nil {
		t.Fatal("expected an error from a canceled context")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("canceled context reported as ErrNotFound: %v", err)
	}
}
