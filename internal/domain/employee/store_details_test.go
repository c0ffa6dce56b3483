package employee

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"opsdash/internal/platform/db"
)

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

func TestListDetailsAttachesSectionsPerEmployee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A department unique to this run isolates the rows under test.
	dept := fmt.Sprintf("batch-%d", time.Now().UnixNano())
	join := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mustCreate := func(number, name string) Employee {
		t.Helper()
		emp, err := s.Create(ctx, Employee{
			EmployeeNumber: number, FullName: name, Placement: "Site A",
			Position: "Operator", Department: dept, JoinDate: &join, Status: StatusActive,
		})
		if err != nil {
			t.Fatalf("create employee %s: %v", name, err)
		}
		return emp
	}
	andi := mustCreate(dept+"-001", "Andi Wijaya")
	citra := mustCreate(dept+"-002", "Citra Lestari")

	if _, err := s.UpsertTaxRecord(ctx, TaxRecord{EmployeeID: andi.ID, NPWP: "09.254.294.3-407.000", TaxStatus: "K/1"}); err != nil {
		t.Fatalf("upsert tax record: %v", err)
	}
	contractStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	contractEnd := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	for _, empID := range []string{andi.ID, andi.ID, citra.ID} {
		if _, err := s.CreateContract(ctx, Contract{
			EmployeeID: empID, StartDate: &contractStart, EndDate: &contractEnd, ContractType: "PKWT",
		}); err != nil {
			t.Fatalf("create contract: %v", err)
		}
	}

	details, err := s.ListDetails(ctx, ListFilter{Department: dept})
	if err != nil {
		t.Fatalf("list details: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("got %d details, want 2", len(details))
	}

	// ListAll orders by full_name, so Andi comes first.
	first, second := details[0], details[1]
	if first.ID != andi.ID || second.ID != citra.ID {
		t.Fatalf("unexpected order: %s, %s", first.FullName, second.FullName)
	}

	if first.TaxRecord == nil || first.TaxRecord.NPWP != "09.254.294.3-407.000" {
		t.Fatalf("tax record not attached to first employee: %+v", first.TaxRecord)
	}
	if second.TaxRecord != nil {
		t.Fatalf("tax record leaked onto second employee: %+v", second.TaxRecord)
	}
	if len(first.Contracts) != 2 || len(second.Contracts) != 1 {
		t.Fatalf("contracts = %d/%d, want 2/1", len(first.Contracts), len(second.Contracts))
	}
	if first.Contracts[0].DurationMonths == nil || *first.Contracts[0].DurationMonths != 6 {
		t.Fatalf("contract duration = %v, want 6", first.Contracts[0].DurationMonths)
	}
	if first.Certificates == nil || first.MedicalChecks == nil || first.History == nil {
		t.Fatal("one-to-many sections must be empty slices, not nil")
	}
}

func TestListDetailsNoMatches(t *testing.T) {
	s := newTestStore(t)

	details, err := s.ListDetails(context.Background(), ListFilter{Department: "no-such-department"})
	if err != nil {
		t.Fatalf("list details: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("got %d details, want 0", len(details))
	}
}
