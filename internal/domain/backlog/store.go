package backlog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("backlog ticket not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type ListFilter struct {
	UnitCode string
	Status   string
	Bucket   AgeBucket
}

var SortColumns = map[string]string{
	"unit":      "unit_code",
	"component": "component",
	"inspected": "inspected_at",
	"plan":      "plan_repair_at",
}

const ticketColumns = `
    id, unit_code, component, problem, inspected_at, plan_repair_at,
    status, created_at, updated_at`

func (f ListFilter) where(now time.Time) (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		clause += " AND " + fmt.Sprintf(cond, "$"+strconv.Itoa(len(args)))
	}
	if f.UnitCode != "" {
		add("unit_code ILIKE %s", "%"+f.UnitCode+"%")
	}
	if f.Status != "" {
		add("status = %s", f.Status)
	}
	if f.Bucket != "" {
		// Bucket filtering happens against the same day arithmetic the
		// derived column uses.
		from, to := bucketRange(f.Bucket)
		add("inspected_at <= %s", now.AddDate(0, 0, -from))
		if to >= 0 {
			add("inspected_at > %s", now.AddDate(0, 0, -(to+1)))
		}
	}
	return clause, args
}

// bucketRange returns the inclusive day range for a bucket; to is -1 for the
// open-ended band.
func bucketRange(bucket AgeBucket) (from, to int) {
	switch bucket {
	case Bucket0To5:
		return 0, 5
	case Bucket6To15:
		return 6, 15
	case Bucket16To30:
		return 16, 30
	default:
		return 31, -1
	}
}

func (s *Store) List(ctx context.Context, filter ListFilter, orderBy string, limit, offset int, now time.Time) ([]Ticket, int, error) {
	clause, args := filter.where(now)

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM backlog_tickets"+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + ticketColumns + " FROM backlog_tickets" + clause +
		" ORDER BY " + orderBy +
		" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	rows, err := s.DB.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ticket.WithAging(now))
	}
	return out, total, rows.Err()
}

func (s *Store) ListAll(ctx context.Context, filter ListFilter, now time.Time) ([]Ticket, error) {
	clause, args := filter.where(now)
	rows, err := s.DB.Query(ctx, "SELECT"+ticketColumns+" FROM backlog_tickets"+clause+" ORDER BY inspected_at, unit_code", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ticket.WithAging(now))
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (Ticket, error) {
	var t Ticket
	err := row.Scan(
		&t.ID, &t.UnitCode, &t.Component, &t.Problem, &t.InspectedAt,
		&t.PlanRepairAt, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (s *Store) Get(ctx context.Context, id string, now time.Time) (Ticket, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+ticketColumns+" FROM backlog_tickets WHERE id = $1", id)
	ticket, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ticket{}, ErrNotFound
	}
	if err != nil {
		return Ticket{}, err
	}
	return ticket.WithAging(now), nil
}

func (s *Store) Create(ctx context.Context, t Ticket) (Ticket, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO backlog_tickets (unit_code, component, problem, inspected_at, plan_repair_at, status)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING`+ticketColumns,
		t.UnitCode, t.Component, t.Problem, t.InspectedAt, t.PlanRepairAt, t.Status,
	)
	created, err := scanTicket(row)
	if err != nil {
		return Ticket{}, err
	}
	return created.WithAging(time.Now()), nil
}

func (s *Store) Update(ctx context.Context, id string, t Ticket) (Ticket, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE backlog_tickets
    SET unit_code = $1, component = $2, problem = $3,
        inspected_at = $4, plan_repair_at = $5, status = $6, updated_at = now()
    WHERE id = $7
    RETURNING`+ticketColumns,
		t.UnitCode, t.Component, t.Problem, t.InspectedAt, t.PlanRepairAt, t.Status, id,
	)
	updated, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ticket{}, ErrNotFound
	}
	if err != nil {
		return Ticket{}, err
	}
	return updated.WithAging(time.Now()), nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM backlog_tickets WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
