package fuel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("fuel ratio not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ListFilter carries the already-stripped filter values; unset filters are
// empty strings / nil and never reach the SQL text.
type ListFilter struct {
	UnitCode string
	Operator string
	Shift    string
	From     *time.Time
	To       *time.Time
}

// SortColumns maps the query-string sort keys to real columns.
var SortColumns = map[string]string{
	"unit":     "unit_code",
	"operator": "operator",
	"shift":    "shift",
	"refill":   "refill_liters",
	"date":     "start_fill_at",
}

const ratioColumns = `
    id, unit_code, unit_type, operator, shift,
    start_hour_meter, end_hour_meter, start_fill_at, end_fill_at,
    refill_liters, tolerance_lower, tolerance_upper, created_at, updated_at`

func (f ListFilter) where() (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		clause += " AND " + fmt.Sprintf(cond, "$"+strconv.Itoa(len(args)))
	}
	if f.UnitCode != "" {
		add("unit_code ILIKE %s", "%"+f.UnitCode+"%")
	}
	if f.Operator != "" {
		add("operator ILIKE %s", "%"+f.Operator+"%")
	}
	if f.Shift != "" {
		add("shift = %s", f.Shift)
	}
	if f.From != nil {
		add("start_fill_at >= %s", *f.From)
	}
	if f.To != nil {
		add("start_fill_at < %s", f.To.AddDate(0, 0, 1))
	}
	return clause, args
}

func (s *Store) List(ctx context.Context, filter ListFilter, orderBy string, limit, offset int) ([]Ratio, int, error) {
	clause, args := filter.where()

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM fuel_ratios"+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + ratioColumns + " FROM fuel_ratios" + clause +
		" ORDER BY " + orderBy +
		" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	rows, err := s.DB.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Ratio
	for rows.Next() {
		ratio, err := scanRatio(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ratio)
	}
	return out, total, rows.Err()
}

// ListAll returns the full filtered dataset for export, bypassing
// pagination.
func (s *Store) ListAll(ctx context.Context, filter ListFilter) ([]Ratio, error) {
	clause, args := filter.where()
	rows, err := s.DB.Query(ctx, "SELECT"+ratioColumns+" FROM fuel_ratios"+clause+" ORDER BY start_fill_at, unit_code", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ratio
	for rows.Next() {
		ratio, err := scanRatio(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ratio)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRatio(row rowScanner) (Ratio, error) {
	var r Ratio
	if err := row.Scan(
		&r.ID, &r.UnitCode, &r.UnitType, &r.Operator, &r.Shift,
		&r.StartHourMeter, &r.EndHourMeter, &r.StartFillAt, &r.EndFillAt,
		&r.RefillLiters, &r.ToleranceLower, &r.ToleranceUpper,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return Ratio{}, err
	}
	r.ConsumptionRate = ConsumptionRate(r.RefillLiters, r.StartHourMeter, r.EndHourMeter)
	r.Complete = IsComplete(r.EndFillAt, r.EndHourMeter)
	return r, nil
}

func (s *Store) Get(ctx context.Context, id string) (Ratio, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+ratioColumns+" FROM fuel_ratios WHERE id = $1", id)
	ratio, err := scanRatio(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ratio{}, ErrNotFound
	}
	if err != nil {
		return Ratio{}, err
	}
	return ratio, nil
}

func (s *Store) Create(ctx context.Context, r Ratio) (Ratio, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO fuel_ratios (unit_code, unit_type, operator, shift,
      start_hour_meter, end_hour_meter, start_fill_at, end_fill_at,
      refill_liters, tolerance_lower, tolerance_upper)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING`+ratioColumns,
		r.UnitCode, r.UnitType, r.Operator, r.Shift,
		r.StartHourMeter, r.EndHourMeter, r.StartFillAt, r.EndFillAt,
		r.RefillLiters, r.ToleranceLower, r.ToleranceUpper,
	)
	return scanRatio(row)
}

func (s *Store) Update(ctx context.Context, id string, r Ratio) (Ratio, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE fuel_ratios
    SET unit_code = $1, unit_type = $2, operator = $3, shift = $4,
        start_hour_meter = $5, end_hour_meter = $6,
        start_fill_at = $7, end_fill_at = $8,
        refill_liters = $9, tolerance_lower = $10, tolerance_upper = $11,
        updated_at = now()
    WHERE id = $12
    RETURNING`+ratioColumns,
		r.UnitCode, r.UnitType, r.Operator, r.Shift,
		r.StartHourMeter, r.EndHourMeter, r.StartFillAt, r.EndFillAt,
		r.RefillLiters, r.ToleranceLower, r.ToleranceUpper, id,
	)
	updated, err := scanRatio(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ratio{}, ErrNotFound
	}
	if err != nil {
		return Ratio{}, err
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM fuel_ratios WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
