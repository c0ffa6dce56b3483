package asset

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("asset not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type ListFilter struct {
	Code        string
	Category    string
	SizeVariant string
}

var SortColumns = map[string]string{
	"code":     "code",
	"category": "category",
	"size":     "size_variant",
	"stock":    "stock_count",
}

const assetColumns = `
    id, code, category, size_variant, stock_count, created_at, updated_at`

func (f ListFilter) where() (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		clause += " AND " + fmt.Sprintf(cond, "$"+strconv.Itoa(len(args)))
	}
	if f.Code != "" {
		add("code ILIKE %s", "%"+f.Code+"%")
	}
	if f.Category != "" {
		add("category = %s", f.Category)
	}
	if f.SizeVariant != "" {
		add("size_variant = %s", f.SizeVariant)
	}
	return clause, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (Asset, error) {
	var a Asset
	err := row.Scan(&a.ID, &a.Code, &a.Category, &a.SizeVariant, &a.StockCount, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *Store) List(ctx context.Context, filter ListFilter, orderBy string, limit, offset int) ([]Asset, int, error) {
	clause, args := filter.where()

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM assets"+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + assetColumns + " FROM assets" + clause +
		" ORDER BY " + orderBy +
		" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	rows, err := s.DB.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, asset)
	}
	return out, total, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Asset, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+assetColumns+" FROM assets WHERE id = $1", id)
	asset, err := scanAsset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Asset{}, ErrNotFound
	}
	if err != nil {
		return Asset{}, err
	}
	return asset, nil
}

func (s *Store) Create(ctx context.Context, a Asset) (Asset, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO assets (code, category, size_variant, stock_count)
    VALUES ($1,$2,$3,$4)
    RETURNING`+assetColumns,
		a.Code, a.Category, a.SizeVariant, a.StockCount,
	)
	return scanAsset(row)
}

func (s *Store) Update(ctx context.Context, id string, a Asset) (Asset, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE assets
    SET code = $1, category = $2, size_variant = $3, stock_count = $4, updated_at = now()
    WHERE id = $5
    RETURNING`+assetColumns,
		a.Code, a.Category, a.SizeVariant, a.StockCount, id,
	)
	updated, err := scanAsset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Asset{}, ErrNotFound
	}
	if err != nil {
		return Asset{}, err
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM assets WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordMovement books an inbound/outbound mutation and adjusts the live
// stock count in the same transaction.
func (s *Store) RecordMovement(ctx context.Context, m Movement) (Movement, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Movement{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	period := time.Date(m.Period.Year(), m.Period.Month(), 1, 0, 0, 0, 0, time.UTC)
	if err := tx.QueryRow(ctx, `
    INSERT INTO asset_movements (asset_id, period, inbound, outbound, note)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, m.AssetID, period, m.Inbound, m.Outbound, m.Note).Scan(&m.ID); err != nil {
		return Movement{}, err
	}
	m.Period = period

	cmd, err := tx.Exec(ctx, `
    UPDATE assets SET stock_count = stock_count + $1 - $2, updated_at = now() WHERE id = $3
  `, m.Inbound, m.Outbound, m.AssetID)
	if err != nil {
		return Movement{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Movement{}, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return Movement{}, err
	}
	return m, nil
}

// ListMonthly aggregates each asset's mutations for one reporting month.
func (s *Store) ListMonthly(ctx context.Context, month time.Time) ([]MonthlyRow, error) {
	period := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.code, a.category, a.size_variant, a.stock_count, a.created_at, a.updated_at,
           COALESCE(SUM(m.inbound), 0), COALESCE(SUM(m.outbound), 0)
    FROM assets a
    LEFT JOIN asset_movements m ON m.asset_id = a.id AND m.period = $1
    GROUP BY a.id, a.code, a.category, a.size_variant, a.stock_count, a.created_at, a.updated_at
    ORDER BY a.category, a.code
  `, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRow
	for rows.Next() {
		var row MonthlyRow
		if err := rows.Scan(
			&row.ID, &row.Code, &row.Category, &row.SizeVariant, &row.StockCount,
			&row.CreatedAt, &row.UpdatedAt, &row.Inbound, &row.Outbound,
		); err != nil {
			return nil, err
		}
		out = append(out, row.withDerived())
	}
	return out, rows.Err()
}
