package employee

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type ListFilter struct {
	Name       string
	Placement  string
	Department string
	Status     string
}

var SortColumns = map[string]string{
	"number":     "employee_number",
	"name":       "full_name",
	"placement":  "placement",
	"department": "department",
	"join":       "join_date",
}

const employeeColumns = `
    id, employee_number, full_name, placement, position, department,
    COALESCE(phone, ''), COALESCE(email, ''), join_date, status, created_at, updated_at`

func (f ListFilter) where() (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		clause += " AND " + fmt.Sprintf(cond, "$"+strconv.Itoa(len(args)))
	}
	if f.Name != "" {
		add("full_name ILIKE %s", "%"+f.Name+"%")
	}
	if f.Placement != "" {
		add("placement = %s", f.Placement)
	}
	if f.Department != "" {
		add("department = %s", f.Department)
	}
	if f.Status != "" {
		add("status = %s", f.Status)
	}
	return clause, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.EmployeeNumber, &e.FullName, &e.Placement, &e.Position,
		&e.Department, &e.Phone, &e.Email, &e.JoinDate, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (s *Store) List(ctx context.Context, filter ListFilter, orderBy string, limit, offset int) ([]Employee, int, error) {
	clause, args := filter.where()

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees"+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + employeeColumns + " FROM employees" + clause +
		" ORDER BY " + orderBy +
		" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	rows, err := s.DB.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, emp)
	}
	return out, total, rows.Err()
}

func (s *Store) ListAll(ctx context.Context, filter ListFilter) ([]Employee, error) {
	clause, args := filter.where()
	rows, err := s.DB.Query(ctx, "SELECT"+employeeColumns+" FROM employees"+clause+" ORDER BY full_name", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM employees WHERE id = $1", id)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

// GetDetail loads the composite record with every section joined in.
func (s *Store) GetDetail(ctx context.Context, id string) (Detail, error) {
	emp, err := s.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	detail := Detail{
		Employee:      emp,
		Contracts:     []Contract{},
		Certificates:  []Certificate{},
		MedicalChecks: []MedicalCheck{},
		History:       []StatusHistory{},
	}

	if detail.IDCard, err = s.GetIDCard(ctx, id); err != nil {
		return Detail{}, err
	}
	if detail.FamilyCard, err = s.GetFamilyCard(ctx, id); err != nil {
		return Detail{}, err
	}
	if detail.Education, err = s.GetEducation(ctx, id); err != nil {
		return Detail{}, err
	}
	if detail.BankAccount, err = s.GetBankAccount(ctx, id); err != nil {
		return Detail{}, err
	}
	if detail.TaxRecord, err = s.GetTaxRecord(ctx, id); err != nil {
		return Detail{}, err
	}
	if detail.PPESize, err = s.GetPPESize(ctx, id); err != nil {
		return Detail{}, err
	}
	if detail.Contracts, err = s.ListContracts(ctx, id); err != nil {
		return Detail{}, err
	}
	if detail.Certificates, err = s.ListCertificates(ctx, id); err != nil {
		return Detail{}, err
	}
	if detail.MedicalChecks, err = s.ListMedicalChecks(ctx, id); err != nil {
		return Detail{}, err
	}
	if detail.History, err = s.ListHistory(ctx, id); err != nil {
		return Detail{}, err
	}
	return detail, nil
}

func (s *Store) Create(ctx context.Context, e Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_number, full_name, placement, position, department, phone, email, join_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING`+employeeColumns,
		e.EmployeeNumber, e.FullName, e.Placement, e.Position, e.Department,
		e.Phone, e.Email, e.JoinDate, e.Status,
	)
	return scanEmployee(row)
}

func (s *Store) Update(ctx context.Context, id string, e Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET employee_number = $1, full_name = $2, placement = $3, position = $4,
        department = $5, phone = $6, email = $7, join_date = $8, status = $9,
        updated_at = now()
    WHERE id = $10
    RETURNING`+employeeColumns,
		e.EmployeeNumber, e.FullName, e.Placement, e.Position, e.Department,
		e.Phone, e.Email, e.JoinDate, e.Status, id,
	)
	updated, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
