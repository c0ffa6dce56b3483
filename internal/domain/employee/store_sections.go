package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// One-to-one sections are upserted: each employee has at most one row per
// section table, keyed on employee_id. A missing section reads as nil.

func (s *Store) GetIDCard(ctx context.Context, employeeID string) (*IDCard, error) {
	var c IDCard
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, number, COALESCE(address, ''), COALESCE(city, ''),
           COALESCE(blood_type, ''), valid_until
    FROM employee_id_cards WHERE employee_id = $1
  `, employeeID).Scan(&c.ID, &c.EmployeeID, &c.Number, &c.Address, &c.City, &c.BloodType, &c.ValidUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpsertIDCard(ctx context.Context, c IDCard) (IDCard, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_id_cards (employee_id, number, address, city, blood_type, valid_until)
    VALUES ($1,$2,$3,$4,$5,$6)
    ON CONFLICT (employee_id) DO UPDATE
    SET number = EXCLUDED.number, address = EXCLUDED.address, city = EXCLUDED.city,
        blood_type = EXCLUDED.blood_type, valid_until = EXCLUDED.valid_until
    RETURNING id
  `, c.EmployeeID, c.Number, c.Address, c.City, c.BloodType, c.ValidUntil).Scan(&c.ID)
	return c, err
}

func (s *Store) GetFamilyCard(ctx context.Context, employeeID string) (*FamilyCard, error) {
	var c FamilyCard
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, number, COALESCE(spouse_name, ''), dependent_count
    FROM employee_family_cards WHERE employee_id = $1
  `, employeeID).Scan(&c.ID, &c.EmployeeID, &c.Number, &c.SpouseName, &c.DependentCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpsertFamilyCard(ctx context.Context, c FamilyCard) (FamilyCard, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_family_cards (employee_id, number, spouse_name, dependent_count)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (employee_id) DO UPDATE
    SET number = EXCLUDED.number, spouse_name = EXCLUDED.spouse_name,
        dependent_count = EXCLUDED.dependent_count
    RETURNING id
  `, c.EmployeeID, c.Number, c.SpouseName, c.DependentCount).Scan(&c.ID)
	return c, err
}

func (s *Store) GetEducation(ctx context.Context, employeeID string) (*Education, error) {
	var e Education
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, level, COALESCE(institution, ''), COALESCE(major, ''), graduated_year
    FROM employee_educations WHERE employee_id = $1
  `, employeeID).Scan(&e.ID, &e.EmployeeID, &e.Level, &e.Institution, &e.Major, &e.GraduatedYear)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) UpsertEducation(ctx context.Context, e Education) (Education, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_educations (employee_id, level, institution, major, graduated_year)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id) DO UPDATE
    SET level = EXCLUDED.level, institution = EXCLUDED.institution,
        major = EXCLUDED.major, graduated_year = EXCLUDED.graduated_year
    RETURNING id
  `, e.EmployeeID, e.Level, e.Institution, e.Major, e.GraduatedYear).Scan(&e.ID)
	return e, err
}

func (s *Store) GetBankAccount(ctx context.Context, employeeID string) (*BankAccount, error) {
	var b BankAccount
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, bank_name, account_number, COALESCE(account_holder, '')
    FROM employee_bank_accounts WHERE employee_id = $1
  `, employeeID).Scan(&b.ID, &b.EmployeeID, &b.BankName, &b.AccountNumber, &b.AccountHolder)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) UpsertBankAccount(ctx context.Context, b BankAccount) (BankAccount, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_bank_accounts (employee_id, bank_name, account_number, account_holder)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (employee_id) DO UPDATE
    SET bank_name = EXCLUDED.bank_name, account_number = EXCLUDED.account_number,
        account_holder = EXCLUDED.account_holder
    RETURNING id
  `, b.EmployeeID, b.BankName, b.AccountNumber, b.AccountHolder).Scan(&b.ID)
	return b, err
}

func (s *Store) GetTaxRecord(ctx context.Context, employeeID string) (*TaxRecord, error) {
	var t TaxRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, COALESCE(npwp, ''), COALESCE(tax_status, ''),
           COALESCE(bpjs_health_no, ''), COALESCE(bpjs_employment_no, '')
    FROM employee_tax_records WHERE employee_id = $1
  `, employeeID).Scan(&t.ID, &t.EmployeeID, &t.NPWP, &t.TaxStatus, &t.BPJSHealthNo, &t.BPJSEmploymentNo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) UpsertTaxRecord(ctx context.Context, t TaxRecord) (TaxRecord, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_tax_records (employee_id, npwp, tax_status, bpjs_health_no, bpjs_employment_no)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id) DO UPDATE
    SET npwp = EXCLUDED.npwp, tax_status = EXCLUDED.tax_status,
        bpjs_health_no = EXCLUDED.bpjs_health_no, bpjs_employment_no = EXCLUDED.bpjs_employment_no
    RETURNING id
  `, t.EmployeeID, t.NPWP, t.TaxStatus, t.BPJSHealthNo, t.BPJSEmploymentNo).Scan(&t.ID)
	return t, err
}

func (s *Store) GetPPESize(ctx context.Context, employeeID string) (*PPESize, error) {
	var p PPESize
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, COALESCE(shirt_size, ''), COALESCE(pants_size, ''),
           COALESCE(shoe_size, ''), COALESCE(helmet_size, '')
    FROM employee_ppe_sizes WHERE employee_id = $1
  `, employeeID).Scan(&p.ID, &p.EmployeeID, &p.ShirtSize, &p.PantsSize, &p.ShoeSize, &p.HelmetSize)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpsertPPESize(ctx context.Context, p PPESize) (PPESize, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_ppe_sizes (employee_id, shirt_size, pants_size, shoe_size, helmet_size)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id) DO UPDATE
    SET shirt_size = EXCLUDED.shirt_size, pants_size = EXCLUDED.pants_size,
        shoe_size = EXCLUDED.shoe_size, helmet_size = EXCLUDED.helmet_size
    RETURNING id
  `, p.EmployeeID, p.ShirtSize, p.PantsSize, p.ShoeSize, p.HelmetSize).Scan(&p.ID)
	return p, err
}

// One-to-many sections.

func (s *Store) ListContracts(ctx context.Context, employeeID string) ([]Contract, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, start_date, end_date, COALESCE(placement, ''), COALESCE(contract_type, '')
    FROM employee_contracts WHERE employee_id = $1 ORDER BY start_date
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Contract{}
	for rows.Next() {
		var c Contract
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.StartDate, &c.EndDate, &c.Placement, &c.ContractType); err != nil {
			return nil, err
		}
		c.DurationMonths = ContractMonths(c.StartDate, c.EndDate)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateContract(ctx context.Context, c Contract) (Contract, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_contracts (employee_id, start_date, end_date, placement, contract_type)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, c.EmployeeID, c.StartDate, c.EndDate, c.Placement, c.ContractType).Scan(&c.ID)
	if err != nil {
		return Contract{}, err
	}
	c.DurationMonths = ContractMonths(c.StartDate, c.EndDate)
	return c, nil
}

func (s *Store) UpdateContract(ctx context.Context, id string, c Contract) (Contract, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employee_contracts
    SET start_date = $1, end_date = $2, placement = $3, contract_type = $4
    WHERE id = $5 AND employee_id = $6
  `, c.StartDate, c.EndDate, c.Placement, c.ContractType, id, c.EmployeeID)
	if err != nil {
		return Contract{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Contract{}, ErrNotFound
	}
	c.ID = id
	c.DurationMonths = ContractMonths(c.StartDate, c.EndDate)
	return c, nil
}

func (s *Store) DeleteContract(ctx context.Context, employeeID, id string) error {
	return s.deleteChild(ctx, "employee_contracts", employeeID, id)
}

func (s *Store) ListCertificates(ctx context.Context, employeeID string) ([]Certificate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, name, COALESCE(issuer, ''), issued_at, expires_at
    FROM employee_certificates WHERE employee_id = $1 ORDER BY issued_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Certificate{}
	for rows.Next() {
		var c Certificate
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Name, &c.Issuer, &c.IssuedAt, &c.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateCertificate(ctx context.Context, c Certificate) (Certificate, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_certificates (employee_id, name, issuer, issued_at, expires_at)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, c.EmployeeID, c.Name, c.Issuer, c.IssuedAt, c.ExpiresAt).Scan(&c.ID)
	if err != nil {
		return Certificate{}, err
	}
	return c, nil
}

func (s *Store) UpdateCertificate(ctx context.Context, id string, c Certificate) (Certificate, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employee_certificates
    SET name = $1, issuer = $2, issued_at = $3, expires_at = $4
    WHERE id = $5 AND employee_id = $6
  `, c.Name, c.Issuer, c.IssuedAt, c.ExpiresAt, id, c.EmployeeID)
	if err != nil {
		return Certificate{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Certificate{}, ErrNotFound
	}
	c.ID = id
	return c, nil
}

func (s *Store) DeleteCertificate(ctx context.Context, employeeID, id string) error {
	return s.deleteChild(ctx, "employee_certificates", employeeID, id)
}

func (s *Store) ListMedicalChecks(ctx context.Context, employeeID string) ([]MedicalCheck, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, checked_at, COALESCE(result, ''), COALESCE(notes, '')
    FROM employee_medical_checks WHERE employee_id = $1 ORDER BY checked_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MedicalCheck{}
	for rows.Next() {
		var m MedicalCheck
		if err := rows.Scan(&m.ID, &m.EmployeeID, &m.CheckedAt, &m.Result, &m.Notes); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) CreateMedicalCheck(ctx context.Context, m MedicalCheck) (MedicalCheck, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_medical_checks (employee_id, checked_at, result, notes)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, m.EmployeeID, m.CheckedAt, m.Result, m.Notes).Scan(&m.ID)
	if err != nil {
		return MedicalCheck{}, err
	}
	return m, nil
}

func (s *Store) UpdateMedicalCheck(ctx context.Context, id string, m MedicalCheck) (MedicalCheck, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employee_medical_checks
    SET checked_at = $1, result = $2, notes = $3
    WHERE id = $4 AND employee_id = $5
  `, m.CheckedAt, m.Result, m.Notes, id, m.EmployeeID)
	if err != nil {
		return MedicalCheck{}, err
	}
	if cmd.RowsAffected() == 0 {
		return MedicalCheck{}, ErrNotFound
	}
	m.ID = id
	return m, nil
}

func (s *Store) DeleteMedicalCheck(ctx context.Context, employeeID, id string) error {
	return s.deleteChild(ctx, "employee_medical_checks", employeeID, id)
}

func (s *Store) ListHistory(ctx context.Context, employeeID string) ([]StatusHistory, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, status, effective_date, COALESCE(note, '')
    FROM employee_status_history WHERE employee_id = $1 ORDER BY effective_date
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StatusHistory{}
	for rows.Next() {
		var h StatusHistory
		if err := rows.Scan(&h.ID, &h.EmployeeID, &h.Status, &h.EffectiveDate, &h.Note); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) CreateHistory(ctx context.Context, h StatusHistory) (StatusHistory, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_status_history (employee_id, status, effective_date, note)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, h.EmployeeID, h.Status, h.EffectiveDate, h.Note).Scan(&h.ID)
	if err != nil {
		return StatusHistory{}, err
	}
	return h, nil
}

func (s *Store) DeleteHistory(ctx context.Context, employeeID, id string) error {
	return s.deleteChild(ctx, "employee_status_history", employeeID, id)
}

func (s *Store) deleteChild(ctx context.Context, table, employeeID, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1 AND employee_id = $2", id, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
