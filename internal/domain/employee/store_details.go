package employee

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// ListDetails loads every matching employee with all sections attached.
// The roster-wide export calls this; it issues one query per section table
// over the whole set instead of a round-trip per employee.
func (s *Store) ListDetails(ctx context.Context, filter ListFilter) ([]Detail, error) {
	employees, err := s.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return []Detail{}, nil
	}

	details := make([]Detail, len(employees))
	byID := make(map[string]*Detail, len(employees))
	ids := make([]string, len(employees))
	for i, emp := range employees {
		details[i] = Detail{
			Employee:      emp,
			Contracts:     []Contract{},
			Certificates:  []Certificate{},
			MedicalChecks: []MedicalCheck{},
			History:       []StatusHistory{},
		}
		byID[emp.ID] = &details[i]
		ids[i] = emp.ID
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, number, COALESCE(address, ''), COALESCE(city, ''),
           COALESCE(blood_type, ''), valid_until
    FROM employee_id_cards WHERE employee_id = ANY($1)
  `, ids, func(rows pgx.Rows) error {
		var c IDCard
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Number, &c.Address, &c.City, &c.BloodType, &c.ValidUntil); err != nil {
			return err
		}
		byID[c.EmployeeID].IDCard = &c
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, number, COALESCE(spouse_name, ''), dependent_count
    FROM employee_family_cards WHERE employee_id = ANY($1)
  `, ids, func(rows pgx.Rows) error {
		var c FamilyCard
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Number, &c.SpouseName, &c.DependentCount); err != nil {
			return err
		}
		byID[c.EmployeeID].FamilyCard = &c
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, level, COALESCE(institution, ''), COALESCE(major, ''), graduated_year
    FROM employee_educations WHERE employee_id = ANY($1)
  `, ids, func(rows pgx.Rows) error {
		var e Education
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Level, &e.Institution, &e.Major, &e.GraduatedYear); err != nil {
			return err
		}
		byID[e.EmployeeID].Education = &e
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, bank_name, account_number, COALESCE(account_holder, '')
    FROM employee_bank_accounts WHERE employee_id = ANY($1)
  `, ids, func(rows pgx.Rows) error {
		var b BankAccount
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.BankName, &b.AccountNumber, &b.AccountHolder); err != nil {
			return err
		}
		byID[b.EmployeeID].BankAccount = &b
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, COALESCE(npwp, ''), COALESCE(tax_status, ''),
           COALESCE(bpjs_health_no, ''), COALESCE(bpjs_employment_no, '')
    FROM employee_tax_records WHERE employee_id = ANY($1)
  `, ids, func(rows pgx.Rows) error {
		var t TaxRecord
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.NPWP, &t.TaxStatus, &t.BPJSHealthNo, &t.BPJSEmploymentNo); err != nil {
			return err
		}
		byID[t.EmployeeID].TaxRecord = &t
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, COALESCE(shirt_size, ''), COALESCE(pants_size, ''),
           COALESCE(shoe_size, ''), COALESCE(helmet_size, '')
    FROM employee_ppe_sizes WHERE employee_id = ANY($1)
  `, ids, func(rows pgx.Rows) error {
		var p PPESize
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.ShirtSize, &p.PantsSize, &p.ShoeSize, &p.HelmetSize); err != nil {
			return err
		}
		byID[p.EmployeeID].PPESize = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, start_date, end_date, COALESCE(placement, ''), COALESCE(contract_type, '')
    FROM employee_contracts WHERE employee_id = ANY($1) ORDER BY start_date
  `, ids, func(rows pgx.Rows) error {
		var c Contract
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.StartDate, &c.EndDate, &c.Placement, &c.ContractType); err != nil {
			return err
		}
		c.DurationMonths = ContractMonths(c.StartDate, c.EndDate)
		d := byID[c.EmployeeID]
		d.Contracts = append(d.Contracts, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, name, COALESCE(issuer, ''), issued_at, expires_at
    FROM employee_certificates WHERE employee_id = ANY($1) ORDER BY issued_at
  `, ids, func(rows pgx.Rows) error {
		var c Certificate
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Name, &c.Issuer, &c.IssuedAt, &c.ExpiresAt); err != nil {
			return err
		}
		d := byID[c.EmployeeID]
		d.Certificates = append(d.Certificates, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, checked_at, COALESCE(result, ''), COALESCE(notes, '')
    FROM employee_medical_checks WHERE employee_id = ANY($1) ORDER BY checked_at
  `, ids, func(rows pgx.Rows) error {
		var m MedicalCheck
		if err := rows.Scan(&m.ID, &m.EmployeeID, &m.CheckedAt, &m.Result, &m.Notes); err != nil {
			return err
		}
		d := byID[m.EmployeeID]
		d.MedicalChecks = append(d.MedicalChecks, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.eachSectionRow(ctx, `
    SELECT id, employee_id, status, effective_date, COALESCE(note, '')
    FROM employee_status_history WHERE employee_id = ANY($1) ORDER BY effective_date
  `, ids, func(rows pgx.Rows) error {
		var h StatusHistory
		if err := rows.Scan(&h.ID, &h.EmployeeID, &h.Status, &h.EffectiveDate, &h.Note); err != nil {
			return err
		}
		d := byID[h.EmployeeID]
		d.History = append(d.History, h)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return details, nil
}

func (s *Store) eachSectionRow(ctx context.Context, query string, ids []string, scan func(rows pgx.Rows) error) error {
	rows, err := s.DB.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
