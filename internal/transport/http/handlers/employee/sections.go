package employeehandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"opsdash/internal/domain/employee"
	"opsdash/internal/transport/http/api"
	"opsdash/internal/transport/http/middleware"
	"opsdash/internal/transport/http/shared"
)

// sectionRoute wires one one-to-one section to its GET/PUT pair. The upsert
// closure owns decoding and validation so each section keeps its own schema.
type sectionRoute struct {
	path   string
	fetch  func(ctx context.Context, s *employee.Store, employeeID string) (any, error)
	upsert func(ctx context.Context, s *employee.Store, employeeID string, body io.Reader) (any, []shared.ValidationIssue, error)
}

var errBadPayload = errors.New("invalid payload")

func decodeInto[P any](body io.Reader) (P, error) {
	var payload P
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		var zero P
		return zero, errBadPayload
	}
	return payload, nil
}

var sectionRoutes = []sectionRoute{
	{
		path: "/id-card",
		fetch: func(ctx context.Context, s *employee.Store, employeeID string) (any, error) {
			return s.GetIDCard(ctx, employeeID)
		},
		upsert: func(ctx context.Context, s *employee.Store, employeeID string, body io.Reader) (any, []shared.ValidationIssue, error) {
			payload, err := decodeInto[struct {
				Number     string `json:"number"`
				Address    string `json:"address"`
				City       string `json:"city"`
				BloodType  string `json:"bloodType"`
				ValidUntil string `json:"validUntil"`
			}](body)
			if err != nil {
				return nil, nil, err
			}
			v := shared.NewValidator()
			v.Required("number", payload.Number, "is required")
			if payload.ValidUntil != "" {
				v.Date("validUntil", payload.ValidUntil)
			}
			if v.HasIssues() {
				return nil, v.Issues(), nil
			}
			saved, err := s.UpsertIDCard(ctx, employee.IDCard{
				EmployeeID: employeeID,
				Number:     payload.Number,
				Address:    payload.Address,
				City:       payload.City,
				BloodType:  payload.BloodType,
				ValidUntil: shared.ParseDatePtr(payload.ValidUntil),
			})
			return saved, nil, err
		},
	},
	{
		path: "/family-card",
		fetch: func(ctx context.Context, s *employee.Store, employeeID string) (any, error) {
			return s.GetFamilyCard(ctx, employeeID)
		},
		upsert: func(ctx context.Context, s *employee.Store, employeeID string, body io.Reader) (any, []shared.ValidationIssue, error) {
			payload, err := decodeInto[struct {
				Number         string `json:"number"`
				SpouseName     string `json:"spouseName"`
				DependentCount int    `json:"dependentCount"`
			}](body)
			if err != nil {
				return nil, nil, err
			}
			v := shared.NewValidator()
			v.Required("number", payload.Number, "is required")
			if payload.DependentCount < 0 {
				v.Add("dependentCount", "must not be negative")
			}
			if v.HasIssues() {
				return nil, v.Issues(), nil
			}
			saved, err := s.UpsertFamilyCard(ctx, employee.FamilyCard{
				EmployeeID:     employeeID,
				Number:         payload.Number,
				SpouseName:     payload.SpouseName,
				DependentCount: payload.DependentCount,
			})
			return saved, nil, err
		},
	},
	{
		path: "/education",
		fetch: func(ctx context.Context, s *employee.Store, employeeID string) (any, error) {
			return s.GetEducation(ctx, employeeID)
		},
		upsert: func(ctx context.Context, s *employee.Store, employeeID string, body io.Reader) (any, []shared.ValidationIssue, error) {
			payload, err := decodeInto[struct {
				Level         string `json:"level"`
				Institution   string `json:"institution"`
				Major         string `json:"major"`
				GraduatedYear int    `json:"graduatedYear"`
			}](body)
			if err != nil {
				return nil, nil, err
			}
			v := shared.NewValidator()
			v.Required("level", payload.Level, "is required")
			if payload.GraduatedYear != 0 && (payload.GraduatedYear < 1950 || payload.GraduatedYear > 2100) {
				v.Add("graduatedYear", "must be a plausible year")
			}
			if v.HasIssues() {
				return nil, v.Issues(), nil
			}
			saved, err := s.UpsertEducation(ctx, employee.Education{
				EmployeeID:    employeeID,
				Level:         payload.Level,
				Institution:   payload.Institution,
				Major:         payload.Major,
				GraduatedYear: payload.GraduatedYear,
			})
			return saved, nil, err
		},
	},
	{
		path: "/bank-account",
		fetch: func(ctx context.Context, s *employee.Store, employeeID string) (any, error) {
			return s.GetBankAccount(ctx, employeeID)
		},
		upsert: func(ctx context.Context, s *employee.Store, employeeID string, body io.Reader) (any, []shared.ValidationIssue, error) {
			payload, err := decodeInto[struct {
				BankName      string `json:"bankName"`
				AccountNumber string `json:"accountNumber"`
				AccountHolder string `json:"accountHolder"`
			}](body)
			if err != nil {
				return nil, nil, err
			}
			v := shared.NewValidator()
			v.Required("bankName", payload.BankName, "is required")
			v.Required("accountNumber", payload.AccountNumber, "is required")
			if v.HasIssues() {
				return nil, v.Issues(), nil
			}
			saved, err := s.UpsertBankAccount(ctx, employee.BankAccount{
				EmployeeID:    employeeID,
				BankName:      payload.BankName,
				AccountNumber: payload.AccountNumber,
				AccountHolder: payload.AccountHolder,
			})
			return saved, nil, err
		},
	},
	{
		path: "/tax-record",
		fetch: func(ctx context.Context, s *employee.Store, employeeID string) (any, error) {
			return s.GetTaxRecord(ctx, employeeID)
		},
		upsert: func(ctx context.Context, s *employee.Store, employeeID string, body io.Reader) (any, []shared.ValidationIssue, error) {
			payload, err := decodeInto[struct {
				NPWP             string `json:"npwp"`
				TaxStatus        string `json:"taxStatus"`
				BPJSHealthNo     string `json:"bpjsHealthNo"`
				BPJSEmploymentNo string `json:"bpjsEmploymentNo"`
			}](body)
			if err != nil {
				return nil, nil, err
			}
			saved, err := s.UpsertTaxRecord(ctx, employee.TaxRecord{
				EmployeeID:       employeeID,
				NPWP:             payload.NPWP,
				TaxStatus:        payload.TaxStatus,
				BPJSHealthNo:     payload.BPJSHealthNo,
				BPJSEmploymentNo: payload.BPJSEmploymentNo,
			})
			return saved, nil, err
		},
	},
	{
		path: "/ppe-size",
		fetch: func(ctx context.Context, s *employee.Store, employeeID string) (any, error) {
			return s.GetPPESize(ctx, employeeID)
		},
		upsert: func(ctx context.Context, s *employee.Store, employeeID string, body io.Reader) (any, []shared.ValidationIssue, error) {
			payload, err := decodeInto[struct {
				ShirtSize  string `json:"shirtSize"`
				PantsSize  string `json:"pantsSize"`
				ShoeSize   string `json:"shoeSize"`
				HelmetSize string `json:"helmetSize"`
			}](body)
			if err != nil {
				return nil, nil, err
			}
			saved, err := s.UpsertPPESize(ctx, employee.PPESize{
				EmployeeID: employeeID,
				ShirtSize:  payload.ShirtSize,
				PantsSize:  payload.PantsSize,
				ShoeSize:   payload.ShoeSize,
				HelmetSize: payload.HelmetSize,
			})
			return saved, nil, err
		},
	},
}

func (h *Handler) handleGetSection(route sectionRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		section, err := route.fetch(r.Context(), h.Store, chi.URLParam(r, "employeeID"))
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "employee_section_failed", "failed to load employee section", requestID)
			return
		}
		api.Success(w, section, requestID)
	}
}

func (h *Handler) handleUpsertSection(route sectionRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		employeeID := chi.URLParam(r, "employeeID")

		if err := h.requireEmployee(w, r, employeeID); err != nil {
			return
		}

		saved, issues, err := route.upsert(r.Context(), h.Store, employeeID, r.Body)
		if errors.Is(err, errBadPayload) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
			return
		}
		if len(issues) > 0 {
			shared.FailValidation(w, requestID, issues)
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "employee_section_failed", "failed to save employee section", requestID)
			return
		}
		api.Success(w, saved, requestID)
	}
}

// requireEmployee 404s before a section write lands on a missing parent row.
func (h *Handler) requireEmployee(w http.ResponseWriter, r *http.Request, employeeID string) error {
	requestID := middleware.GetRequestID(r.Context())
	_, err := h.Store.Get(r.Context(), employeeID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return err
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", requestID)
		return err
	}
	return nil
}
