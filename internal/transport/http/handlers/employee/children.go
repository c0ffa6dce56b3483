package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"opsdash/internal/domain/employee"
	"opsdash/internal/transport/http/api"
	"opsdash/internal/transport/http/middleware"
	"opsdash/internal/transport/http/shared"
)

func (h *Handler) handleListContracts(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	contracts, err := h.Store.ListContracts(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_list_failed", "failed to list contracts", requestID)
		return
	}
	api.Success(w, contracts, requestID)
}

type contractPayload struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Placement    string `json:"placement"`
	ContractType string `json:"contractType"`
}

func (h *Handler) decodeContract(w http.ResponseWriter, r *http.Request) (employee.Contract, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload contractPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return employee.Contract{}, false
	}

	v := shared.NewValidator()
	start, ok := v.Date("startDate", payload.StartDate)
	end := shared.ParseDatePtr(payload.EndDate)
	if ok && end != nil {
		v.DateOrder("startDate", start, "endDate", *end)
	}
	if v.Reject(w, requestID) {
		return employee.Contract{}, false
	}

	return employee.Contract{
		EmployeeID:   chi.URLParam(r, "employeeID"),
		StartDate:    &start,
		EndDate:      end,
		Placement:    payload.Placement,
		ContractType: payload.ContractType,
	}, true
}

func (h *Handler) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.requireEmployee(w, r, chi.URLParam(r, "employeeID")); err != nil {
		return
	}
	contract, ok := h.decodeContract(w, r)
	if !ok {
		return
	}
	created, err := h.Store.CreateContract(r.Context(), contract)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_create_failed", "failed to create contract", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateContract(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	contract, ok := h.decodeContract(w, r)
	if !ok {
		return
	}
	updated, err := h.Store.UpdateContract(r.Context(), chi.URLParam(r, "contractID"), contract)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "contract_not_found", "contract not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_update_failed", "failed to update contract", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.DeleteContract(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "contractID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "contract_not_found", "contract not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_delete_failed", "failed to delete contract", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleListCertificates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	certificates, err := h.Store.ListCertificates(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "certificate_list_failed", "failed to list certificates", requestID)
		return
	}
	api.Success(w, certificates, requestID)
}

type certificatePayload struct {
	Name      string `json:"name"`
	Issuer    string `json:"issuer"`
	IssuedAt  string `json:"issuedAt"`
	ExpiresAt string `json:"expiresAt"`
}

func (h *Handler) decodeCertificate(w http.ResponseWriter, r *http.Request) (employee.Certificate, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload certificatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return employee.Certificate{}, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	issued := shared.ParseDatePtr(payload.IssuedAt)
	expires := shared.ParseDatePtr(payload.ExpiresAt)
	if issued != nil && expires != nil {
		v.DateOrder("issuedAt", *issued, "expiresAt", *expires)
	}
	if v.Reject(w, requestID) {
		return employee.Certificate{}, false
	}

	return employee.Certificate{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Name:       payload.Name,
		Issuer:     payload.Issuer,
		IssuedAt:   issued,
		ExpiresAt:  expires,
	}, true
}

func (h *Handler) handleCreateCertificate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.requireEmployee(w, r, chi.URLParam(r, "employeeID")); err != nil {
		return
	}
	certificate, ok := h.decodeCertificate(w, r)
	if !ok {
		return
	}
	created, err := h.Store.CreateCertificate(r.Context(), certificate)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "certificate_create_failed", "failed to create certificate", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateCertificate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	certificate, ok := h.decodeCertificate(w, r)
	if !ok {
		return
	}
	updated, err := h.Store.UpdateCertificate(r.Context(), chi.URLParam(r, "certificateID"), certificate)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "certificate_not_found", "certificate not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "certificate_update_failed", "failed to update certificate", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteCertificate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.DeleteCertificate(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "certificateID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "certificate_not_found", "certificate not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "certificate_delete_failed", "failed to delete certificate", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleListMedicalChecks(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	checks, err := h.Store.ListMedicalChecks(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "medical_check_list_failed", "failed to list medical checks", requestID)
		return
	}
	api.Success(w, checks, requestID)
}

type medicalCheckPayload struct {
	CheckedAt string `json:"checkedAt"`
	Result    string `json:"result"`
	Notes     string `json:"notes"`
}

func (h *Handler) decodeMedicalCheck(w http.ResponseWriter, r *http.Request) (employee.MedicalCheck, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload medicalCheckPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return employee.MedicalCheck{}, false
	}

	v := shared.NewValidator()
	checked, _ := v.Date("checkedAt", payload.CheckedAt)
	v.Required("result", payload.Result, "is required")
	if v.Reject(w, requestID) {
		return employee.MedicalCheck{}, false
	}

	return employee.MedicalCheck{
		EmployeeID: chi.URLParam(r, "employeeID"),
		CheckedAt:  &checked,
		Result:     payload.Result,
		Notes:      payload.Notes,
	}, true
}

func (h *Handler) handleCreateMedicalCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.requireEmployee(w, r, chi.URLParam(r, "employeeID")); err != nil {
		return
	}
	check, ok := h.decodeMedicalCheck(w, r)
	if !ok {
		return
	}
	created, err := h.Store.CreateMedicalCheck(r.Context(), check)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "medical_check_create_failed", "failed to create medical check", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateMedicalCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	check, ok := h.decodeMedicalCheck(w, r)
	if !ok {
		return
	}
	updated, err := h.Store.UpdateMedicalCheck(r.Context(), chi.URLParam(r, "checkID"), check)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "medical_check_not_found", "medical check not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "medical_check_update_failed", "failed to update medical check", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteMedicalCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.DeleteMedicalCheck(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "checkID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "medical_check_not_found", "medical check not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "medical_check_delete_failed", "failed to delete medical check", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	history, err := h.Store.ListHistory(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_list_failed", "failed to list status history", requestID)
		return
	}
	api.Success(w, history, requestID)
}

type historyPayload struct {
	Status        string `json:"status"`
	EffectiveDate string `json:"effectiveDate"`
	Note          string `json:"note"`
}

func (h *Handler) handleCreateHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.requireEmployee(w, r, chi.URLParam(r, "employeeID")); err != nil {
		return
	}

	var payload historyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "is required")
	v.Enum("status", payload.Status, []string{employee.StatusActive, employee.StatusInactive}, "must be one of active, inactive")
	effective, _ := v.Date("effectiveDate", payload.EffectiveDate)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Store.CreateHistory(r.Context(), employee.StatusHistory{
		EmployeeID:    chi.URLParam(r, "employeeID"),
		Status:        payload.Status,
		EffectiveDate: &effective,
		Note:          payload.Note,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_create_failed", "failed to record status change", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.DeleteHistory(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "entryID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "history_not_found", "history entry not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_delete_failed", "failed to delete history entry", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}
