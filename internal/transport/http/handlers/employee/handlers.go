package employeehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"opsdash/internal/domain/auth"
	"opsdash/internal/domain/employee"
	"opsdash/internal/report"
	"opsdash/internal/transport/http/api"
	"opsdash/internal/transport/http/middleware"
	"opsdash/internal/transport/http/shared"
)

const menuKey = "employees"

type Handler struct {
	Store *employee.Store
	Perms middleware.CapabilityStore
}

func NewHandler(store *employee.Store, perms middleware.CapabilityStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)
	create := middleware.RequireCapability(menuKey, auth.ActionCreate, h.Perms)
	update := middleware.RequireCapability(menuKey, auth.ActionUpdate, h.Perms)
	remove := middleware.RequireCapability(menuKey, auth.ActionDelete, h.Perms)

	r.Route("/employees", func(r chi.Router) {
		r.With(read).Get("/", h.handleList)
		r.With(read).Get("/export", h.handleExport)
		r.With(create).Post("/", h.handleCreate)

		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(read).Get("/", h.handleGetDetail)
			r.With(read).Get("/biodata", h.handleBiodata)
			r.With(update).Put("/", h.handleUpdate)
			r.With(remove).Delete("/", h.handleDelete)

			// One-to-one sections: a PUT creates or replaces the section.
			for _, s := range sectionRoutes {
				r.With(read).Get(s.path, h.handleGetSection(s))
				r.With(update).Put(s.path, h.handleUpsertSection(s))
			}

			r.With(read).Get("/contracts", h.handleListContracts)
			r.With(update).Post("/contracts", h.handleCreateContract)
			r.With(update).Put("/contracts/{contractID}", h.handleUpdateContract)
			r.With(update).Delete("/contracts/{contractID}", h.handleDeleteContract)

			r.With(read).Get("/certificates", h.handleListCertificates)
			r.With(update).Post("/certificates", h.handleCreateCertificate)
			r.With(update).Put("/certificates/{certificateID}", h.handleUpdateCertificate)
			r.With(update).Delete("/certificates/{certificateID}", h.handleDeleteCertificate)

			r.With(read).Get("/medical-checks", h.handleListMedicalChecks)
			r.With(update).Post("/medical-checks", h.handleCreateMedicalCheck)
			r.With(update).Put("/medical-checks/{checkID}", h.handleUpdateMedicalCheck)
			r.With(update).Delete("/medical-checks/{checkID}", h.handleDeleteMedicalCheck)

			r.With(read).Get("/history", h.handleListHistory)
			r.With(update).Post("/history", h.handleCreateHistory)
			r.With(update).Delete("/history/{entryID}", h.handleDeleteHistory)
		})
	})
}

func filterFromQuery(q shared.ListQuery) employee.ListFilter {
	return employee.ListFilter{
		Name:       q.Filters.Get("name"),
		Placement:  q.Filters.Get("placement"),
		Department: q.Filters.Get("department"),
		Status:     q.Filters.Get("status"),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := shared.ParseListQuery(r, 10, 100, "name", "placement", "department", "status")

	employees, total, err := h.Store.List(r.Context(), filterFromQuery(q), q.OrderBy(employee.SortColumns, "full_name"), q.Limit, q.Offset())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
		return
	}

	totalPages := q.TotalPages(total)
	api.Success(w, api.ListEnvelope{
		Rows:       employees,
		TotalPages: totalPages,
		Page:       q.Page,
		PageWindow: shared.PageWindow(q.Page, totalPages),
	}, requestID)
}

func (h *Handler) handleGetDetail(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	detail, err := h.Store.GetDetail(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", requestID)
		return
	}
	api.Success(w, detail, requestID)
}

type employeePayload struct {
	EmployeeNumber string `json:"employeeNumber"`
	FullName       string `json:"fullName"`
	Placement      string `json:"placement"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	JoinDate       string `json:"joinDate"`
	Status         string `json:"status"`
}

func (p employeePayload) get(field string) string {
	switch field {
	case "employeeNumber":
		return p.EmployeeNumber
	case "fullName":
		return p.FullName
	case "placement":
		return p.Placement
	case "position":
		return p.Position
	case "department":
		return p.Department
	case "phone":
		return p.Phone
	case "email":
		return p.Email
	case "joinDate":
		return p.JoinDate
	case "status":
		return p.Status
	}
	return ""
}

var employeeSchema = shared.Schema{
	{Field: "employeeNumber", Required: true, MaxLen: 32},
	{Field: "fullName", Required: true, MaxLen: 128},
	{Field: "placement", Required: true, MaxLen: 64},
	{Field: "position", MaxLen: 64},
	{Field: "department", MaxLen: 64},
	{Field: "phone", MaxLen: 32},
	{Field: "email", MaxLen: 128},
	{Field: "joinDate", Date: true},
	{Field: "status", Required: true, Enum: []string{employee.StatusActive, employee.StatusInactive}},
}

func (h *Handler) decodeEmployee(w http.ResponseWriter, r *http.Request) (employee.Employee, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return employee.Employee{}, false
	}

	if employeeSchema.Validate(payload.get).Reject(w, requestID) {
		return employee.Employee{}, false
	}

	return employee.Employee{
		EmployeeNumber: payload.EmployeeNumber,
		FullName:       payload.FullName,
		Placement:      payload.Placement,
		Position:       payload.Position,
		Department:     payload.Department,
		Phone:          payload.Phone,
		Email:          payload.Email,
		JoinDate:       shared.ParseDatePtr(payload.JoinDate),
		Status:         payload.Status,
	}, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	e, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}
	created, err := h.Store.Create(r.Context(), e)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	e, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}
	updated, err := h.Store.Update(r.Context(), chi.URLParam(r, "employeeID"), e)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.Delete(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := shared.ParseListQuery(r, 10, 100, "name", "placement", "department", "status")

	// The workbook needs every section, so the whole filtered roster is
	// loaded with its details in one batched pass.
	details, err := h.Store.ListDetails(r.Context(), filterFromQuery(q))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_export_failed", "failed to load employees", requestID)
		return
	}

	now := time.Now()
	book, err := report.Build(employee.ExportWorkbook(details, now)...)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_export_failed", "failed to build export", requestID)
		return
	}
	if err := report.Send(w, book, employee.ExportFilename(now)); err != nil {
		slog.Warn("employee export write failed", "err", err)
	}
}

func (h *Handler) handleBiodata(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	detail, err := h.Store.GetDetail(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_biodata_failed", "failed to load employee", requestID)
		return
	}

	pdfBytes, err := employee.BiodataPDF(detail)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_biodata_failed", "failed to render bio-data", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", employee.BiodataFilename(detail, time.Now())))
	if _, err := w.Write(pdfBytes); err != nil {
		slog.Warn("employee biodata write failed", "err", err)
	}
}
