package backloghandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"opsdash/internal/domain/auth"
	"opsdash/internal/domain/backlog"
	"opsdash/internal/report"
	"opsdash/internal/transport/http/api"
	"opsdash/internal/transport/http/middleware"
	"opsdash/internal/transport/http/shared"
)

const menuKey = "backlogs"

type Handler struct {
	Store *backlog.Store
	Perms middleware.CapabilityStore
}

func NewHandler(store *backlog.Store, perms middleware.CapabilityStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/backlogs", func(r chi.Router) {
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/export", h.handleExport)
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/{ticketID}", h.handleGet)
		r.With(middleware.RequireCapability(menuKey, auth.ActionCreate, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequireCapability(menuKey, auth.ActionUpdate, h.Perms)).Put("/{ticketID}", h.handleUpdate)
		r.With(middleware.RequireCapability(menuKey, auth.ActionDelete, h.Perms)).Delete("/{ticketID}", h.handleDelete)
	})
}

func filterFromQuery(q shared.ListQuery) backlog.ListFilter {
	return backlog.ListFilter{
		UnitCode: q.Filters.Get("unit"),
		Status:   q.Filters.Get("status"),
		Bucket:   backlog.AgeBucket(q.Filters.Get("bucket")),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := shared.ParseListQuery(r, 10, 100, "unit", "status", "bucket")

	tickets, total, err := h.Store.List(r.Context(), filterFromQuery(q), q.OrderBy(backlog.SortColumns, "inspected_at"), q.Limit, q.Offset(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backlog_list_failed", "failed to list backlog tickets", requestID)
		return
	}

	totalPages := q.TotalPages(total)
	api.Success(w, api.ListEnvelope{
		Rows:       tickets,
		TotalPages: totalPages,
		Page:       q.Page,
		PageWindow: shared.PageWindow(q.Page, totalPages),
	}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ticket, err := h.Store.Get(r.Context(), chi.URLParam(r, "ticketID"), time.Now())
	if errors.Is(err, backlog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "backlog_not_found", "backlog ticket not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backlog_get_failed", "failed to load backlog ticket", requestID)
		return
	}
	api.Success(w, ticket, requestID)
}

type ticketPayload struct {
	UnitCode     string `json:"unitCode"`
	Component    string `json:"component"`
	Problem      string `json:"problem"`
	InspectedAt  string `json:"inspectedAt"`
	PlanRepairAt string `json:"planRepairAt"`
	Status       string `json:"status"`
}

func (p ticketPayload) get(field string) string {
	switch field {
	case "unitCode":
		return p.UnitCode
	case "component":
		return p.Component
	case "problem":
		return p.Problem
	case "inspectedAt":
		return p.InspectedAt
	case "planRepairAt":
		return p.PlanRepairAt
	case "status":
		return p.Status
	}
	return ""
}

var ticketSchema = shared.Schema{
	{Field: "unitCode", Required: true, MaxLen: 32},
	{Field: "component", Required: true, MaxLen: 128},
	{Field: "problem", Required: true, MaxLen: 512},
	{Field: "inspectedAt", Required: true, Date: true},
	{Field: "planRepairAt", Date: true},
	{Field: "status", Required: true, Enum: []string{backlog.StatusOpen, backlog.StatusClosed}},
}

func (h *Handler) decodeTicket(w http.ResponseWriter, r *http.Request) (backlog.Ticket, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload ticketPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return backlog.Ticket{}, false
	}

	v := ticketSchema.Validate(payload.get)
	inspected, _ := shared.ParseDate(payload.InspectedAt)
	plan := shared.ParseDatePtr(payload.PlanRepairAt)
	if plan != nil {
		v.DateOrder("inspectedAt", inspected, "planRepairAt", *plan)
	}
	if v.Reject(w, requestID) {
		return backlog.Ticket{}, false
	}

	return backlog.Ticket{
		UnitCode:     payload.UnitCode,
		Component:    payload.Component,
		Problem:      payload.Problem,
		InspectedAt:  inspected,
		PlanRepairAt: plan,
		Status:       payload.Status,
	}, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ticket, ok := h.decodeTicket(w, r)
	if !ok {
		return
	}
	created, err := h.Store.Create(r.Context(), ticket)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backlog_create_failed", "failed to create backlog ticket", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ticket, ok := h.decodeTicket(w, r)
	if !ok {
		return
	}
	updated, err := h.Store.Update(r.Context(), chi.URLParam(r, "ticketID"), ticket)
	if errors.Is(err, backlog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "backlog_not_found", "backlog ticket not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backlog_update_failed", "failed to update backlog ticket", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.Delete(r.Context(), chi.URLParam(r, "ticketID"))
	if errors.Is(err, backlog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "backlog_not_found", "backlog ticket not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backlog_delete_failed", "failed to delete backlog ticket", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := shared.ParseListQuery(r, 10, 100, "unit", "status", "bucket")

	now := time.Now()
	tickets, err := h.Store.ListAll(r.Context(), filterFromQuery(q), now)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backlog_export_failed", "failed to load backlog tickets", requestID)
		return
	}

	book, err := report.Build(backlog.ExportSheet(tickets, now))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backlog_export_failed", "failed to build export", requestID)
		return
	}
	if err := report.Send(w, book, backlog.ExportFilename(now)); err != nil {
		slog.Warn("backlog export write failed", "err", err)
	}
}
