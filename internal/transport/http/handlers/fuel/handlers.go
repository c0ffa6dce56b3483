package fuelhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"opsdash/internal/domain/auth"
	"opsdash/internal/domain/fuel"
	"opsdash/internal/report"
	"opsdash/internal/transport/http/api"
	"opsdash/internal/transport/http/middleware"
	"opsdash/internal/transport/http/shared"
)

const menuKey = "fuel-ratios"

type Handler struct {
	Store *fuel.Store
	Perms middleware.CapabilityStore
}

func NewHandler(store *fuel.Store, perms middleware.CapabilityStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/fuel-ratios", func(r chi.Router) {
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/export", h.handleExport)
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/{ratioID}", h.handleGet)
		r.With(middleware.RequireCapability(menuKey, auth.ActionCreate, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequireCapability(menuKey, auth.ActionUpdate, h.Perms)).Put("/{ratioID}", h.handleUpdate)
		r.With(middleware.RequireCapability(menuKey, auth.ActionDelete, h.Perms)).Delete("/{ratioID}", h.handleDelete)
	})
}

func filterFromQuery(q shared.ListQuery) fuel.ListFilter {
	return fuel.ListFilter{
		UnitCode: q.Filters.Get("unit"),
		Operator: q.Filters.Get("operator"),
		Shift:    q.Filters.Get("shift"),
		From:     shared.ParseDatePtr(q.Filters.Get("from")),
		To:       shared.ParseDatePtr(q.Filters.Get("to")),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := shared.ParseListQuery(r, 10, 100, "unit", "operator", "shift", "from", "to")

	ratios, total, err := h.Store.List(r.Context(), filterFromQuery(q), q.OrderBy(fuel.SortColumns, "start_fill_at"), q.Limit, q.Offset())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fuel_list_failed", "failed to list fuel ratios", requestID)
		return
	}

	rows := make([]fuel.SummaryRow, 0, len(ratios))
	for _, ratio := range ratios {
		rows = append(rows, fuel.Summarize(ratio))
	}

	totalPages := q.TotalPages(total)
	api.Success(w, api.ListEnvelope{
		Rows:       rows,
		TotalPages: totalPages,
		Page:       q.Page,
		PageWindow: shared.PageWindow(q.Page, totalPages),
	}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ratio, err := h.Store.Get(r.Context(), chi.URLParam(r, "ratioID"))
	if errors.Is(err, fuel.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "fuel_not_found", "fuel ratio not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fuel_get_failed", "failed to load fuel ratio", requestID)
		return
	}
	api.Success(w, fuel.Summarize(ratio), requestID)
}

// ratioPayload carries the raw form values the dashboard submits; everything
// is validated and parsed here before it becomes a typed record.
type ratioPayload struct {
	UnitCode       string `json:"unitCode"`
	UnitType       string `json:"unitType"`
	Operator       string `json:"operator"`
	Shift          string `json:"shift"`
	StartHourMeter string `json:"startHourMeter"`
	EndHourMeter   string `json:"endHourMeter"`
	StartFillAt    string `json:"startFillAt"`
	EndFillAt      string `json:"endFillAt"`
	RefillLiters   string `json:"refillLiters"`
	ToleranceLower string `json:"toleranceLower"`
	ToleranceUpper string `json:"toleranceUpper"`
}

func (p ratioPayload) get(field string) string {
	switch field {
	case "unitCode":
		return p.UnitCode
	case "unitType":
		return p.UnitType
	case "operator":
		return p.Operator
	case "shift":
		return p.Shift
	case "startHourMeter":
		return p.StartHourMeter
	case "endHourMeter":
		return p.EndHourMeter
	case "startFillAt":
		return p.StartFillAt
	case "endFillAt":
		return p.EndFillAt
	case "refillLiters":
		return p.RefillLiters
	case "toleranceLower":
		return p.ToleranceLower
	case "toleranceUpper":
		return p.ToleranceUpper
	}
	return ""
}

var ratioSchema = shared.Schema{
	{Field: "unitCode", Required: true, MaxLen: 32},
	{Field: "unitType", MaxLen: 64},
	{Field: "operator", Required: true, MaxLen: 128},
	{Field: "shift", Required: true, Enum: []string{fuel.ShiftDay, fuel.ShiftNight}},
	{Field: "startHourMeter", Required: true, Positive: true},
	{Field: "endHourMeter", Numeric: true},
	{Field: "startFillAt", Required: true, Date: true},
	{Field: "endFillAt", Date: true},
	{Field: "refillLiters", Required: true, Positive: true},
	{Field: "toleranceLower", Required: true, Positive: true},
	{Field: "toleranceUpper", Required: true, Positive: true},
}

func (p ratioPayload) toRatio(v *shared.Validator) fuel.Ratio {
	ratio := fuel.Ratio{
		UnitCode: p.UnitCode,
		UnitType: p.UnitType,
		Operator: p.Operator,
		Shift:    p.Shift,
	}
	ratio.StartHourMeter, _ = strconv.ParseFloat(p.StartHourMeter, 64)
	ratio.RefillLiters, _ = strconv.ParseFloat(p.RefillLiters, 64)
	ratio.ToleranceLower, _ = strconv.ParseFloat(p.ToleranceLower, 64)
	ratio.ToleranceUpper, _ = strconv.ParseFloat(p.ToleranceUpper, 64)
	if p.EndHourMeter != "" {
		end, _ := strconv.ParseFloat(p.EndHourMeter, 64)
		ratio.EndHourMeter = &end
	}
	ratio.StartFillAt = shared.ParseDatePtr(p.StartFillAt)
	ratio.EndFillAt = shared.ParseDatePtr(p.EndFillAt)

	if ratio.ToleranceUpper < ratio.ToleranceLower {
		v.Add("toleranceUpper", "must be greater than or equal to toleranceLower")
	}
	if ratio.EndHourMeter != nil && *ratio.EndHourMeter <= ratio.StartHourMeter {
		v.Add("endHourMeter", "must be greater than startHourMeter")
	}
	if ratio.StartFillAt != nil && ratio.EndFillAt != nil {
		v.DateOrder("startFillAt", *ratio.StartFillAt, "endFillAt", *ratio.EndFillAt)
	}
	return ratio
}

func (h *Handler) decodeRatio(w http.ResponseWriter, r *http.Request) (fuel.Ratio, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload ratioPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return fuel.Ratio{}, false
	}

	v := ratioSchema.Validate(payload.get)
	ratio := payload.toRatio(v)
	if v.Reject(w, requestID) {
		return fuel.Ratio{}, false
	}
	return ratio, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ratio, ok := h.decodeRatio(w, r)
	if !ok {
		return
	}
	created, err := h.Store.Create(r.Context(), ratio)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fuel_create_failed", "failed to create fuel ratio", requestID)
		return
	}
	api.Created(w, fuel.Summarize(created), requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ratio, ok := h.decodeRatio(w, r)
	if !ok {
		return
	}
	updated, err := h.Store.Update(r.Context(), chi.URLParam(r, "ratioID"), ratio)
	if errors.Is(err, fuel.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "fuel_not_found", "fuel ratio not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fuel_update_failed", "failed to update fuel ratio", requestID)
		return
	}
	api.Success(w, fuel.Summarize(updated), requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.Delete(r.Context(), chi.URLParam(r, "ratioID"))
	if errors.Is(err, fuel.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "fuel_not_found", "fuel ratio not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fuel_delete_failed", "failed to delete fuel ratio", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := shared.ParseListQuery(r, 10, 100, "unit", "operator", "shift", "from", "to")

	ratios, err := h.Store.ListAll(r.Context(), filterFromQuery(q))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fuel_export_failed", "failed to load fuel ratios", requestID)
		return
	}

	rows := make([]fuel.SummaryRow, 0, len(ratios))
	for _, ratio := range ratios {
		rows = append(rows, fuel.Summarize(ratio))
	}

	now := time.Now()
	book, err := report.Build(fuel.ExportSheet(rows, now))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fuel_export_failed", "failed to build export", requestID)
		return
	}
	if err := report.Send(w, book, fuel.ExportFilename(now)); err != nil {
		slog.Warn("fuel export write failed", "err", err)
	}
}
