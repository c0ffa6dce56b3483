package assethandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"opsdash/internal/domain/asset"
	"opsdash/internal/domain/auth"
	"opsdash/internal/report"
	"opsdash/internal/transport/http/api"
	"opsdash/internal/transport/http/middleware"
	"opsdash/internal/transport/http/shared"
)

const menuKey = "assets"

type Handler struct {
	Store *asset.Store
	Perms middleware.CapabilityStore
}

func NewHandler(store *asset.Store, perms middleware.CapabilityStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assets", func(r chi.Router) {
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/monthly", h.handleMonthly)
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/export", h.handleExport)
		r.With(middleware.RequireCapability(menuKey, auth.ActionRead, h.Perms)).Get("/{assetID}", h.handleGet)
		r.With(middleware.RequireCapability(menuKey, auth.ActionCreate, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequireCapability(menuKey, auth.ActionUpdate, h.Perms)).Put("/{assetID}", h.handleUpdate)
		r.With(middleware.RequireCapability(menuKey, auth.ActionDelete, h.Perms)).Delete("/{assetID}", h.handleDelete)
		r.With(middleware.RequireCapability(menuKey, auth.ActionUpdate, h.Perms)).Post("/{assetID}/movements", h.handleRecordMovement)
	})
}

func filterFromQuery(q shared.ListQuery) asset.ListFilter {
	return asset.ListFilter{
		Code:        q.Filters.Get("code"),
		Category:    q.Filters.Get("category"),
		SizeVariant: q.Filters.Get("size"),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := shared.ParseListQuery(r, 10, 100, "code", "category", "size")

	assets, total, err := h.Store.List(r.Context(), filterFromQuery(q), q.OrderBy(asset.SortColumns, "code"), q.Limit, q.Offset())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "asset_list_failed", "failed to list assets", requestID)
		return
	}

	totalPages := q.TotalPages(total)
	api.Success(w, api.ListEnvelope{
		Rows:       assets,
		TotalPages: totalPages,
		Page:       q.Page,
		PageWindow: shared.PageWindow(q.Page, totalPages),
	}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	a, err := h.Store.Get(r.Context(), chi.URLParam(r, "assetID"))
	if errors.Is(err, asset.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "asset_not_found", "asset not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "asset_get_failed", "failed to load asset", requestID)
		return
	}
	api.Success(w, a, requestID)
}

type assetPayload struct {
	Code        string `json:"code"`
	Category    string `json:"category"`
	SizeVariant string `json:"sizeVariant"`
	StockCount  string `json:"stockCount"`
}

func (p assetPayload) get(field string) string {
	switch field {
	case "code":
		return p.Code
	case "category":
		return p.Category
	case "sizeVariant":
		return p.SizeVariant
	case "stockCount":
		return p.StockCount
	}
	return ""
}

var assetSchema = shared.Schema{
	{Field: "code", Required: true, MaxLen: 32},
	{Field: "category", Required: true, MaxLen: 64},
	{Field: "sizeVariant", MaxLen: 32},
	{Field: "stockCount", Required: true, Numeric: true},
}

func (h *Handler) decodeAsset(w http.ResponseWriter, r *http.Request) (asset.Asset, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload assetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return asset.Asset{}, false
	}

	v := assetSchema.Validate(payload.get)
	stock, err := strconv.Atoi(payload.StockCount)
	if err != nil {
		v.Add("stockCount", "must be a whole number")
	} else if stock < 0 {
		v.Add("stockCount", "must not be negative")
	}
	if v.Reject(w, requestID) {
		return asset.Asset{}, false
	}

	return asset.Asset{
		Code:        payload.Code,
		Category:    payload.Category,
		SizeVariant: payload.SizeVariant,
		StockCount:  stock,
	}, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	a, ok := h.decodeAsset(w, r)
	if !ok {
		return
	}
	created, err := h.Store.Create(r.Context(), a)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "asset_create_failed", "failed to create asset", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	a, ok := h.decodeAsset(w, r)
	if !ok {
		return
	}
	updated, err := h.Store.Update(r.Context(), chi.URLParam(r, "assetID"), a)
	if errors.Is(err, asset.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "asset_not_found", "asset not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "asset_update_failed", "failed to update asset", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.Delete(r.Context(), chi.URLParam(r, "assetID"))
	if errors.Is(err, asset.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "asset_not_found", "asset not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "asset_delete_failed", "failed to delete asset", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

type movementPayload struct {
	Period   string `json:"period"`
	Inbound  string `json:"inbound"`
	Outbound string `json:"outbound"`
	Note     string `json:"note"`
}

func (p movementPayload) get(field string) string {
	switch field {
	case "period":
		return p.Period
	case "inbound":
		return p.Inbound
	case "outbound":
		return p.Outbound
	case "note":
		return p.Note
	}
	return ""
}

var movementSchema = shared.Schema{
	{Field: "period", Required: true, Date: true},
	{Field: "inbound", Numeric: true},
	{Field: "outbound", Numeric: true},
	{Field: "note", MaxLen: 256},
}

// parseCount reads an optional quantity field. Counts are whole units, so a
// fractional value is rejected rather than truncated.
func parseCount(v *shared.Validator, field, value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		v.Add(field, "must be a whole number")
		return 0
	}
	if n < 0 {
		v.Add(field, "must not be negative")
		return 0
	}
	return n
}

func (h *Handler) handleRecordMovement(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload movementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := movementSchema.Validate(payload.get)
	inbound := parseCount(v, "inbound", payload.Inbound)
	outbound := parseCount(v, "outbound", payload.Outbound)
	if inbound == 0 && outbound == 0 {
		v.Add("inbound", "at least one of inbound or outbound is required")
	}
	if v.Reject(w, requestID) {
		return
	}

	period, _ := shared.ParseDate(payload.Period)
	movement, err := h.Store.RecordMovement(r.Context(), asset.Movement{
		AssetID:  chi.URLParam(r, "assetID"),
		Period:   period,
		Inbound:  inbound,
		Outbound: outbound,
		Note:     payload.Note,
	})
	if errors.Is(err, asset.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "asset_not_found", "asset not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "asset_movement_failed", "failed to record stock movement", requestID)
		return
	}
	api.Created(w, movement, requestID)
}

// parseMonth reads a `month` query value (YYYY-MM), defaulting to the
// current month.
func parseMonth(raw string, now time.Time) time.Time {
	if raw == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if parsed, err := time.Parse("2006-01", raw); err == nil {
		return parsed
	}
	if parsed, err := shared.ParseDate(raw); err == nil {
		return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month := parseMonth(r.URL.Query().Get("month"), time.Now())

	rows, err := h.Store.ListMonthly(r.Context(), month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "asset_monthly_failed", "failed to load monthly stock report", requestID)
		return
	}
	api.Success(w, map[string]any{
		"month": month.Format("2006-01"),
		"rows":  rows,
	}, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month := parseMonth(r.URL.Query().Get("month"), time.Now())

	rows, err := h.Store.ListMonthly(r.Context(), month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "asset_export_failed", "failed to load monthly stock report", requestID)
		return
	}

	book, err := report.Build(asset.ExportSheet(rows, month))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "asset_export_failed", "failed to build export", requestID)
		return
	}
	if err := report.Send(w, book, asset.ExportFilename(month)); err != nil {
		slog.Warn("asset export write failed", "err", err)
	}
}
