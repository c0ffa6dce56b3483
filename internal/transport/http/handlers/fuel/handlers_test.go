package fuelhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"opsdash/internal/domain/auth"
	"opsdash/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type stubPerms struct {
	allow bool
}

func (s stubPerms) HasCapability(ctx context.Context, roleID, menuKey, action string) (bool, error) {
	return s.allow, nil
}

func newTestRouter(t *testing.T, allow bool) http.Handler {
	t.Helper()
	h := NewHandler(nil, stubPerms{allow: allow})
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(testSecret))
	router.Route("/api/v1", h.RegisterRoutes)
	return router
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", RoleID: "r1", RoleName: "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func TestCreateRequiresAuthentication(t *testing.T) {
	router := newTestRouter(t, true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fuel-ratios/", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateDeniedWithoutCapability(t *testing.T) {
	router := newTestRouter(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fuel-ratios/", strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearerToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "missing everything",
			body: `{}`,
			want: []string{"unitCode", "operator", "shift", "startHourMeter", "startFillAt", "refillLiters"},
		},
		{
			name: "bad shift and negative refill",
			body: `{"unitCode":"EX-101","operator":"Budi","shift":"siang","startHourMeter":"1200","startFillAt":"2026-03-01","refillLiters":"-5","toleranceLower":"10","toleranceUpper":"14"}`,
			want: []string{"shift", "refillLiters"},
		},
		{
			name: "end meter below start",
			body: `{"unitCode":"EX-101","operator":"Budi","shift":"day","startHourMeter":"1200","endHourMeter":"1100","startFillAt":"2026-03-01","refillLiters":"380","toleranceLower":"10","toleranceUpper":"14"}`,
			want: []string{"endHourMeter"},
		},
		{
			name: "tolerance inverted",
			body: `{"unitCode":"EX-101","operator":"Budi","shift":"day","startHourMeter":"1200","startFillAt":"2026-03-01","refillLiters":"380","toleranceLower":"14","toleranceUpper":"10"}`,
			want: []string{"toleranceUpper"},
		},
	}

	router := newTestRouter(t, true)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/fuel-ratios/", strings.NewReader(tc.body))
			req.Header.Set("Authorization", bearerToken(t))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}

			var envelope struct {
				Error struct {
					Code    string `json:"code"`
					Details struct {
						Fields []struct {
							Field string `json:"field"`
						} `json:"fields"`
					} `json:"details"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if envelope.Error.Code != "validation_error" {
				t.Fatalf("error code = %q, want validation_error", envelope.Error.Code)
			}

			got := map[string]bool{}
			for _, issue := range envelope.Error.Details.Fields {
				got[issue.Field] = true
			}
			for _, field := range tc.want {
				if !got[field] {
					t.Errorf("missing issue for field %q, got %v", field, got)
				}
			}
		})
	}
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	router := newTestRouter(t, true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fuel-ratios/", strings.NewReader(`{not json`))
	req.Header.Set("Authorization", bearerToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_payload") {
		t.Fatalf("body = %s, want invalid_payload", rec.Body.String())
	}
}
