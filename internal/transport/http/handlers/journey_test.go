package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"opsdash/internal/app/server"
	"opsdash/internal/platform/config"
	"opsdash/internal/platform/db"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func newTestApp(t *testing.T) (*server.App, *httptest.Server, config.Config) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		DatabaseURL:       dbURL,
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		Environment:       "test",
		MaxBodyBytes:      1048576,
		MigrationsDir:     "../../../../migrations",
		SeedAdminEmail:    "admin@test.local",
		SeedAdminPassword: "ChangeMe123!",
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(ctx, pool, cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}

	app := server.New(cfg, pool)
	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts, cfg
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any, wantStatus int) json.RawMessage {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d (body %s)", method, url, resp.StatusCode, wantStatus, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, raw)
	}
	return env.Data
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	data := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "",
		map[string]string{"email": email, "password": password}, http.StatusOK)

	var out struct {
		Token string `json:"token"`
		Menus []struct {
			Key string `json:"key"`
		} `json:"menus"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if out.Token == "" {
		t.Fatal("expected login token")
	}
	if len(out.Menus) == 0 {
		t.Fatal("expected seeded menu tree")
	}
	return out.Token
}

func TestAdminJourney(t *testing.T) {
	_, ts, cfg := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	// Employee lifecycle.
	number := fmt.Sprintf("EMP-%d", time.Now().UnixNano())
	data := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/employees/", token, map[string]string{
		"employeeNumber": number,
		"fullName":       "Budi Santoso",
		"placement":      "Site A",
		"position":       "Operator",
		"department":     "Produksi",
		"joinDate":       "2024-01-15",
		"status":         "active",
	}, http.StatusCreated)

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("decode employee: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected employee id")
	}

	doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/employees/"+created.ID+"/tax-record", token, map[string]string{
		"npwp":         "01.234.567.8-999.000",
		"taxStatus":    "K1",
		"bpjsHealthNo": "0001",
	}, http.StatusOK)

	contractData := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/employees/"+created.ID+"/contracts", token, map[string]string{
		"startDate":    "2024-01-15",
		"endDate":      "2024-04-14",
		"placement":    "Site A",
		"contractType": "PKWT",
	}, http.StatusCreated)

	var contract struct {
		DurationMonths *int `json:"durationMonths"`
	}
	if err := json.Unmarshal(contractData, &contract); err != nil {
		t.Fatalf("decode contract: %v", err)
	}
	if contract.DurationMonths == nil || *contract.DurationMonths != 3 {
		t.Fatalf("contract duration = %v, want 3", contract.DurationMonths)
	}

	detailData := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees/"+created.ID+"/", token, nil, http.StatusOK)
	var detail struct {
		TaxRecord *struct {
			NPWP string `json:"npwp"`
		} `json:"taxRecord"`
		Contracts []any `json:"contracts"`
		IDCard    any   `json:"idCard"`
	}
	if err := json.Unmarshal(detailData, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.TaxRecord == nil || detail.TaxRecord.NPWP != "01.234.567.8-999.000" {
		t.Fatalf("detail tax record = %+v", detail.TaxRecord)
	}
	if len(detail.Contracts) != 1 {
		t.Fatalf("detail contracts = %d, want 1", len(detail.Contracts))
	}
	if detail.IDCard != nil {
		t.Fatal("expected absent id card section to stay null")
	}

	listData := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees/?name=Budi", token, nil, http.StatusOK)
	var list struct {
		TotalPages int   `json:"total_pages"`
		Page       int   `json:"page"`
		PageWindow []int `json:"page_window"`
	}
	if err := json.Unmarshal(listData, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Page != 1 || list.TotalPages < 1 {
		t.Fatalf("list paging = %+v", list)
	}
	if len(list.PageWindow) == 0 || list.PageWindow[0] != 1 {
		t.Fatalf("page window = %v", list.PageWindow)
	}

	// Fuel ratio round trip with derived rate and band.
	fuelData := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/fuel-ratios/", token, map[string]string{
		"unitCode":       "EX-101",
		"unitType":       "Excavator",
		"operator":       "Budi Santoso",
		"shift":          "day",
		"startHourMeter": "1200",
		"endHourMeter":   "1230.5",
		"startFillAt":    "2026-03-01",
		"endFillAt":      "2026-03-02",
		"refillLiters":   "380",
		"toleranceLower": "10",
		"toleranceUpper": "14",
	}, http.StatusCreated)

	var ratio struct {
		ID              string   `json:"id"`
		ConsumptionRate *float64 `json:"consumptionRate"`
		Band            string   `json:"band"`
	}
	if err := json.Unmarshal(fuelData, &ratio); err != nil {
		t.Fatalf("decode ratio: %v", err)
	}
	if ratio.ConsumptionRate == nil || *ratio.ConsumptionRate != 12.46 {
		t.Fatalf("consumption rate = %v, want 12.46", ratio.ConsumptionRate)
	}
	if ratio.Band != "within_tolerance" {
		t.Fatalf("band = %q, want within_tolerance", ratio.Band)
	}

	assertExport(t, client, ts.URL+"/api/v1/fuel-ratios/export", token, "Rasio_BBM_")

	// Backlog ticket with derived aging.
	backlogData := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/backlogs/", token, map[string]string{
		"unitCode":    "EX-101",
		"component":   "Hydraulic pump",
		"problem":     "Seal leaking",
		"inspectedAt": time.Now().AddDate(0, 0, -10).Format("2006-01-02"),
		"status":      "open",
	}, http.StatusCreated)

	var ticket struct {
		AgeDays int    `json:"ageDays"`
		Bucket  string `json:"bucket"`
	}
	if err := json.Unmarshal(backlogData, &ticket); err != nil {
		t.Fatalf("decode ticket: %v", err)
	}
	if ticket.AgeDays != 10 || ticket.Bucket != "6-15" {
		t.Fatalf("ticket aging = %d/%s, want 10/6-15", ticket.AgeDays, ticket.Bucket)
	}

	doJSON(t, client, http.MethodDelete, ts.URL+"/api/v1/employees/"+created.ID+"/", token, nil, http.StatusOK)
}

func assertExport(t *testing.T, client *http.Client, url, token, filenamePrefix string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("export request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("export status = %d (body %s)", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("export content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, filenamePrefix) {
		t.Fatalf("export disposition = %q, want prefix %q", cd, filenamePrefix)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	// xlsx files are zip archives.
	if len(raw) < 4 || raw[0] != 'P' || raw[1] != 'K' {
		t.Fatal("export body is not a zip archive")
	}
}
