package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/tournament-dashboard/internal/config"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

func sampleConfig() config.Config {
	return config.Config{
		AppEnv:                 config.EnvDev,
		ServiceName:            "tournament-dashboard-api",
		HTTPAddr:               ":0",
		ReadTimeout:            time.Second,
		WriteTimeout:           time.Second,
		CORSAllowedOrigins:     []string{"*"},
		DataSource:             config.DataSourceFile,
		DataDir:                "../../data",
		DataLoadMaxAttempts:    1,
		DataLoadInitialBackoff: time.Millisecond,
		DataLoadMaxBackoff:     time.Millisecond,
		StatsWorkers:           4,
		CacheEnabled:           true,
		CacheBackend:           config.CacheBackendMemory,
		CacheTTL:               time.Minute,
		InternalJobToken:       "secret",
	}
}

type standingsBody struct {
	Data []struct {
		Group string `json:"group"`
		Teams []struct {
			Position int    `json:"position"`
			TeamName string `json:"team_name"`
			Points   int    `json:"points"`
		} `json:"teams"`
	} `json:"data"`
}

func TestNewHTTPServer_ServesSampleDataset(t *testing.T) {
	a, err := NewHTTPServer(context.Background(), sampleConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("close app: %v", err)
		}
	})

	result, err := a.Datasets.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload sample dataset: %v", err)
	}
	if result.Teams != 8 || result.Fixtures != 8 || result.DanglingReferences != 0 {
		t.Fatalf("unexpected reload result: %+v", result)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/standings", nil)
	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var body standingsBody
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode standings: %v", err)
	}
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(body.Data))
	}

	want := map[string][]string{
		"A": {"Morocco", "Mali", "Zambia", "Comoros"},
		// Angola and Zimbabwe tie on points, goal difference and goals for.
		"B": {"Egypt", "South Africa", "Angola", "Zimbabwe"},
	}
	for _, group := range body.Data {
		names := make([]string, 0, len(group.Teams))
		for _, row := range group.Teams {
			names = append(names, row.TeamName)
		}
		if !slices.Equal(names, want[group.Group]) {
			t.Fatalf("group %s order: got %v want %v", group.Group, names, want[group.Group])
		}
	}
	if body.Data[0].Teams[0].Points != 4 || body.Data[1].Teams[0].Points != 6 {
		t.Fatalf("unexpected leader points: A=%d B=%d", body.Data[0].Teams[0].Points, body.Data[1].Teams[0].Points)
	}
}

func TestNewHTTPServer_RejectsEmptyAddr(t *testing.T) {
	cfg := sampleConfig()
	cfg.HTTPAddr = ""
	if _, err := NewHTTPServer(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestNewHTTPServer_CacheDisabled(t *testing.T) {
	cfg := sampleConfig()
	cfg.CacheEnabled = false

	a, err := NewHTTPServer(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer func() {
		_ = a.Close()
	}()

	if _, err := a.Datasets.Reload(context.Background()); err != nil {
		t.Fatalf("reload sample dataset: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/stats?teams=1", nil)
	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
}
