package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scamshield/scamshield/pkg/scenario"
)

func TestScenarioHandler_List(t *testing.T) {
	h := NewScenarioHandler(testLogger(), testRepo(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/scenarios", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %s", ct)
	}

	var scenarios []scenario.Scenario
	if err := json.Unmarshal(w.Body.Bytes(), &scenarios); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(scenarios))
	}
	if scenarios[0].ID != "lottery_scam" {
		t.Errorf("Expected lottery_scam first, got %s", scenarios[0].ID)
	}
}

func TestScenarioHandler_Get(t *testing.T) {
	h := NewScenarioHandler(testLogger(), testRepo(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/scenarios/lottery_scam", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var s scenario.Scenario
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if s.Title != "Lottery Scam" {
		t.Errorf("Expected 'Lottery Scam', got %q", s.Title)
	}
	if len(s.Options) != 2 {
		t.Errorf("Expected 2 options, got %d", len(s.Options))
	}
}

func TestScenarioHandler_NotFound(t *testing.T) {
	h := NewScenarioHandler(testLogger(), testRepo(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/scenarios/missing", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestScenarioHandler_MethodNotAllowed(t *testing.T) {
	h := NewScenarioHandler(testLogger(), testRepo(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/scenarios", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}

func TestCategoryHandler_Routes(t *testing.T) {
	h := NewCategoryHandler(testLogger(), testRepo(t))

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"list categories", "/v1/categories", http.StatusOK},
		{"get category", "/v1/categories/financial_fraud", http.StatusOK},
		{"category scenarios", "/v1/categories/financial_fraud/scenarios", http.StatusOK},
		{"unknown category", "/v1/categories/missing", http.StatusNotFound},
		{"unknown subresource", "/v1/categories/financial_fraud/monsters", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("%s: expected %d, got %d", tt.path, tt.wantStatus, w.Code)
			}
		})
	}
}

func TestCategoryHandler_ScenarioFilter(t *testing.T) {
	h := NewCategoryHandler(testLogger(), testRepo(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/categories/employment_fraud/scenarios", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var scenarios []scenario.Scenario
	if err := json.Unmarshal(w.Body.Bytes(), &scenarios); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(scenarios) != 1 || scenarios[0].ID != "job_offer_scam" {
		t.Errorf("Unexpected filter result: %+v", scenarios)
	}
}

func TestResourceHandler_List(t *testing.T) {
	h := NewResourceHandler(testLogger(), testRepo(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/resources", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resources []scenario.Resource
	if err := json.Unmarshal(w.Body.Bytes(), &resources); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resources) != 1 {
		t.Errorf("Expected 1 resource, got %d", len(resources))
	}
}
