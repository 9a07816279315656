package content

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

const validScenarioJSON = `{
	"id": "lottery_scam",
	"title": "Lottery Scam",
	"description": "desc",
	"category_id": "financial_fraud",
	"contact_name": "Subrat",
	"tag": "lottery",
	"messages": [
		{"id": "msg1", "sender": "contact", "content": "You've won!"}
	],
	"options": [
		{"id": "opt1", "text": "Click it", "is_correct": false},
		{"id": "opt2", "text": "Ignore it", "is_correct": true}
	],
	"outcomes": [
		{"id": "out1", "title": "Unsafe Choice!", "is_correct": false},
		{"id": "out2", "title": "Safe Choice!", "is_correct": true}
	]
}`

const secondScenarioJSON = `{
	"id": "job_offer_scam",
	"title": "Job Offer Scam",
	"description": "desc",
	"category_id": "employment_fraud",
	"contact_name": "HR Priya",
	"tag": "job_offer",
	"messages": [
		{"id": "msg1", "sender": "contact", "content": "Earn from home!"}
	],
	"options": [
		{"id": "opt1", "text": "Pay the fee", "is_correct": false},
		{"id": "opt2", "text": "Block the number", "is_correct": true}
	],
	"outcomes": [
		{"id": "out1", "title": "Unsafe Choice!", "is_correct": false},
		{"id": "out2", "title": "Safe Choice!", "is_correct": true}
	]
}`

func writeTestContent(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	scenarioDir := filepath.Join(dir, "scenarios")
	if err := os.MkdirAll(scenarioDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range scenarios {
		if err := os.WriteFile(filepath.Join(scenarioDir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	categories := `[{"id": "financial_fraud", "name": "Financial Fraud", "description": "d", "risk_level": "high", "tag": "investment"}]`
	if err := os.WriteFile(filepath.Join(dir, "categories.json"), []byte(categories), 0o644); err != nil {
		t.Fatal(err)
	}
	resources := `[{"id": "res1", "title": "Helpline", "description": "d", "type": "link", "url": "https://cybercrime.gov.in", "source": "MHA"}]`
	if err := os.WriteFile(filepath.Join(dir, "resources.json"), []byte(resources), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad_PreservesFileOrder(t *testing.T) {
	dir := writeTestContent(t, map[string]string{
		"01_lottery_scam.json":   validScenarioJSON,
		"02_job_offer_scam.json": secondScenarioJSON,
	})

	repo, err := Load(dir, testLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	scenarios := repo.ListScenarios()
	if len(scenarios) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(scenarios))
	}
	if scenarios[0].ID != "lottery_scam" || scenarios[1].ID != "job_offer_scam" {
		t.Errorf("Load order not preserved: %s, %s", scenarios[0].ID, scenarios[1].ID)
	}
	if repo.TotalScenarios() != 2 {
		t.Errorf("Expected total 2, got %d", repo.TotalScenarios())
	}
}

func TestLoad_FailsFastOnInvalidScenario(t *testing.T) {
	broken := `{"id": "broken", "title": "Broken", "contact_name": "X", "tag": "message", "messages": [], "options": [], "outcomes": []}`
	dir := writeTestContent(t, map[string]string{"01_broken.json": broken})

	if _, err := Load(dir, testLogger()); err == nil {
		t.Fatal("Expected load to fail on invalid scenario")
	}
}

func TestLoad_FailsOnDuplicateID(t *testing.T) {
	dir := writeTestContent(t, map[string]string{
		"01_a.json": validScenarioJSON,
		"02_b.json": validScenarioJSON,
	})

	if _, err := Load(dir, testLogger()); err == nil {
		t.Fatal("Expected load to fail on duplicate scenario id")
	}
}

func TestRepository_GetScenario(t *testing.T) {
	dir := writeTestContent(t, map[string]string{"01_lottery_scam.json": validScenarioJSON})
	repo, err := Load(dir, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	s, err := repo.GetScenario("lottery_scam")
	if err != nil {
		t.Fatalf("Expected scenario, got error: %v", err)
	}
	if s.Title != "Lottery Scam" {
		t.Errorf("Expected title 'Lottery Scam', got %q", s.Title)
	}

	_, err = repo.GetScenario("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRepository_ListScenariosByCategory(t *testing.T) {
	dir := writeTestContent(t, map[string]string{
		"01_lottery_scam.json":   validScenarioJSON,
		"02_job_offer_scam.json": secondScenarioJSON,
	})
	repo, err := Load(dir, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	financial := repo.ListScenariosByCategory("financial_fraud")
	if len(financial) != 1 || financial[0].ID != "lottery_scam" {
		t.Errorf("Unexpected category filter result: %v", financial)
	}
	if got := repo.ListScenariosByCategory("unknown"); len(got) != 0 {
		t.Errorf("Expected no scenarios for unknown category, got %d", len(got))
	}
}

func TestRepository_CategoriesAndResources(t *testing.T) {
	dir := writeTestContent(t, map[string]string{"01_lottery_scam.json": validScenarioJSON})
	repo, err := Load(dir, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	if len(repo.ListCategories()) != 1 {
		t.Errorf("Expected 1 category, got %d", len(repo.ListCategories()))
	}
	c, err := repo.GetCategory("financial_fraud")
	if err != nil || c.Name != "Financial Fraud" {
		t.Errorf("Unexpected category: %+v, %v", c, err)
	}
	if _, err := repo.GetCategory("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if len(repo.ListResources()) != 1 {
		t.Errorf("Expected 1 resource, got %d", len(repo.ListResources()))
	}
}

func TestLoad_ShippedContent(t *testing.T) {
	// The repo's own data directory must always load cleanly.
	repo, err := Load("../../data", testLogger())
	if err != nil {
		t.Fatalf("Shipped content failed to load: %v", err)
	}
	if repo.TotalScenarios() < 5 {
		t.Errorf("Expected at least 5 shipped scenarios, got %d", repo.TotalScenarios())
	}
	for _, s := range repo.ListScenarios() {
		if _, err := repo.GetCategory(s.CategoryID); err != nil {
			t.Errorf("Scenario %s references unknown category %s", s.ID, s.CategoryID)
		}
	}
}
