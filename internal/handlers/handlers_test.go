package handlers

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/scamshield/scamshield/internal/content"
	"github.com/scamshield/scamshield/internal/services"
	"github.com/scamshield/scamshield/internal/storage"
	"github.com/scamshield/scamshield/pkg/progress"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

const lotteryJSON = `{
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

const jobOfferJSON = `{
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

// testRepo loads a two-scenario repository from a temp data dir.
func testRepo(t *testing.T) *content.Repository {
	t.Helper()

	dir := t.TempDir()
	scenarioDir := filepath.Join(dir, "scenarios")
	if err := os.MkdirAll(scenarioDir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		filepath.Join(scenarioDir, "01_lottery_scam.json"):   lotteryJSON,
		filepath.Join(scenarioDir, "02_job_offer_scam.json"): jobOfferJSON,
		filepath.Join(dir, "categories.json"): `[
			{"id": "financial_fraud", "name": "Financial Fraud", "description": "d", "risk_level": "high", "tag": "investment"},
			{"id": "employment_fraud", "name": "Employment Fraud", "description": "d", "risk_level": "high", "tag": "job_offer"}
		]`,
		filepath.Join(dir, "resources.json"): `[
			{"id": "res1", "title": "Helpline", "description": "d", "type": "link", "url": "https://cybercrime.gov.in", "source": "MHA"}
		]`,
	}
	for path, body := range files {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	repo, err := content.Load(dir, testLogger())
	if err != nil {
		t.Fatalf("Failed to load test content: %v", err)
	}
	return repo
}

func testProgressService(t *testing.T, repo *content.Repository) (*services.ProgressService, *storage.MockProgressStore) {
	t.Helper()
	store := storage.NewMockProgressStore()
	svc := services.NewProgressService(store, repo, progress.DefaultAward, testLogger())
	return svc, store
}
