package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scamshield/scamshield/pkg/scenario"
)

// ErrNotFound is returned when a requested content ID does not exist.
var ErrNotFound = errors.New("not found")

// Repository is the read-only content model. All content is loaded and
// validated once at startup; a scenario that fails validation aborts the
// load rather than surfacing mid-attempt.
type Repository struct {
	log        *slog.Logger
	scenarios  []*scenario.Scenario
	byID       map[string]*scenario.Scenario
	categories []scenario.Category
	resources  []scenario.Resource
}

// Load reads scenarios from dataDir/scenarios/*.json plus categories.json
// and resources.json. Scenario files are loaded in filename order so that
// authoring order is stable across platforms.
func Load(dataDir string, log *slog.Logger) (*Repository, error) {
	repo := &Repository{
		log:  log,
		byID: make(map[string]*scenario.Scenario),
	}

	scenarioDir := filepath.Join(dataDir, "scenarios")
	entries, err := os.ReadDir(scenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory %s: %w", scenarioDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	for _, name := range files {
		path := filepath.Join(scenarioDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
		}

		var s scenario.Scenario
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid scenario file %s: %w", path, err)
		}
		if _, dup := repo.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate scenario id %q in %s", s.ID, path)
		}

		sc := s
		repo.scenarios = append(repo.scenarios, &sc)
		repo.byID[s.ID] = &sc
	}

	if err := loadJSON(filepath.Join(dataDir, "categories.json"), &repo.categories); err != nil {
		return nil, err
	}
	for i := range repo.categories {
		if err := repo.categories[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid category: %w", err)
		}
	}

	if err := loadJSON(filepath.Join(dataDir, "resources.json"), &repo.resources); err != nil {
		return nil, err
	}

	log.Info("Content loaded",
		"scenarios", len(repo.scenarios),
		"categories", len(repo.categories),
		"resources", len(repo.resources))
	return repo, nil
}

func loadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Categories and resources are optional content files.
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// ListScenarios returns all scenarios in load order.
func (r *Repository) ListScenarios() []*scenario.Scenario {
	return r.scenarios
}

// GetScenario returns the scenario with the given ID, or ErrNotFound.
func (r *Repository) GetScenario(id string) (*scenario.Scenario, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("scenario %q: %w", id, ErrNotFound)
	}
	return s, nil
}

// ListScenariosByCategory returns the scenarios in a category, preserving
// load order.
func (r *Repository) ListScenariosByCategory(categoryID string) []*scenario.Scenario {
	var out []*scenario.Scenario
	for _, s := range r.scenarios {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out
}

// ListCategories returns all categories in authored order.
func (r *Repository) ListCategories() []scenario.Category {
	return r.categories
}

// GetCategory returns the category with the given ID, or ErrNotFound.
func (r *Repository) GetCategory(id string) (scenario.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return scenario.Category{}, fmt.Errorf("category %q: %w", id, ErrNotFound)
}

// ListResources returns all educational resources in authored order.
func (r *Repository) ListResources() []scenario.Resource {
	return r.resources
}

// TotalScenarios returns the number of loaded scenarios, the denominator for
// progress percentages.
func (r *Repository) TotalScenarios() int {
	return len(r.scenarios)
}
