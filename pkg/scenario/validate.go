package scenario

import (
	"fmt"
	"regexp"
	"strings"
)

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

const (
	minOptions = 2
	maxOptions = 4
)

// Validate checks the authoring invariants of a scenario. It is called at
// content-load time; a scenario that fails validation must not be served.
// Invariants checked:
//   - IDs are lowercase snake_case and unique within their collection
//   - at least one renderable (non-system) message
//   - 2-4 options
//   - every option correctness value has a matching outcome
//   - at most one outcome per correctness value
func (s *Scenario) Validate() error {
	var errs []string

	if !idPattern.MatchString(s.ID) {
		errs = append(errs, fmt.Sprintf("scenario id %q must be lowercase snake_case", s.ID))
	}
	if s.Title == "" {
		errs = append(errs, "title is required")
	}
	if s.ContactName == "" {
		errs = append(errs, "contact_name is required")
	}
	if !s.Tag.Valid() {
		errs = append(errs, fmt.Sprintf("unknown content tag %q", s.Tag))
	}

	if len(s.Transcript()) == 0 {
		errs = append(errs, "at least one renderable message is required")
	}
	seenMsg := make(map[string]struct{}, len(s.Messages))
	for i, m := range s.Messages {
		if m.ID == "" {
			errs = append(errs, fmt.Sprintf("message %d: id is required", i))
		} else if _, dup := seenMsg[m.ID]; dup {
			errs = append(errs, fmt.Sprintf("message %d: duplicate id %q", i, m.ID))
		} else {
			seenMsg[m.ID] = struct{}{}
		}
		switch m.Sender {
		case SenderContact, SenderUser, SenderSystem:
		default:
			errs = append(errs, fmt.Sprintf("message %d: unknown sender %q", i, m.Sender))
		}
		if m.Content == "" {
			errs = append(errs, fmt.Sprintf("message %d: content is required", i))
		}
	}

	if len(s.Options) < minOptions || len(s.Options) > maxOptions {
		errs = append(errs, fmt.Sprintf("expected %d-%d options, got %d", minOptions, maxOptions, len(s.Options)))
	}
	seenOpt := make(map[string]struct{}, len(s.Options))
	for i, o := range s.Options {
		if o.ID == "" {
			errs = append(errs, fmt.Sprintf("option %d: id is required", i))
		} else if _, dup := seenOpt[o.ID]; dup {
			errs = append(errs, fmt.Sprintf("option %d: duplicate id %q", i, o.ID))
		} else {
			seenOpt[o.ID] = struct{}{}
		}
		if o.Text == "" {
			errs = append(errs, fmt.Sprintf("option %d: text is required", i))
		}
	}

	outcomesByCorrectness := make(map[bool]int, 2)
	for i, o := range s.Outcomes {
		if o.ID == "" {
			errs = append(errs, fmt.Sprintf("outcome %d: id is required", i))
		}
		if o.Title == "" {
			errs = append(errs, fmt.Sprintf("outcome %d: title is required", i))
		}
		outcomesByCorrectness[o.IsCorrect]++
	}
	for correctness, n := range outcomesByCorrectness {
		if n > 1 {
			errs = append(errs, fmt.Sprintf("multiple outcomes with is_correct=%t", correctness))
		}
	}

	// Every option must be resolvable to an outcome. Scenarios with only
	// correct options may legitimately carry a single outcome.
	for i, o := range s.Options {
		if _, ok := s.OutcomeFor(o.IsCorrect); !ok {
			errs = append(errs, fmt.Sprintf("option %d (%q): no outcome with is_correct=%t", i, o.ID, o.IsCorrect))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario %q: %s", s.ID, strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks a category definition.
func (c *Category) Validate() error {
	var errs []string
	if !idPattern.MatchString(c.ID) {
		errs = append(errs, fmt.Sprintf("category id %q must be lowercase snake_case", c.ID))
	}
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if !c.Tag.Valid() {
		errs = append(errs, fmt.Sprintf("unknown content tag %q", c.Tag))
	}
	if len(errs) > 0 {
		return fmt.Errorf("category %q: %s", c.ID, strings.Join(errs, "; "))
	}
	return nil
}
