package scenario

// Sender identifies who authored a message in the scripted conversation.
type Sender string

const (
	SenderContact Sender = "contact" // the (possibly fraudulent) contact
	SenderUser    Sender = "user"    // the simulated user's own replies
	SenderSystem  Sender = "system"  // reserved for annotations, never rendered
)

// Attachment describes a file attached to a message, e.g. an APK or image.
type Attachment struct {
	Type string `json:"type"` // e.g. "apk", "image", "pdf"
	Name string `json:"name"` // display name, e.g. "prize_claim.apk"
}

// Message is a single entry in a scenario's scripted transcript.
// Authoring order is conversational order and must be preserved.
type Message struct {
	ID         string      `json:"id"`
	Sender     Sender      `json:"sender"`
	Content    string      `json:"content"`
	Timestamp  string      `json:"timestamp,omitempty"` // display-only, e.g. "11:03 AM"
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Option is one of the decision choices offered after the transcript.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"` // true when choosing it is the safe decision
}

// Outcome is the result shown for a decision. A scenario carries at most
// one outcome per correctness value.
type Outcome struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"` // e.g. "Safe Choice!" / "Unsafe Choice!"
	Description string   `json:"description"`
	IsCorrect   bool     `json:"is_correct"`
	Explanation []string `json:"explanation"` // ordered bullet points
	Advice      string   `json:"advice"`
}

// Scenario is one self-contained simulated conversation with a decision
// point and scored outcome. Scenarios are authored statically, loaded once
// and immutable for the life of the process.
type Scenario struct {
	ID            string     `json:"id"`             // stable unique ID, e.g. "lottery_scam"
	Title         string     `json:"title"`          // e.g. "Lottery Scam"
	Description   string     `json:"description"`    // short blurb shown on the scenario card
	CategoryID    string     `json:"category_id"`    // reference to a Category
	ContactName   string     `json:"contact_name"`   // display name of the chat contact
	ContactStatus string     `json:"contact_status"` // e.g. "online", "last seen today"
	Tag           ContentTag `json:"tag"`            // presentation tag for the scenario card
	Messages      []Message  `json:"messages"`       // ordered transcript, length >= 1
	Options       []Option   `json:"options"`        // 2-4 decision choices
	Outcomes      []Outcome  `json:"outcomes"`       // at most one per correctness value
}

// Category groups scenarios by scam family.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	RiskLevel   string     `json:"risk_level"` // e.g. "high", "medium"
	Tag         ContentTag `json:"tag"`
}

// Resource is an external educational reference (article, video, helpline).
type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"` // "video", "article", "link"
	URL         string `json:"url"`
	Source      string `json:"source"`
}

// Transcript returns the messages that should be rendered, excluding
// system-sender entries.
func (s *Scenario) Transcript() []Message {
	out := make([]Message, 0, len(s.Messages))
	for _, m := range s.Messages {
		if m.Sender == SenderSystem {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FinalMessage returns the last renderable message of the transcript.
// It is the message whose dwell time gates the decision options.
func (s *Scenario) FinalMessage() (Message, bool) {
	t := s.Transcript()
	if len(t) == 0 {
		return Message{}, false
	}
	return t[len(t)-1], true
}

// OutcomeFor returns the first outcome in authored order whose correctness
// matches the given value.
func (s *Scenario) OutcomeFor(isCorrect bool) (Outcome, bool) {
	for _, o := range s.Outcomes {
		if o.IsCorrect == isCorrect {
			return o, true
		}
	}
	return Outcome{}, false
}
