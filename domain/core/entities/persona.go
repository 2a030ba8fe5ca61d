package entities

import "time"

// Persona is an AI assistant profile. Replies are templated strings picked
// from the persona's response set; there is no model backend.
type Persona struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Specialty string   `json:"specialty"`
	Greeting  string   `json:"greeting"`
	Color     string   `json:"color"`
	Responses []string `json:"-"`

	// KeywordReplies maps a lowercase keyword to a canned reply, checked
	// before the rotating fallback responses.
	KeywordReplies map[string]string `json:"-"`
}

// MessageRole identifies the author side of a chat message
type MessageRole string

const (
	MessageRoleUser    MessageRole = "user"
	MessageRolePersona MessageRole = "persona"
)

// Message is one entry in a persona's chat log
type Message struct {
	ID        string      `json:"id"`
	PersonaID string      `json:"personaId"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}
