package chat

import "time"

const (
	DefaultTitle   = "New Conversation"
	titleMaxLength = 30
)

type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
	Image     string    `json:"image,omitempty"`
}

type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// Summary is a history list entry.
type Summary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

func (c *Conversation) clone() Conversation {
	out := *c
	out.Messages = append([]Message(nil), c.Messages...)
	return out
}

func (c *Conversation) summary() Summary {
	return Summary{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt, MessageCount: len(c.Messages)}
}

func (c *Conversation) hasUserMessage() bool {
	for _, m := range c.Messages {
		if m.IsUser {
			return true
		}
	}
	return false
}

// titleFrom keeps the first 30 characters of text, or the default label
// when text is empty.
func titleFrom(text string) string {
	r := []rune(text)
	if len(r) > titleMaxLength {
		r = r[:titleMaxLength]
	}
	if len(r) == 0 {
		return DefaultTitle
	}
	return string(r)
}
