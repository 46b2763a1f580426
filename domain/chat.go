package domain

import "time"

// LastMessage is the chat-list preview of the most recent message.
type LastMessage struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Message is a single chat entry. Delivery is out of scope, so chats only
// carry the append-only shell of this type.
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Chat links two distinct users. The pair is unordered for identity purposes,
// but User1ID records the creator.
type Chat struct {
	ID          string       `json:"id"`
	User1ID     string       `json:"user1_id"`
	User2ID     string       `json:"user2_id"`
	CreatedAt   time.Time    `json:"created_at"`
	LastMessage *LastMessage `json:"last_message,omitempty"`
	Messages    []Message    `json:"messages"`
	UnreadCount int          `json:"unread_count"`
}

func NewChat(id string, creator, other User, createdAt time.Time) Chat {
	return Chat{
		ID:        id,
		User1ID:   creator.ID,
		User2ID:   other.ID,
		CreatedAt: createdAt,
		Messages:  []Message{},
	}
}

// Involves reports whether the user participates in the chat.
func (c Chat) Involves(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// SamePair reports whether the chat joins exactly the given unordered pair.
func (c Chat) SamePair(a, b string) bool {
	return (c.User1ID == a && c.User2ID == b) || (c.User1ID == b && c.User2ID == a)
}

// OtherID returns the participant that is not selfID. The second return is
// false when selfID is not a participant at all.
func (c Chat) OtherID(selfID string) (string, bool) {
	switch selfID {
	case c.User1ID:
		return c.User2ID, true
	case c.User2ID:
		return c.User1ID, true
	}
	return "", false
}

// ActivityAt is the sort key for the chat list: the last message timestamp
// when present, the creation time otherwise.
func (c Chat) ActivityAt() time.Time {
	if c.LastMessage != nil {
		return c.LastMessage.Timestamp
	}
	return c.CreatedAt
}
