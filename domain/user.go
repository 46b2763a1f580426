package domain

import (
	"strings"
	"time"
)

// AvatarPalette is the fixed set of colors a freshly created account can receive.
// The index is picked uniformly at creation time and never changes afterwards.
var AvatarPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFEEAD", "#D4A5A5", "#9B59B6", "#3498DB",
}

type Avatar struct {
	Color    string `json:"color"`
	Initials string `json:"initials"`
}

// User is a registered account or an auto-created placeholder contact.
// Placeholders carry an empty password and can never authenticate.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Password  string    `json:"password"`
	Avatar    Avatar    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser builds a user with a derived avatar. paletteIndex must be in
// [0, len(AvatarPalette)); it is reduced modulo the palette size defensively.
func NewUser(id, name, phone, password string, paletteIndex int, createdAt time.Time) User {
	if paletteIndex < 0 {
		paletteIndex = -paletteIndex
	}
	return User{
		ID:       id,
		Name:     name,
		Phone:    phone,
		Password: password,
		Avatar: Avatar{
			Color:    AvatarPalette[paletteIndex%len(AvatarPalette)],
			Initials: Initials(name),
		},
		CreatedAt: createdAt,
	}
}

// Initials derives the avatar initials from a display name: the first letters
// of the first two space-separated tokens, uppercased. A single-token name
// yields one letter, an empty name yields "?".
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "?"
	}
	if len(fields) >= 2 {
		return strings.ToUpper(firstRune(fields[0]) + firstRune(fields[1]))
	}
	return strings.ToUpper(firstRune(fields[0]))
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// PlaceholderName is the generated display name for a contact added by phone
// number before that person has registered.
func PlaceholderName(phone string) string {
	return "Пользователь " + phone
}

// IsPlaceholder reports whether the user was auto-created as a contact shell.
// Such accounts have no credential and are rejected at login.
func (u User) IsPlaceholder() bool {
	return u.Password == ""
}
