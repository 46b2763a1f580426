//go:generate go run go.uber.org/mock/mockgen -source=entity_store.go -destination=../mocks/mock_entity_store.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"messenger/domain"
	"messenger/errors"
	"messenger/ident"
	"messenger/storage"

	"github.com/samber/lo"
)

// Logical keys of the durable layout. Each holds one UTF-8 JSON document:
// the full ordered collection for users/chats, a single record for the session.
const (
	keyUsers       = "users"
	keyChats       = "chats"
	keyCurrentUser = "current_user"
)

type IEntityStore interface {
	LoadAll() ([]domain.User, []domain.Chat, *domain.User)
	RegisterUser(name, phone, password string) (domain.User, error)
	Authenticate(phone, password string) (domain.User, error)
	FindOrCreateContact(phone, excludingUserID string) (domain.User, error)
	EnsureChat(creator, other domain.User) (domain.Chat, error)
	ListChatsFor(userID string) []domain.Chat
	OtherParticipant(chat domain.Chat, selfUserID string) (domain.User, error)
	CurrentUser() *domain.User
	EndSession() error
}

// EntityStore is the sole authority over the user and chat collections and the
// session pointer. It mirrors every successful mutation to the injected KV
// before returning; a failed persist rolls the in-memory state back, so
// callers never observe a half-applied operation.
//
// All methods are synchronous and intended to be called serially by a single
// presentation layer; there is no internal locking.
type EntityStore struct {
	kv  storage.KV
	gen ident.Generator
	now ident.Clock
	log *slog.Logger

	users   []domain.User
	chats   []domain.Chat
	session *domain.User
}

func NewEntityStore(kv storage.KV, gen ident.Generator, now ident.Clock, log *slog.Logger) *EntityStore {
	return &EntityStore{kv: kv, gen: gen, now: now, log: log}
}

// LoadAll replaces the in-memory state with whatever the durable layer holds
// and returns a snapshot. Absent, unreadable or unparsable keys degrade to
// empty collections; LoadAll never fails.
func (s *EntityStore) LoadAll() ([]domain.User, []domain.Chat, *domain.User) {
	s.users = nil
	s.chats = nil
	s.session = nil

	if data, ok := s.read(keyUsers); ok {
		var users []domain.User
		if err := json.Unmarshal(data, &users); err != nil {
			s.log.Warn("Discarding unparsable collection", "key", keyUsers, "error", err)
		} else {
			s.users = users
		}
	}
	if data, ok := s.read(keyChats); ok {
		var chats []domain.Chat
		if err := json.Unmarshal(data, &chats); err != nil {
			s.log.Warn("Discarding unparsable collection", "key", keyChats, "error", err)
		} else {
			s.chats = chats
		}
	}
	if data, ok := s.read(keyCurrentUser); ok {
		var user domain.User
		if err := json.Unmarshal(data, &user); err != nil {
			s.log.Warn("Discarding unparsable session record", "error", err)
		} else {
			s.session = &user
		}
	}

	return s.Users(), s.Chats(), s.CurrentUser()
}

// Users returns a copy of the user collection in insertion order.
func (s *EntityStore) Users() []domain.User {
	return append([]domain.User(nil), s.users...)
}

// Chats returns a copy of the chat collection in insertion order.
func (s *EntityStore) Chats() []domain.Chat {
	return append([]domain.Chat(nil), s.chats...)
}

// CurrentUser returns the session user, or nil when no session is bound.
func (s *EntityStore) CurrentUser() *domain.User {
	if s.session == nil {
		return nil
	}
	user := *s.session
	return &user
}

// RegisterUser creates a self-registered account, persists the collection and
// binds the session to it. Phone uniqueness is first-writer-wins: the first
// account to register a number keeps it.
func (s *EntityStore) RegisterUser(name, phone, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" || strings.TrimSpace(password) == "" {
		return domain.User{}, errors.ErrInvalidInput
	}

	taken := lo.ContainsBy(s.users, func(u domain.User) bool { return u.Phone == phone })
	if taken {
		return domain.User{}, errors.ErrDuplicatePhone
	}

	user := domain.NewUser(
		s.gen.NewID(), name, phone, password,
		s.gen.Pick(len(domain.AvatarPalette)), s.now().UTC(),
	)

	prev := s.users
	s.users = append(s.users, user)
	if err := s.persistUsers(); err != nil {
		s.users = prev
		return domain.User{}, err
	}

	if err := s.bindSession(user); err != nil {
		s.users = prev
		if perr := s.persistUsers(); perr != nil {
			s.log.Warn("Rollback of user collection failed", "error", perr)
		}
		return domain.User{}, err
	}
	return user, nil
}

// Authenticate matches phone and password exactly. Placeholder contacts hold
// an empty password and are never eligible. A match binds and persists the
// session.
func (s *EntityStore) Authenticate(phone, password string) (domain.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return domain.User{}, errors.ErrInvalidCredentials
	}

	user, found := lo.Find(s.users, func(u domain.User) bool {
		return u.Phone == phone && u.Password == password
	})
	if !found {
		return domain.User{}, errors.ErrInvalidCredentials
	}

	if err := s.bindSession(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// FindOrCreateContact resolves a phone number to a user other than
// excludingUserID, creating and persisting a placeholder account when nobody
// matches. The exclusion is applied per call: with a stable excluding id the
// same placeholder is returned on every call, while differing excluding ids
// can still mint parallel placeholders for one number.
func (s *EntityStore) FindOrCreateContact(phone, excludingUserID string) (domain.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return domain.User{}, errors.ErrInvalidInput
	}

	existing, found := lo.Find(s.users, func(u domain.User) bool {
		return u.Phone == phone && u.ID != excludingUserID
	})
	if found {
		return existing, nil
	}

	contact := domain.NewUser(
		s.gen.NewID(), domain.PlaceholderName(phone), phone, "",
		s.gen.Pick(len(domain.AvatarPalette)), s.now().UTC(),
	)

	prev := s.users
	s.users = append(s.users, contact)
	if err := s.persistUsers(); err != nil {
		s.users = prev
		return domain.User{}, err
	}
	return contact, nil
}

// EnsureChat returns the chat joining the unordered pair, creating it when
// absent. Never creates a second chat for the same pair.
func (s *EntityStore) EnsureChat(creator, other domain.User) (domain.Chat, error) {
	if creator.ID == other.ID {
		return domain.Chat{}, errors.ErrInvalidInput
	}

	existing, found := lo.Find(s.chats, func(c domain.Chat) bool {
		return c.SamePair(creator.ID, other.ID)
	})
	if found {
		return existing, nil
	}

	chat := domain.NewChat(s.gen.NewID(), creator, other, s.now().UTC())
	prev := s.chats
	s.chats = append(s.chats, chat)
	if err := s.persistChats(); err != nil {
		s.chats = prev
		return domain.Chat{}, err
	}
	return chat, nil
}

// ListChatsFor returns the user's chats, most recent activity first. Chats
// without messages sort by creation time; ties keep insertion order.
func (s *EntityStore) ListChatsFor(userID string) []domain.Chat {
	chats := lo.Filter(s.chats, func(c domain.Chat, _ int) bool {
		return c.Involves(userID)
	})
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].ActivityAt().After(chats[j].ActivityAt())
	})
	return chats
}

// OtherParticipant resolves the non-self side of a chat. The reference check
// is defensive: under the store's invariants it cannot fail.
func (s *EntityStore) OtherParticipant(chat domain.Chat, selfUserID string) (domain.User, error) {
	otherID, ok := chat.OtherID(selfUserID)
	if !ok {
		return domain.User{}, fmt.Errorf("%w: user %s is not a participant of chat %s",
			errors.ErrDanglingReference, selfUserID, chat.ID)
	}
	user, found := lo.Find(s.users, func(u domain.User) bool { return u.ID == otherID })
	if !found {
		return domain.User{}, fmt.Errorf("%w: user %s", errors.ErrDanglingReference, otherID)
	}
	return user, nil
}

// EndSession clears the session pointer and removes the persisted record.
func (s *EntityStore) EndSession() error {
	if err := s.kv.Delete(keyCurrentUser); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	s.session = nil
	return nil
}

func (s *EntityStore) bindSession(user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.kv.Set(keyCurrentUser, data); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	s.session = &user
	return nil
}

func (s *EntityStore) persistUsers() error {
	return s.persist(keyUsers, s.users)
}

func (s *EntityStore) persistChats() error {
	return s.persist(keyChats, s.chats)
}

// persist rewrites the whole collection under its logical key. Full rewrites
// keep the layout trivial at this scale; per-entity keys would be the next
// step if collections grew.
func (s *EntityStore) persist(key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *EntityStore) read(key string) ([]byte, bool) {
	data, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn("Durable storage unreadable, treating key as empty", "key", key, "error", err)
		return nil, false
	}
	return data, ok
}
