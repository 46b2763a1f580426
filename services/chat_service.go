package services

import (
	"context"
	"log/slog"
	"strings"

	"messenger/domain"
	"messenger/repositories"
	"messenger/search"

	"github.com/samber/lo"
)

// ChatView pairs a chat with its resolved other participant, which is what
// every chat-list renderer actually needs.
type ChatView struct {
	Chat  domain.Chat
	Other domain.User
}

type IChatService interface {
	AddContact(self domain.User, phone string) (ChatView, error)
	ListChats(self domain.User) []ChatView
	SearchChats(ctx context.Context, self domain.User, query string) ([]ChatView, error)
}

type ChatService struct {
	store repositories.IEntityStore
	index search.IContactIndex
	log   *slog.Logger
}

func NewChatService(store repositories.IEntityStore, index search.IContactIndex, log *slog.Logger) IChatService {
	return &ChatService{store: store, index: index, log: log}
}

// AddContact resolves or creates the contact behind a phone number and makes
// sure a chat with it exists. Calling it again for the same number is a no-op
// returning the existing chat.
func (s *ChatService) AddContact(self domain.User, phone string) (ChatView, error) {
	contact, err := s.store.FindOrCreateContact(phone, self.ID)
	if err != nil {
		return ChatView{}, err
	}

	if err := s.index.Index(contact); err != nil {
		s.log.Warn("Contact indexing failed", "user_id", contact.ID, "error", err)
	}

	chat, err := s.store.EnsureChat(self, contact)
	if err != nil {
		return ChatView{}, err
	}
	return ChatView{Chat: chat, Other: contact}, nil
}

// ListChats returns the user's chats most recent first, each with its other
// participant resolved. A chat whose reference cannot be resolved is dropped
// from the view rather than failing the whole list.
func (s *ChatService) ListChats(self domain.User) []ChatView {
	var views []ChatView
	for _, chat := range s.store.ListChatsFor(self.ID) {
		other, err := s.store.OtherParticipant(chat, self.ID)
		if err != nil {
			s.log.Warn("Skipping chat with unresolvable participant", "chat_id", chat.ID, "error", err)
			continue
		}
		views = append(views, ChatView{Chat: chat, Other: other})
	}
	return views
}

// SearchChats narrows the chat list to contacts matching the query by name or
// phone prefix. An empty query returns the full list.
func (s *ChatService) SearchChats(ctx context.Context, self domain.User, query string) ([]ChatView, error) {
	query = strings.TrimSpace(query)
	views := s.ListChats(self)
	if query == "" {
		return views, nil
	}

	ids, err := s.index.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	matched := lo.SliceToMap(ids, func(id string) (string, struct{}) {
		return id, struct{}{}
	})
	return lo.Filter(views, func(v ChatView, _ int) bool {
		_, ok := matched[v.Other.ID]
		return ok
	}), nil
}
