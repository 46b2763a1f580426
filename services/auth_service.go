package services

import (
	"fmt"
	"log/slog"
	"strings"

	"messenger/domain"
	"messenger/errors"
	"messenger/repositories"
	"messenger/search"
)

type IAuthService interface {
	Register(name, phone, password string) (domain.User, error)
	Login(phone, password string) (domain.User, error)
	Logout() error
	Current() *domain.User
}

type AuthService struct {
	store repositories.IEntityStore
	index search.IContactIndex
	log   *slog.Logger
}

func NewAuthService(store repositories.IEntityStore, index search.IContactIndex, log *slog.Logger) IAuthService {
	return &AuthService{store: store, index: index, log: log}
}

func (s *AuthService) Register(name, phone, password string) (domain.User, error) {
	req := RegisterRequest{
		Name:     strings.TrimSpace(name),
		Phone:    strings.TrimSpace(phone),
		Password: password,
	}

	// Cheap shape check before the store runs its own invariants.
	if err := ValidateRegister(req); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	user, err := s.store.RegisterUser(req.Name, req.Phone, req.Password)
	if err != nil {
		return domain.User{}, err
	}

	// The index is a rebuildable view; a failed upsert must not undo a
	// registration that is already durable.
	if err := s.index.Index(user); err != nil {
		s.log.Warn("Contact indexing failed", "user_id", user.ID, "error", err)
	}
	return user, nil
}

func (s *AuthService) Login(phone, password string) (domain.User, error) {
	return s.store.Authenticate(phone, password)
}

func (s *AuthService) Logout() error {
	return s.store.EndSession()
}

func (s *AuthService) Current() *domain.User {
	return s.store.CurrentUser()
}
