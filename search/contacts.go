//go:generate go run go.uber.org/mock/mockgen -source=contacts.go -destination=../mocks/mock_contact_index.go -package=mocks
package search

import (
	"context"
	"fmt"
	"log/slog"

	"messenger/domain"

	"github.com/blugelabs/bluge"
)

const defaultLimit = 25

type IContactIndex interface {
	Index(user domain.User) error
	Rebuild(users []domain.User) error
	Search(ctx context.Context, query string) ([]string, error)
}

// ContactIndex is a full-text index over user display names and phone numbers.
// It is a derived view: losing it is harmless, Rebuild restores it from the
// user collection.
type ContactIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
	limit  int
}

func NewContactIndex(writer *bluge.Writer, log *slog.Logger, limit *int) *ContactIndex {
	l := defaultLimit
	if limit != nil && *limit > 0 {
		l = *limit
	}
	return &ContactIndex{writer: writer, log: log, limit: l}
}

// Index upserts one user. Names are analyzed for word matching, phones are
// kept verbatim for prefix matching.
func (c *ContactIndex) Index(user domain.User) error {
	doc := bluge.NewDocument(user.ID).
		AddField(bluge.NewTextField("name", user.Name)).
		AddField(bluge.NewKeywordField("phone", user.Phone))
	if err := c.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index user %s: %w", user.ID, err)
	}
	return nil
}

// Rebuild re-indexes the full collection, typically right after LoadAll.
func (c *ContactIndex) Rebuild(users []domain.User) error {
	for _, user := range users {
		if err := c.Index(user); err != nil {
			return err
		}
	}
	c.log.Debug("Contact index rebuilt", "users", len(users))
	return nil
}

// Search returns the ids of users whose name matches the query or whose phone
// starts with it, best matches first.
func (c *ContactIndex) Search(ctx context.Context, query string) ([]string, error) {
	reader, err := c.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open index reader: %w", err)
	}
	defer reader.Close()

	q := bluge.NewBooleanQuery().
		AddShould(bluge.NewMatchQuery(query).SetField("name")).
		AddShould(bluge.NewPrefixQuery(query).SetField("phone"))

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(c.limit, q))
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var ids []string
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("iterate matches: %w", err)
		}
		if match == nil {
			break
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}
