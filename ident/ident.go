package ident

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Generator abstracts identifier creation and the entropy used for one-shot
// random picks (avatar palette), so stores stay deterministic under test.
type Generator interface {
	NewID() string
	Pick(n int) int
}

// Clock matches time.Now and is injected wherever creation timestamps are set.
type Clock func() time.Time

// UUID is the production generator backed by random v4 UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Pick returns a uniform index in [0, n) from fresh UUID entropy.
func (UUID) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	id := uuid.New()
	return int(binary.BigEndian.Uint32(id[:4]) % uint32(n))
}

// Sequential issues id-1, id-2, ... and a fixed pick. Test use only.
type Sequential struct {
	next int
	Idx  int
}

func (s *Sequential) NewID() string {
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

func (s *Sequential) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return s.Idx % n
}
