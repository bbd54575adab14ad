package stubapi

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	codeAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	codeLength      = 6
	maxCodeAttempts = 5
)

// ErrMaxRetriesExceeded is returned when no free code could be generated.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating code")

// Store keeps links in memory. The zero value is not usable; use NewStore.
type Store struct {
	mu      sync.Mutex
	links   map[string]*entity.Link
	order   []string
	now     func() time.Time
	started time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		links:   make(map[string]*entity.Link),
		now:     time.Now,
		started: time.Now(),
	}
}

// Uptime reports how long the store has been serving.
func (s *Store) Uptime() time.Duration {
	return s.now().Sub(s.started)
}

// Create stores a link. An empty code is replaced by a generated one.
func (s *Store) Create(target, code string) (*entity.Link, error) {
	const op = "stubapi.Store.Create"

	s.mu.Lock()
	defer s.mu.Unlock()

	if code == "" {
		generated, err := s.generateCode()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		code = generated
	}

	if _, ok := s.links[code]; ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrCodeExists)
	}

	link := &entity.Link{
		Code:      code,
		Target:    target,
		CreatedAt: s.now().UTC(),
	}

	s.links[code] = link
	s.order = append(s.order, code)

	return cloneLink(link), nil
}

func (s *Store) generateCode() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := gonanoid.Generate(codeAlphabet, codeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}

		if _, ok := s.links[code]; !ok {
			return code, nil
		}
	}

	return "", ErrMaxRetriesExceeded
}

// List returns all links, newest first.
func (s *Store) List() []entity.Link {
	s.mu.Lock()
	defer s.mu.Unlock()

	links := make([]entity.Link, 0, len(s.order))
	for _, code := range slices.Backward(s.order) {
		links = append(links, *cloneLink(s.links[code]))
	}

	return links
}

// Get returns the link with the given code.
func (s *Store) Get(code string) (*entity.Link, error) {
	const op = "stubapi.Store.Get"

	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[code]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	return cloneLink(link), nil
}

// Delete removes the link with the given code.
func (s *Store) Delete(code string) error {
	const op = "stubapi.Store.Delete"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[code]; !ok {
		return fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	delete(s.links, code)
	s.order = slices.DeleteFunc(s.order, func(c string) bool {
		return c == code
	})

	return nil
}

// Click increments the click counter of the link and stamps the click time.
// The stamp never moves backwards.
func (s *Store) Click(code string) (*entity.Link, error) {
	const op = "stubapi.Store.Click"

	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[code]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	now := s.now().UTC()
	if link.LastClicked != nil && now.Before(*link.LastClicked) {
		now = *link.LastClicked
	}

	link.Clicks++
	link.LastClicked = &now

	return cloneLink(link), nil
}

func cloneLink(link *entity.Link) *entity.Link {
	c := *link
	if link.LastClicked != nil {
		t := *link.LastClicked
		c.LastClicked = &t
	}
	return &c
}
