package api_test

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/jacentio/items/item"
)

// stepClock returns a time one second later on every call.
type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newStepClock() *stepClock {
	return &stepClock{cur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

// sequentialIDs returns "id-1", "id-2", ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubStore returns canned errors and records calls.
type stubStore struct {
	mu sync.Mutex

	putErrs  []error // consumed one per Put call
	getErr   error
	getItem  item.Item
	replErr  error
	delErr   error
	scanErr  error
	scanned  []item.Item
	putIDs   []string
	replaced []item.Item
}

func (s *stubStore) Put(_ context.Context, id string, _ item.Item, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putIDs = append(s.putIDs, id)
	if len(s.putErrs) == 0 {
		return nil
	}
	err := s.putErrs[0]
	s.putErrs = s.putErrs[1:]
	return err
}

func (s *stubStore) Get(_ context.Context, id string) (item.Item, error) {
	if s.getErr != nil {
		return item.Item{}, s.getErr
	}
	it := s.getItem
	it.ID = id
	return it, nil
}

func (s *stubStore) Replace(_ context.Context, _ string, it item.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced = append(s.replaced, it)
	return s.replErr
}

func (s *stubStore) Delete(_ context.Context, _ string) error {
	return s.delErr
}

func (s *stubStore) ScanAll(_ context.Context) iter.Seq2[item.Item, error] {
	return func(yield func(item.Item, error) bool) {
		for _, it := range s.scanned {
			if !yield(it, nil) {
				return
			}
		}
		if s.scanErr != nil {
			yield(item.Item{}, s.scanErr)
		}
	}
}
