package order

import "sync"

// Selection tracks the tracking ids one admin has marked for a bulk
// action. It is never persisted and is cleared after every bulk
// transition regardless of outcome.
type Selection struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds the id if absent, removes it if present.
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAllVisible flips selection for the currently visible set: if every
// visible id is already selected they are all deselected, otherwise all
// visible ids become selected.
func (s *Selection) SelectAllVisible(visible []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allSelected := len(visible) > 0
	for _, id := range visible {
		if _, ok := s.ids[id]; !ok {
			allSelected = false
			break
		}
	}

	if allSelected {
		for _, id := range visible {
			delete(s.ids, id)
		}
		return
	}
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Remove prunes an id whose order left the selectable set.
func (s *Selection) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// PruneTo drops ids that are no longer part of the loaded order list.
func (s *Selection) PruneTo(existing []string) {
	keep := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		keep[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
		}
	}
}

// selections holds one Selection per admin user so concurrent sessions
// never see or clobber each other's picks.
type selections struct {
	mu     sync.Mutex
	byUser map[uint]*Selection
}

func newSelections() *selections {
	return &selections{byUser: make(map[uint]*Selection)}
}

func (s *selections) forUser(userID uint) *Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, ok := s.byUser[userID]
	if !ok {
		sel = NewSelection()
		s.byUser[userID] = sel
	}
	return sel
}

// removeAll drops an id from every session; used when an order leaves
// the selectable set for everyone, not just the acting admin.
func (s *selections) removeAll(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sel := range s.byUser {
		sel.Remove(id)
	}
}
