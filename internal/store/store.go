// Package store holds the client-side inventory list state and its
// synchronization discipline with the remote API: every mutation is confirmed
// by a server round trip before the local list changes.
package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"stockview/internal/apiclient"
	"stockview/internal/models"
	"stockview/internal/view"
)

var (
	// ErrMissingFields is returned when a draft lacks a name or category.
	ErrMissingFields = errors.New("name and category are required")
	// ErrUnknownItem is returned when an edit targets an id not in the list.
	ErrUnknownItem = errors.New("item not found")
)

// SortDirection is the order applied by the next quantity sort.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// InventoryStore owns the in-memory inventory list for the authenticated
// session. The originalOrder snapshot is captured once at Load and is not
// resynchronized by add/edit/remove; ResetSort restores it verbatim, which
// matches the upstream behavior even after mutations have made it stale.
//
// The mutex protects the slices against concurrent handlers. It does not
// serialize user actions: overlapping requests stay independent.
type InventoryStore struct {
	mu  sync.Mutex
	api apiclient.Client

	items         []models.InventoryRecord
	originalOrder []models.InventoryRecord
	searchQuery   string
	sortDirection SortDirection
	currentPage   int
	loaded        bool
}

// New creates an empty store backed by the given API client.
func New(api apiclient.Client) *InventoryStore {
	return &InventoryStore{
		api:           api,
		sortDirection: Ascending,
		currentPage:   1,
	}
}

// Load fetches the full list and captures the original-order snapshot.
// It runs once per transition into the authenticated state; a failed attempt
// still counts as the one load for that transition.
func (s *InventoryStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()

	records, err := s.api.ListInventory(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.InventoryRecord(nil), records...)
	s.originalOrder = append([]models.InventoryRecord(nil), records...)
	return nil
}

// Loaded reports whether a load has been attempted for the current session.
func (s *InventoryStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Reset discards all list state, returning the store to its pre-login shape.
// Called on logout so the next authenticated session loads afresh.
func (s *InventoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.originalOrder = nil
	s.searchQuery = ""
	s.sortDirection = Ascending
	s.currentPage = 1
	s.loaded = false
}

// Add validates the draft, creates it on the server, and prepends the
// returned record. The original-order snapshot is left untouched.
func (s *InventoryStore) Add(ctx context.Context, draft *models.ItemDraft) (*models.InventoryRecord, error) {
	if draft.Name == "" || draft.Category == "" {
		return nil, ErrMissingFields
	}
	if draft.Quantity < 0 {
		draft.Quantity = 0
	}

	record, err := s.api.CreateItem(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.InventoryRecord{*record}, s.items...)
	return record, nil
}

// Edit updates an existing record on the server and replaces the local copy
// by id. The original-order snapshot is left untouched.
func (s *InventoryStore) Edit(ctx context.Context, id string, fields *models.ItemDraft) (*models.InventoryRecord, error) {
	if fields.Name == "" || fields.Category == "" {
		return nil, ErrMissingFields
	}
	if fields.Quantity < 0 {
		fields.Quantity = 0
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	s.mu.Unlock()
	if idx < 0 {
		return nil, ErrUnknownItem
	}

	record, err := s.api.UpdateItem(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-resolve the index: the list may have shifted during the round trip.
	if idx = s.indexOf(id); idx >= 0 {
		s.items[idx] = *record
	}
	return record, nil
}

// Remove deletes the record on the server, drops it locally, and steps the
// current page back when the deletion emptied a page past the first.
func (s *InventoryStore) Remove(ctx context.Context, id string) error {
	if err := s.api.DeleteItem(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}

	filtered := len(s.filterLocked())
	if s.currentPage > 1 && filtered <= (s.currentPage-1)*view.PageSize {
		s.currentPage--
	}
	return nil
}

// Items returns a copy of the full list in its current order.
func (s *InventoryStore) Items() []models.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.InventoryRecord(nil), s.items...)
}

// Get returns the record with the given id, if present.
func (s *InventoryStore) Get(id string) (models.InventoryRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	return models.InventoryRecord{}, false
}

// Filtered returns the records matching the current search query.
func (s *InventoryStore) Filtered() []models.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked()
}

// filterLocked matches the query case-insensitively against name or category.
// An empty query matches everything.
func (s *InventoryStore) filterLocked() []models.InventoryRecord {
	query := strings.ToLower(s.searchQuery)
	matched := make([]models.InventoryRecord, 0, len(s.items))
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.Category), query) {
			matched = append(matched, item)
		}
	}
	return matched
}

// SearchQuery returns the current search query.
func (s *InventoryStore) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// SetSearchQuery updates the filter and re-clamps the current page against
// the narrowed view.
func (s *InventoryStore) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
	s.currentPage = view.Clamp(s.currentPage, view.TotalPages(len(s.filterLocked())))
}

// CurrentPage returns the 1-based current page.
func (s *InventoryStore) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage
}

// SetPage moves to the requested page, clamped to the filtered view.
func (s *InventoryStore) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPage = view.Clamp(page, view.TotalPages(len(s.filterLocked())))
}

// SortDirection returns the direction the next quantity sort will apply.
func (s *InventoryStore) SortDirection() SortDirection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortDirection
}

// SortByQuantity reorders the list by quantity in the current direction, then
// flips the direction for the next invocation. Ties keep their pre-sort
// relative order.
func (s *InventoryStore) SortByQuantity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := append([]models.InventoryRecord(nil), s.items...)
	if s.sortDirection == Ascending {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Quantity < sorted[j].Quantity })
		s.sortDirection = Descending
	} else {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Quantity > sorted[j].Quantity })
		s.sortDirection = Ascending
	}
	s.items = sorted
}

// ResetSort restores the order captured at the last Load and resets the
// direction to ascending.
func (s *InventoryStore) ResetSort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.InventoryRecord(nil), s.originalOrder...)
	s.sortDirection = Ascending
}

func (s *InventoryStore) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
