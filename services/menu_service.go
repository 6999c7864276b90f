package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"storefront/entity"

	"github.com/sirupsen/logrus"
)

// Cached catalog data is reused for this long before a fetch goes back to
// the provider.
const menuCacheDuration = 5 * time.Minute

// CatalogProvider supplies the item list. The sqlite-backed catalog
// repository is the production implementation.
type CatalogProvider interface {
	List(ctx context.Context, category string) ([]entity.CatalogItem, error)
	Search(ctx context.Context, query string) ([]entity.CatalogItem, error)
}

// MenuService wraps the catalog in a short time-window cache plus the
// currently selected category and search query. Overlapping calls are
// serialized per result: each fetch takes a generation number and a
// completed call applies its result only if its generation is still the
// latest, so a slow earlier call can't clobber a newer one.
type MenuService struct {
	mu       sync.Mutex
	provider CatalogProvider
	log      *logrus.Logger
	now      func() time.Time

	items            []entity.CatalogItem
	filteredItems    []entity.CatalogItem
	selectedCategory string
	searchQuery      string
	loading          bool
	errMsg           string
	lastFetched      time.Time
	generation       uint64
}

// MenuView is a point-in-time snapshot of the container.
type MenuView struct {
	Items            []entity.CatalogItem `json:"items"`
	FilteredItems    []entity.CatalogItem `json:"filteredItems"`
	Categories       []string             `json:"categories"`
	SelectedCategory string               `json:"selectedCategory"`
	SearchQuery      string               `json:"searchQuery"`
	Loading          bool                 `json:"loading"`
	Error            string               `json:"error,omitempty"`
}

func NewMenuService(provider CatalogProvider, log *logrus.Logger) *MenuService {
	return &MenuService{
		provider:         provider,
		log:              log,
		now:              time.Now,
		selectedCategory: "All",
	}
}

func filterByCategory(items []entity.CatalogItem, category string) []entity.CatalogItem {
	if category == "All" || category == "" {
		out := make([]entity.CatalogItem, len(items))
		copy(out, items)
		return out
	}
	out := make([]entity.CatalogItem, 0, len(items))
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// FetchItems loads the list for the category (current category when empty).
// Fresh cached data short-circuits the provider: only the local filter is
// reapplied. A provider failure keeps the previous items and records the
// error message.
func (s *MenuService) FetchItems(ctx context.Context, category string) error {
	s.mu.Lock()
	target := category
	if target == "" {
		target = s.selectedCategory
	}

	// The cache is only good for the category it was fetched under; a
	// category change goes back to the provider for the scoped list.
	if target == s.selectedCategory && !s.lastFetched.IsZero() &&
		s.now().Sub(s.lastFetched) < menuCacheDuration && len(s.items) > 0 {
		// A synchronous view change supersedes any in-flight fetch or
		// search; its late result must not clobber this one.
		s.generation++
		s.loading = false
		s.filteredItems = filterByCategory(s.items, target)
		s.selectedCategory = target
		s.searchQuery = ""
		s.errMsg = ""
		s.mu.Unlock()
		return nil
	}

	s.generation++
	gen := s.generation
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	items, err := s.provider.List(ctx, target)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// A later fetch or search superseded this one; drop the result.
		s.log.WithFields(logrus.Fields{"category": target}).Debug("menu fetch superseded")
		return nil
	}
	s.loading = false
	if err != nil {
		s.errMsg = "Failed to fetch menu items"
		s.log.WithFields(logrus.Fields{"category": target, "error": err.Error()}).Error("menu fetch failed")
		return err
	}

	s.items = items
	s.filteredItems = filterByCategory(items, target)
	s.selectedCategory = target
	s.searchQuery = ""
	s.lastFetched = s.now()
	return nil
}

// SearchItems always bypasses the cache for a non-blank query and does not
// stamp it (search results are not cached). A blank query clears the
// search and behaves like a fetch for the current category.
func (s *MenuService) SearchItems(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return s.FetchItems(ctx, "")
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.searchQuery = query
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	items, err := s.provider.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.log.WithFields(logrus.Fields{"query": query}).Debug("menu search superseded")
		return nil
	}
	s.loading = false
	if err != nil {
		s.errMsg = "Search failed"
		s.log.WithFields(logrus.Fields{"query": query, "error": err.Error()}).Error("menu search failed")
		return err
	}

	s.filteredItems = items
	return nil
}

// SetCategory refilters the already-loaded items without a provider call
// and clears any active search.
func (s *MenuService) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loading = false
	s.selectedCategory = category
	s.searchQuery = ""
	s.filteredItems = filterByCategory(s.items, category)
}

// RefreshMenu invalidates the cache and fetches again.
func (s *MenuService) RefreshMenu(ctx context.Context) error {
	s.mu.Lock()
	s.lastFetched = time.Time{}
	s.mu.Unlock()
	return s.FetchItems(ctx, "")
}

func (s *MenuService) GetItemByID(id string) *entity.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ItemID == id {
			item := s.items[i]
			return &item
		}
	}
	return nil
}

func (s *MenuService) View() *MenuView {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entity.CatalogItem, len(s.items))
	copy(items, s.items)
	filtered := make([]entity.CatalogItem, len(s.filteredItems))
	copy(filtered, s.filteredItems)
	return &MenuView{
		Items:            items,
		FilteredItems:    filtered,
		Categories:       entity.MenuCategories,
		SelectedCategory: s.selectedCategory,
		SearchQuery:      s.searchQuery,
		Loading:          s.loading,
		Error:            s.errMsg,
	}
}
