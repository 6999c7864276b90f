package services

import (
	"encoding/json"
	"errors"
	"sync"

	"storefront/entity"
	"storefront/repository"
)

const (
	cartNamespace     = "cart"
	cartSchemaVersion = 1
)

var ErrNonPositiveQuantity = errors.New("quantity must be positive")

// CartService is the cart container. Carts are keyed by owner, mutated
// in-memory, and written through to the cart state blob on every mutation.
// Total and item count are always recomputed from the lines, never trusted
// from storage.
type CartService struct {
	mu    sync.Mutex
	repo  *repository.StateRepository
	carts map[string]*cartState
}

type cartState struct {
	Lines     []entity.CartLine
	Total     float64
	ItemCount int
	IsOpen    bool
}

// CartView is the caller-facing snapshot.
type CartView struct {
	Items     []entity.CartLine `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
	IsOpen    bool              `json:"isOpen"`
}

// persistedCart is the durable shape of the cart namespace. The open flag
// is display state and is deliberately not persisted.
type persistedCart struct {
	Items     []entity.CartLine `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func NewCartService(repo *repository.StateRepository) *CartService {
	return &CartService{repo: repo, carts: make(map[string]*cartState)}
}

// migrateCartBlob upgrades older persisted shapes to the current one.
// Version 0 blobs predate the stored item count.
func migrateCartBlob(version int, raw map[string]any) map[string]any {
	if version == 0 {
		if _, ok := raw["itemCount"]; !ok {
			raw["itemCount"] = 0
		}
	}
	return raw
}

func (s *CartService) load(owner string) (*cartState, error) {
	if st, ok := s.carts[owner]; ok {
		return st, nil
	}
	st := &cartState{}
	blob, err := s.repo.Get(cartNamespace, owner)
	if err != nil {
		return nil, err
	}
	if blob != nil {
		raw := map[string]any{}
		if err := json.Unmarshal(blob.Data, &raw); err != nil {
			return nil, err
		}
		raw = migrateCartBlob(blob.Version, raw)
		migrated, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		var pc persistedCart
		if err := json.Unmarshal(migrated, &pc); err != nil {
			return nil, err
		}
		st.Lines = pc.Items
	}
	st.recompute()
	s.carts[owner] = st
	return st, nil
}

func (st *cartState) recompute() {
	var total float64
	var count int
	for _, l := range st.Lines {
		total += l.Price * float64(l.Quantity)
		count += l.Quantity
	}
	st.Total = total
	st.ItemCount = count
}

func (s *CartService) persist(owner string, st *cartState) error {
	data, err := json.Marshal(persistedCart{Items: st.Lines, Total: st.Total, ItemCount: st.ItemCount})
	if err != nil {
		return err
	}
	return s.repo.Put(cartNamespace, owner, cartSchemaVersion, data)
}

func (s *CartService) Get(owner string) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(owner)
	if err != nil {
		return nil, err
	}
	return st.view(), nil
}

func (st *cartState) view() *CartView {
	items := make([]entity.CartLine, len(st.Lines))
	copy(items, st.Lines)
	return &CartView{Items: items, Total: st.Total, ItemCount: st.ItemCount, IsOpen: st.IsOpen}
}

// AddItem merges into an existing line for the same item id or appends a
// new line carrying an add-time snapshot of name/price/image.
func (s *CartService) AddItem(owner string, item entity.CatalogItem, quantity int) error {
	if quantity <= 0 {
		return ErrNonPositiveQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(owner)
	if err != nil {
		return err
	}

	merged := false
	for i := range st.Lines {
		if st.Lines[i].ItemID == item.ItemID {
			st.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		st.Lines = append(st.Lines, entity.CartLine{
			ItemID:   item.ItemID,
			Quantity: quantity,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
		})
	}
	st.recompute()
	return s.persist(owner, st)
}

// RemoveItem drops the line if present; removing an absent item is a no-op.
func (s *CartService) RemoveItem(owner, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(owner)
	if err != nil {
		return err
	}
	st.Lines = dropLine(st.Lines, itemID)
	st.recompute()
	return s.persist(owner, st)
}

// UpdateQuantity overwrites the line's quantity; zero or negative is
// equivalent to removal.
func (s *CartService) UpdateQuantity(owner, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(owner)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		st.Lines = dropLine(st.Lines, itemID)
	} else {
		for i := range st.Lines {
			if st.Lines[i].ItemID == itemID {
				st.Lines[i].Quantity = quantity
				break
			}
		}
	}
	st.recompute()
	return s.persist(owner, st)
}

func dropLine(lines []entity.CartLine, itemID string) []entity.CartLine {
	out := lines[:0]
	for _, l := range lines {
		if l.ItemID != itemID {
			out = append(out, l)
		}
	}
	return out
}

func (s *CartService) Clear(owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(owner)
	if err != nil {
		return err
	}
	st.Lines = nil
	st.recompute()
	return s.persist(owner, st)
}

func (s *CartService) GetItemQuantity(owner, itemID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(owner)
	if err != nil {
		return 0, err
	}
	for _, l := range st.Lines {
		if l.ItemID == itemID {
			return l.Quantity, nil
		}
	}
	return 0, nil
}

func (s *CartService) ToggleCart(owner string) error {
	return s.setOpen(owner, func(st *cartState) { st.IsOpen = !st.IsOpen })
}

func (s *CartService) OpenCart(owner string) error {
	return s.setOpen(owner, func(st *cartState) { st.IsOpen = true })
}

func (s *CartService) CloseCart(owner string) error {
	return s.setOpen(owner, func(st *cartState) { st.IsOpen = false })
}

func (s *CartService) setOpen(owner string, f func(*cartState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load(owner)
	if err != nil {
		return err
	}
	f(st)
	return nil
}
