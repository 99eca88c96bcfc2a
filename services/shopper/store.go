package shopper

import (
	"context"

	"github.com/simmerfood/menubot/lib/mystore"
	"github.com/simmerfood/menubot/services/menu"
)

// Store owns the mutable per-shopper state: favorites and cart. It does not
// validate item ids against the menu (that is the façade's concern); it only
// consults the menu for prices when recomputing cart totals and for joins.
//
// Mutating operations consist of a read and a write on the backing store.
// Callers that can race on the same shopper wrap the call in
// RunInTransaction; the façade does this for every mutating command.
type Store struct {
	states mystore.Store[State]
	menu   *menu.Store
}

func NewStore(c context.Context, menuStore *menu.Store) (*Store, func(), error) {
	states, cleanup, err := mystore.New[State](c)
	if err != nil {
		return nil, nil, err
	}

	return &Store{
		states: states,
		menu:   menuStore,
	}, cleanup, nil
}

// RunInTransaction exposes the backing store's critical section so that the
// façade can compose multiple operations atomically, like the
// read-then-clear of an order confirmation.
func (s *Store) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return s.states.RunInTransaction(c, f)
}

// getOrCreate is the single creation point for shopper state. Reading never
// fails: an unknown shopper reads as the empty state.
func (s *Store) getOrCreate(c context.Context, shopperUID string) (State, error) {
	state, found, err := s.states.Get(c, shopperUID)
	if err != nil {
		return State{}, err
	}
	if !found {
		return State{ShopperUID: shopperUID}, nil
	}
	return state, nil
}

// AddFavorite appends the item to the shopper's favorites. Idempotent:
// returns false without touching state when the item is already there.
func (s *Store) AddFavorite(c context.Context, shopperUID string, itemID string) (bool, error) {
	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return false, err
	}

	if state.favoriteIndex(itemID) >= 0 {
		return false, nil
	}

	state.Favorites = append(state.Favorites, itemID)

	return true, s.states.Put(c, shopperUID, state)
}

// RemoveFavorite returns false when the item was not a favorite.
func (s *Store) RemoveFavorite(c context.Context, shopperUID string, itemID string) (bool, error) {
	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return false, err
	}

	idx := state.favoriteIndex(itemID)
	if idx < 0 {
		return false, nil
	}

	state.Favorites = append(state.Favorites[:idx], state.Favorites[idx+1:]...)

	return true, s.states.Put(c, shopperUID, state)
}

// ListFavorites returns the favorite item ids in the order they were added.
func (s *Store) ListFavorites(c context.Context, shopperUID string) ([]string, error) {
	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return nil, err
	}

	favorites := make([]string, len(state.Favorites))
	copy(favorites, state.Favorites)

	return favorites, nil
}

func (s *Store) IsFavorite(c context.Context, shopperUID string, itemID string) (bool, error) {
	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return false, err
	}
	return state.favoriteIndex(itemID) >= 0, nil
}

func (s *Store) FavoriteCount(c context.Context, shopperUID string) (int, error) {
	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return 0, err
	}
	return len(state.Favorites), nil
}

// AddToCart increments the quantity of the item, creating the line when
// absent, and recomputes the total.
func (s *Store) AddToCart(c context.Context, shopperUID string, itemID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return err
	}

	idx := state.cartIndex(itemID)
	if idx >= 0 {
		state.Cart[idx].Quantity += quantity
	} else {
		state.Cart = append(state.Cart, CartEntry{ItemID: itemID, Quantity: quantity})
	}

	state.CartTotal = s.recomputeTotal(state)

	return s.states.Put(c, shopperUID, state)
}

// RemoveFromCart decrements the quantity of the item. A quantity dropping to
// zero or below deletes the line: the cart never stores non-positive
// quantities. Removing an absent item is a no-op.
func (s *Store) RemoveFromCart(c context.Context, shopperUID string, itemID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return err
	}

	idx := state.cartIndex(itemID)
	if idx < 0 {
		return nil
	}

	state.Cart[idx].Quantity -= quantity
	if state.Cart[idx].Quantity <= 0 {
		state.Cart = append(state.Cart[:idx], state.Cart[idx+1:]...)
	}

	state.CartTotal = s.recomputeTotal(state)

	return s.states.Put(c, shopperUID, state)
}

// GetCart returns a copy of the cart as entries plus the precomputed total.
func (s *Store) GetCart(c context.Context, shopperUID string) (Cart, error) {
	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return Cart{}, err
	}

	cart := Cart{
		Entries: make(map[string]int, len(state.Cart)),
		Total:   state.CartTotal,
	}
	for _, entry := range state.Cart {
		cart.Entries[entry.ItemID] = entry.Quantity
	}

	return cart, nil
}

func (s *Store) CartLineCount(c context.Context, shopperUID string) (int, error) {
	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return 0, err
	}
	return len(state.Cart), nil
}

// ClearCart empties the cart and resets the total. Favorites are untouched.
func (s *Store) ClearCart(c context.Context, shopperUID string) error {
	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return err
	}

	state.Cart = nil
	state.CartTotal = 0

	return s.states.Put(c, shopperUID, state)
}

// GetCartDetailed joins cart entries against the menu, in the order lines
// were added. Entries whose item no longer resolves are silently dropped.
func (s *Store) GetCartDetailed(c context.Context, shopperUID string) ([]CartLine, error) {
	state, err := s.getOrCreate(c, shopperUID)
	if err != nil {
		return nil, err
	}

	lines := []CartLine{}
	for _, entry := range state.Cart {
		item, found := s.menu.GetItem(entry.ItemID)
		if !found {
			continue
		}
		lines = append(lines, CartLine{
			Item:     item,
			Quantity: entry.Quantity,
			Subtotal: item.Price * entry.Quantity,
		})
	}

	return lines, nil
}

// recomputeTotal is applied eagerly after every cart mutation so reads never
// have to consult the menu. Entries that no longer resolve contribute
// nothing.
func (s *Store) recomputeTotal(state State) int {
	total := 0
	for _, entry := range state.Cart {
		item, found := s.menu.GetItem(entry.ItemID)
		if !found {
			continue
		}
		total += item.Price * entry.Quantity
	}
	return total
}
