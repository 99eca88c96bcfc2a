package shopper

import "github.com/simmerfood/menubot/services/menu"

// State is everything we track for a single shopper. The zero value is a
// valid empty state: shoppers come into existence on first touch.
//
// The cart is kept as an ordered slice rather than a map: Datastore cannot
// persist maps, and the slice preserves the order lines were added in,
// which is also the display order.
type State struct {
	ShopperUID string
	Favorites  []string
	Cart       []CartEntry
	CartTotal  int
}

type CartEntry struct {
	ItemID   string
	Quantity int
}

// Cart is the map-shaped read model of the cart.
type Cart struct {
	Entries map[string]int
	Total   int
}

// CartLine is a cart entry joined against the menu.
type CartLine struct {
	Item     menu.Item
	Quantity int
	Subtotal int
}

func (s State) cartIndex(itemID string) int {
	for i, entry := range s.Cart {
		if entry.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (s State) favoriteIndex(itemID string) int {
	for i, id := range s.Favorites {
		if id == itemID {
			return i
		}
	}
	return -1
}
