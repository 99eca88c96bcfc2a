package shopper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simmerfood/menubot/services/menu"
)

func testMenu(t *testing.T) *menu.Store {
	t.Helper()

	store, err := menu.New(menu.Document{
		Cuisines: []menu.Cuisine{
			{
				ID:   "italian",
				Name: "Italian",
				Categories: []menu.Category{
					{
						ID:   "pizza",
						Name: "Pizza",
						Items: []menu.Item{
							{ID: "p1", Name: "Margherita Pizza", Price: 450},
							{ID: "p2", Name: "Pepperoni Pizza", Price: 550},
							{ID: "pa1", Name: "Carbonara", Price: 520},
						},
					},
				},
			},
		},
	})
	assert.NoError(t, err)

	return store
}

func setup(t *testing.T) (context.Context, *Store) {
	t.Helper()

	c := context.TODO()
	store, cleanup, err := NewStore(c, testMenu(t))
	assert.NoError(t, err)
	t.Cleanup(cleanup)

	return c, store
}

func TestFavorites(t *testing.T) {

	t.Run("Add is idempotent", func(t *testing.T) {
		c, store := setup(t)

		// when
		changed, err := store.AddFavorite(c, "u1", "p1")
		assert.NoError(t, err)
		assert.True(t, changed)

		changed, err = store.AddFavorite(c, "u1", "p1")
		assert.NoError(t, err)
		assert.False(t, changed)

		// then
		favorites, err := store.ListFavorites(c, "u1")
		assert.NoError(t, err)
		assert.Equal(t, []string{"p1"}, favorites)
	})

	t.Run("List preserves insertion order", func(t *testing.T) {
		c, store := setup(t)

		// given
		store.AddFavorite(c, "u1", "p2")
		store.AddFavorite(c, "u1", "p1")
		store.AddFavorite(c, "u1", "pa1")

		// then
		favorites, _ := store.ListFavorites(c, "u1")
		assert.Equal(t, []string{"p2", "p1", "pa1"}, favorites)
	})

	t.Run("Remove", func(t *testing.T) {
		c, store := setup(t)

		// given
		store.AddFavorite(c, "u1", "p1")
		store.AddFavorite(c, "u1", "p2")

		// when
		changed, err := store.RemoveFavorite(c, "u1", "p1")
		assert.NoError(t, err)
		assert.True(t, changed)

		// then
		favorites, _ := store.ListFavorites(c, "u1")
		assert.Equal(t, []string{"p2"}, favorites)

		isFav, _ := store.IsFavorite(c, "u1", "p1")
		assert.False(t, isFav)
	})

	t.Run("Remove absent returns false", func(t *testing.T) {
		c, store := setup(t)

		changed, err := store.RemoveFavorite(c, "u1", "p1")
		assert.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("States are per shopper", func(t *testing.T) {
		c, store := setup(t)

		// given
		store.AddFavorite(c, "u1", "p1")

		// then
		favorites, _ := store.ListFavorites(c, "u2")
		assert.Empty(t, favorites)
	})
}

func TestCart(t *testing.T) {

	t.Run("Reading an unknown shopper yields an empty cart", func(t *testing.T) {
		c, store := setup(t)

		cart, err := store.GetCart(c, "nobody")
		assert.NoError(t, err)
		assert.Empty(t, cart.Entries)
		assert.Equal(t, 0, cart.Total)
	})

	t.Run("Add increments and recomputes total", func(t *testing.T) {
		c, store := setup(t)

		// when
		err := store.AddToCart(c, "u1", "p1", 1)
		assert.NoError(t, err)
		err = store.AddToCart(c, "u1", "p1", 1)
		assert.NoError(t, err)

		// then
		cart, _ := store.GetCart(c, "u1")
		assert.Equal(t, map[string]int{"p1": 2}, cart.Entries)
		assert.Equal(t, 900, cart.Total)
	})

	t.Run("Total invariant holds after every mutation", func(t *testing.T) {
		c, store := setup(t)

		mutations := []func(){
			func() { store.AddToCart(c, "u1", "p1", 2) },
			func() { store.AddToCart(c, "u1", "p2", 1) },
			func() { store.RemoveFromCart(c, "u1", "p1", 1) },
			func() { store.AddToCart(c, "u1", "pa1", 3) },
			func() { store.RemoveFromCart(c, "u1", "p2", 1) },
		}

		for _, mutate := range mutations {
			mutate()

			cart, err := store.GetCart(c, "u1")
			assert.NoError(t, err)

			expected := 0
			for itemID, quantity := range cart.Entries {
				item, found := store.menu.GetItem(itemID)
				assert.True(t, found)
				expected += item.Price * quantity
			}
			assert.Equal(t, expected, cart.Total)
		}
	})

	t.Run("Removing more than present deletes the line", func(t *testing.T) {
		c, store := setup(t)

		// given
		store.AddToCart(c, "u1", "p1", 1)
		store.AddToCart(c, "u1", "p1", 1)

		// when
		err := store.RemoveFromCart(c, "u1", "p1", 3)
		assert.NoError(t, err)

		// then
		cart, _ := store.GetCart(c, "u1")
		assert.Empty(t, cart.Entries)
		assert.Equal(t, 0, cart.Total)
	})

	t.Run("Removing an absent item is a no-op", func(t *testing.T) {
		c, store := setup(t)

		// given
		store.AddToCart(c, "u1", "p1", 1)

		// when
		err := store.RemoveFromCart(c, "u1", "p2", 1)
		assert.NoError(t, err)

		// then
		cart, _ := store.GetCart(c, "u1")
		assert.Equal(t, map[string]int{"p1": 1}, cart.Entries)
		assert.Equal(t, 450, cart.Total)
	})

	t.Run("Clear empties the cart but keeps favorites", func(t *testing.T) {
		c, store := setup(t)

		// given
		store.AddFavorite(c, "u1", "p1")
		store.AddToCart(c, "u1", "p1", 2)

		// when
		err := store.ClearCart(c, "u1")
		assert.NoError(t, err)

		// then
		cart, _ := store.GetCart(c, "u1")
		assert.Empty(t, cart.Entries)
		assert.Equal(t, 0, cart.Total)

		favorites, _ := store.ListFavorites(c, "u1")
		assert.Equal(t, []string{"p1"}, favorites)
	})

	t.Run("Detailed cart joins against the menu in insertion order", func(t *testing.T) {
		c, store := setup(t)

		// given
		store.AddToCart(c, "u1", "p2", 1)
		store.AddToCart(c, "u1", "p1", 2)

		// when
		lines, err := store.GetCartDetailed(c, "u1")
		assert.NoError(t, err)

		// then
		assert.Len(t, lines, 2)
		assert.Equal(t, "p2", lines[0].Item.ID)
		assert.Equal(t, 550, lines[0].Subtotal)
		assert.Equal(t, "p1", lines[1].Item.ID)
		assert.Equal(t, 2, lines[1].Quantity)
		assert.Equal(t, 900, lines[1].Subtotal)
	})

	t.Run("Detailed cart drops entries that no longer resolve", func(t *testing.T) {
		c, store := setup(t)

		// given: an entry that bypassed façade validation
		store.AddToCart(c, "u1", "ghost", 1)
		store.AddToCart(c, "u1", "p1", 1)

		// when
		lines, err := store.GetCartDetailed(c, "u1")
		assert.NoError(t, err)

		// then
		assert.Len(t, lines, 1)
		assert.Equal(t, "p1", lines[0].Item.ID)

		// and the stale entry contributes nothing to the total
		cart, _ := store.GetCart(c, "u1")
		assert.Equal(t, 450, cart.Total)
	})
}
