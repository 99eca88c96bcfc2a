package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simmerfood/menubot/lib/mytime"
	"github.com/simmerfood/menubot/services/menu"
	"github.com/simmerfood/menubot/services/shopper"
)

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}

	t.Run("First page", func(t *testing.T) {
		page := Paginate(items, 0, 3)

		assert.Equal(t, []string{"a", "b", "c"}, page.Items)
		assert.Equal(t, 0, page.Page)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 7, page.TotalCount)
	})

	t.Run("Last page is partial", func(t *testing.T) {
		page := Paginate(items, 2, 3)

		assert.Equal(t, []string{"g"}, page.Items)
		assert.Equal(t, 2, page.Page)
	})

	t.Run("Page beyond the end clamps to the last page", func(t *testing.T) {
		page := Paginate(items, 9, 3)

		assert.Equal(t, []string{"g"}, page.Items)
		assert.Equal(t, 2, page.Page)
	})

	t.Run("Negative page clamps to the first page", func(t *testing.T) {
		page := Paginate(items, -1, 3)

		assert.Equal(t, []string{"a", "b", "c"}, page.Items)
		assert.Equal(t, 0, page.Page)
	})

	t.Run("Empty input yields one empty page", func(t *testing.T) {
		page := Paginate([]string{}, 0, 3)

		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, 0, page.TotalCount)
	})
}

func TestSummaries(t *testing.T) {
	margherita := menu.Item{ID: "p1", Name: "Margherita Pizza", Emoji: "🍕", Price: 450}
	sushi := menu.Item{ID: "s1", Name: "Philadelphia Roll", Emoji: "🍣", Price: 620}

	t.Run("Cart summary lists numbered lines and a total", func(t *testing.T) {
		summary := CartSummary{
			Lines: []shopper.CartLine{
				{Item: margherita, Quantity: 2, Subtotal: 900},
				{Item: sushi, Quantity: 1, Subtotal: 620},
			},
			Total: 1520,
		}

		got := summary.Summary()
		assert.Contains(t, got, "1. 🍕 Margherita Pizza: 2 x 4.50 = 9.00")
		assert.Contains(t, got, "2. 🍣 Philadelphia Roll: 1 x 6.20 = 6.20")
		assert.Contains(t, got, "Total: 15.20")
	})

	t.Run("Empty cart summary", func(t *testing.T) {
		summary := CartSummary{}

		assert.Equal(t, "Your cart is empty", summary.Summary())
	})

	t.Run("Receipt summary carries uid and timestamp", func(t *testing.T) {
		receipt := Receipt{
			UID:        "receipt-123",
			ShopperUID: "shopper-1",
			CreatedAt:  mytime.ExampleTime,
			Lines: []shopper.CartLine{
				{Item: margherita, Quantity: 2, Subtotal: 900},
			},
			Total: 900,
		}

		got := receipt.Summary()
		assert.Contains(t, got, "Order receipt-123 confirmed at 2023-02-27T23:58:59Z")
		assert.Contains(t, got, "1. Margherita Pizza: 2 x 4.50 = 9.00")
		assert.Contains(t, got, "Total: 9.00")
	})
}
