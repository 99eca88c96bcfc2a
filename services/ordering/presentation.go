package ordering

import (
	"fmt"
	"strings"
	"time"
)

// Page is one display window over a larger sequence. TotalCount is the size
// of the full sequence, not of the window.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	TotalCount int
}

// Paginate slices items into a window of at most size elements. Pages are
// zero-based; an out-of-range page clamps to the nearest valid one, so a
// stale page number after a shrink still renders something sensible.
func Paginate[T any](items []T, page int, size int) Page[T] {
	if size < 1 {
		size = 1
	}

	totalCount := len(items)
	totalPages := (totalCount + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}

	start := page * size
	end := start + size
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
}

func formatPrice(amount int) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

// Summary renders the cart as numbered lines plus a total, ready for a chat
// or terminal surface.
func (cs CartSummary) Summary() string {
	if len(cs.Lines) == 0 {
		return "Your cart is empty"
	}

	var sb strings.Builder
	for i, line := range cs.Lines {
		fmt.Fprintf(&sb, "%d. %s %s: %d x %s = %s\n",
			i+1, line.Item.Emoji, line.Item.Name, line.Quantity,
			formatPrice(line.Item.Price), formatPrice(line.Subtotal))
	}
	fmt.Fprintf(&sb, "Total: %s", formatPrice(cs.Total))

	return sb.String()
}

func (r Receipt) Timestamp() string {
	return r.CreatedAt.Format(time.RFC3339)
}

func (r Receipt) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Order %s confirmed at %s\n", r.UID, r.Timestamp())
	for i, line := range r.Lines {
		fmt.Fprintf(&sb, "%d. %s: %d x %s = %s\n",
			i+1, line.Item.Name, line.Quantity,
			formatPrice(line.Item.Price), formatPrice(line.Subtotal))
	}
	fmt.Fprintf(&sb, "Total: %s", formatPrice(r.Total))

	return sb.String()
}
