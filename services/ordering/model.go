package ordering

import (
	"time"

	"github.com/simmerfood/menubot/services/menu"
	"github.com/simmerfood/menubot/services/shopper"
)

// Limits are the caps the surrounding system configures. They are enforced
// here, at the façade, never inside the stores.
type Limits struct {
	PageSize         int
	MaxFavorites     int
	MaxCartLines     int
	MaxSearchResults int
}

func DefaultLimits() Limits {
	return Limits{
		PageSize:         5,
		MaxFavorites:     20,
		MaxCartLines:     50,
		MaxSearchResults: 10,
	}
}

// Intent is what the transport layer hands us: one shopper action at a time.
// The set is closed; Handle matches exhaustively.
type Intent interface {
	isIntent()
}

type ViewCuisines struct{}

type ViewCategories struct {
	CuisineID string
}

type ViewAllCategories struct{}

type ViewItems struct {
	CuisineID  string
	CategoryID string
	Page       int
}

type ViewItem struct {
	ItemID string
}

type Search struct {
	Query string
}

type ToggleFavorite struct {
	ItemID string
}

type ViewFavorites struct{}

type CartAdd struct {
	ItemID   string
	Quantity int
}

type CartRemove struct {
	ItemID   string
	Quantity int
}

type ViewCart struct{}

type CartClear struct{}

type CartConfirm struct{}

func (ViewCuisines) isIntent()      {}
func (ViewCategories) isIntent()    {}
func (ViewAllCategories) isIntent() {}
func (ViewItems) isIntent()         {}
func (ViewItem) isIntent()          {}
func (Search) isIntent()            {}
func (ToggleFavorite) isIntent()    {}
func (ViewFavorites) isIntent()     {}
func (CartAdd) isIntent()           {}
func (CartRemove) isIntent()        {}
func (ViewCart) isIntent()          {}
func (CartClear) isIntent()         {}
func (CartConfirm) isIntent()       {}

// CategoryListing pairs a cuisine's categories with the cuisine header a
// renderer shows above them. An unknown cuisine yields an empty listing.
type CategoryListing struct {
	CuisineID   string
	CuisineName string
	Categories  []menu.Category
}

// ItemListing carries the full item sequence of a category; truncating to a
// display page is the presentation layer's job.
type ItemListing struct {
	CuisineID  string
	CategoryID string
	Page       int
	Items      []menu.Item
}

type ItemDetails struct {
	Item         menu.Item
	IsFavorite   bool
	CartQuantity int
}

// SearchResult carries all matches; TotalCount is the true size even when a
// renderer shows fewer.
type SearchResult struct {
	Query      string
	Items      []menu.Item
	TotalCount int
}

type FavoriteToggle struct {
	Item  menu.Item
	Added bool
}

type FavoritesList struct {
	Items []menu.Item
}

type CartSummary struct {
	Lines []shopper.CartLine
	Total int
}

// Receipt is the immutable snapshot of a confirmed order. It is returned
// once and not kept anywhere in this core.
type Receipt struct {
	UID        string
	ShopperUID string
	CreatedAt  time.Time
	Lines      []shopper.CartLine
	Total      int
}
