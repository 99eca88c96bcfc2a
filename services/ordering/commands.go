package ordering

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/simmerfood/menubot/lib/myerrors"
	"github.com/simmerfood/menubot/lib/mylog"
	"github.com/simmerfood/menubot/services/menu"
	"github.com/simmerfood/menubot/services/ordering/orderingevents"
	"github.com/simmerfood/menubot/services/shopper"
)

const minSearchQueryLength = 2

var errEmptyOrder = errors.New("cart is empty, nothing to confirm")

// Handle routes a single intent for a single shopper. The type switch is
// exhaustive over the intent set; anything else is rejected as invalid
// input.
func (s *Service) Handle(c context.Context, shopperUID string, intent Intent) (any, error) {
	switch in := intent.(type) {
	case ViewCuisines:
		return s.ListCuisines(c), nil
	case ViewCategories:
		return s.ListCategories(c, in.CuisineID), nil
	case ViewAllCategories:
		return s.ListAllCategories(c), nil
	case ViewItems:
		return s.ListItems(c, in.CuisineID, in.CategoryID, in.Page), nil
	case ViewItem:
		return s.GetItemDetails(c, shopperUID, in.ItemID)
	case Search:
		return s.SearchItems(c, in.Query)
	case ToggleFavorite:
		return s.ToggleFavorite(c, shopperUID, in.ItemID)
	case ViewFavorites:
		return s.ListFavorites(c, shopperUID)
	case CartAdd:
		return s.AddToCart(c, shopperUID, in.ItemID, in.Quantity)
	case CartRemove:
		return s.RemoveFromCart(c, shopperUID, in.ItemID, in.Quantity)
	case ViewCart:
		return s.GetCart(c, shopperUID)
	case CartClear:
		return s.GetCartAfterClear(c, shopperUID)
	case CartConfirm:
		return s.ConfirmOrder(c, shopperUID)
	default:
		return nil, myerrors.NewInvalidInputErrorf("unsupported intent %T", intent)
	}
}

func (s *Service) ListCuisines(c context.Context) []menu.Cuisine {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all cuisines")

	return s.menu.ListCuisines()
}

func (s *Service) ListCategories(c context.Context, cuisineID string) CategoryListing {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch categories of cuisine %s", cuisineID)

	listing := CategoryListing{
		CuisineID:  cuisineID,
		Categories: s.menu.ListCategories(cuisineID),
	}
	if cuisine, found := s.menu.GetCuisine(cuisineID); found {
		listing.CuisineName = cuisine.Name
	}

	return listing
}

func (s *Service) ListAllCategories(c context.Context) []menu.CategoryRef {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all categories")

	return s.menu.ListAllCategories()
}

func (s *Service) ListItems(c context.Context, cuisineID string, categoryID string, page int) ItemListing {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch items of %s/%s", cuisineID, categoryID)

	return ItemListing{
		CuisineID:  cuisineID,
		CategoryID: categoryID,
		Page:       page,
		Items:      s.menu.ListItems(cuisineID, categoryID),
	}
}

func (s *Service) GetItemDetails(c context.Context, shopperUID string, itemID string) (ItemDetails, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Fetch details of item %s", itemID)

	item, found := s.menu.GetItem(itemID)
	if !found {
		return ItemDetails{}, myerrors.NewNotFoundErrorf("item with id %s not found", itemID)
	}

	isFavorite, err := s.shoppers.IsFavorite(c, shopperUID, itemID)
	if err != nil {
		return ItemDetails{}, myerrors.NewInternalError(err)
	}

	cart, err := s.shoppers.GetCart(c, shopperUID)
	if err != nil {
		return ItemDetails{}, myerrors.NewInternalError(err)
	}

	return ItemDetails{
		Item:         item,
		IsFavorite:   isFavorite,
		CartQuantity: cart.Entries[itemID],
	}, nil
}

func (s *Service) SearchItems(c context.Context, query string) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQueryLength {
		return SearchResult{}, myerrors.NewInvalidInputErrorf("search query must be at least %d characters", minSearchQueryLength)
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Search items matching %q", query)

	items := s.menu.Search(query)

	return SearchResult{
		Query:      query,
		Items:      items,
		TotalCount: len(items),
	}, nil
}

// ToggleFavorite adds the item to the shopper's favorites, or removes it
// when it is already there.
func (s *Service) ToggleFavorite(c context.Context, shopperUID string, itemID string) (FavoriteToggle, error) {
	item, found := s.menu.GetItem(itemID)
	if !found {
		return FavoriteToggle{}, myerrors.NewNotFoundErrorf("item with id %s not found", itemID)
	}

	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Toggle favorite %s for shopper %s", itemID, shopperUID)

	var added bool
	err := s.shoppers.RunInTransaction(c, func(c context.Context) error {
		isFavorite, err := s.shoppers.IsFavorite(c, shopperUID, itemID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		if isFavorite {
			_, err := s.shoppers.RemoveFavorite(c, shopperUID, itemID)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
			added = false

			return nil
		}

		count, err := s.shoppers.FavoriteCount(c, shopperUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if count >= s.limits.MaxFavorites {
			return myerrors.NewLimitExceededErrorf("favorites limit of %d reached", s.limits.MaxFavorites)
		}

		_, err = s.shoppers.AddFavorite(c, shopperUID, itemID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		added = true

		return nil
	})
	if err != nil {
		return FavoriteToggle{}, err
	}

	return FavoriteToggle{Item: item, Added: added}, nil
}

// ListFavorites joins the shopper's favorites against the menu; ids that no
// longer resolve are dropped.
func (s *Service) ListFavorites(c context.Context, shopperUID string) (FavoritesList, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Fetch favorites of shopper %s", shopperUID)

	favoriteIDs, err := s.shoppers.ListFavorites(c, shopperUID)
	if err != nil {
		return FavoritesList{}, myerrors.NewInternalError(err)
	}

	items := []menu.Item{}
	for _, itemID := range favoriteIDs {
		item, found := s.menu.GetItem(itemID)
		if !found {
			continue
		}
		items = append(items, item)
	}

	return FavoritesList{Items: items}, nil
}

func (s *Service) AddToCart(c context.Context, shopperUID string, itemID string, quantity int) (CartSummary, error) {
	_, found := s.menu.GetItem(itemID)
	if !found {
		return CartSummary{}, myerrors.NewNotFoundErrorf("item with id %s not found", itemID)
	}

	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Add %dx item %s to cart of shopper %s", quantity, itemID, shopperUID)

	var summary CartSummary
	err := s.shoppers.RunInTransaction(c, func(c context.Context) error {
		cart, err := s.shoppers.GetCart(c, shopperUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		// the limit caps distinct lines, growing an existing line is fine
		if _, alreadyInCart := cart.Entries[itemID]; !alreadyInCart {
			lineCount, err := s.shoppers.CartLineCount(c, shopperUID)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
			if lineCount >= s.limits.MaxCartLines {
				return myerrors.NewLimitExceededErrorf("cart limit of %d lines reached", s.limits.MaxCartLines)
			}
		}

		err = s.shoppers.AddToCart(c, shopperUID, itemID, quantity)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		summary, err = s.cartSummary(c, shopperUID)

		return err
	})
	if err != nil {
		return CartSummary{}, err
	}

	return summary, nil
}

func (s *Service) RemoveFromCart(c context.Context, shopperUID string, itemID string, quantity int) (CartSummary, error) {
	_, found := s.menu.GetItem(itemID)
	if !found {
		return CartSummary{}, myerrors.NewNotFoundErrorf("item with id %s not found", itemID)
	}

	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Remove %dx item %s from cart of shopper %s", quantity, itemID, shopperUID)

	var summary CartSummary
	err := s.shoppers.RunInTransaction(c, func(c context.Context) error {
		err := s.shoppers.RemoveFromCart(c, shopperUID, itemID, quantity)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		summary, err = s.cartSummary(c, shopperUID)

		return err
	})
	if err != nil {
		return CartSummary{}, err
	}

	return summary, nil
}

func (s *Service) GetCart(c context.Context, shopperUID string) (CartSummary, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Fetch cart of shopper %s", shopperUID)

	summary, err := s.cartSummary(c, shopperUID)
	if err != nil {
		return CartSummary{}, myerrors.NewInternalError(err)
	}

	return summary, nil
}

func (s *Service) ClearCart(c context.Context, shopperUID string) error {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Clear cart of shopper %s", shopperUID)

	err := s.shoppers.RunInTransaction(c, func(c context.Context) error {
		return s.shoppers.ClearCart(c, shopperUID)
	})
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

func (s *Service) GetCartAfterClear(c context.Context, shopperUID string) (CartSummary, error) {
	err := s.ClearCart(c, shopperUID)
	if err != nil {
		return CartSummary{}, err
	}

	return CartSummary{Lines: []shopper.CartLine{}, Total: 0}, nil
}

// ConfirmOrder turns the cart into a receipt and empties it. Snapshot and
// clear happen in one critical section so that no concurrent cart mutation
// for the same shopper can land in between and get lost.
func (s *Service) ConfirmOrder(c context.Context, shopperUID string) (Receipt, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Confirm order of shopper %s", shopperUID)

	var receipt Receipt
	err := s.shoppers.RunInTransaction(c, func(c context.Context) error {
		lines, err := s.shoppers.GetCartDetailed(c, shopperUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if len(lines) == 0 {
			return myerrors.NewConflictError(errEmptyOrder)
		}

		cart, err := s.shoppers.GetCart(c, shopperUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		receipt = Receipt{
			UID:        s.uuider.Create(),
			ShopperUID: shopperUID,
			CreatedAt:  s.nower.Now(),
			Lines:      lines,
			Total:      cart.Total,
		}

		err = s.publisher.Publish(c, orderingevents.TopicName, orderingevents.OrderConfirmed{
			ReceiptUID: receipt.UID,
			ShopperUID: shopperUID,
			Total:      receipt.Total,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.shoppers.ClearCart(c, shopperUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	return receipt, nil
}

func (s *Service) cartSummary(c context.Context, shopperUID string) (CartSummary, error) {
	lines, err := s.shoppers.GetCartDetailed(c, shopperUID)
	if err != nil {
		return CartSummary{}, err
	}

	cart, err := s.shoppers.GetCart(c, shopperUID)
	if err != nil {
		return CartSummary{}, err
	}

	return CartSummary{
		Lines: lines,
		Total: cart.Total,
	}, nil
}
