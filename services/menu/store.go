package menu

import (
	"fmt"
	"strings"
)

// Store is the read-only view of the menu. It is built once at startup and
// never mutated afterwards, so it is safe for concurrent readers without
// locking.
type Store struct {
	cuisines       []Cuisine
	cuisinesByID   map[string]Cuisine
	categoriesByID map[string]map[string]Category
	itemsByID      map[string]Item
}

// New normalizes the document once and indexes it. A duplicate item id is a
// construction error: lookup by item id must stay unambiguous.
func New(doc Document) (*Store, error) {
	doc = normalize(doc)

	s := &Store{
		cuisines:       doc.Cuisines,
		cuisinesByID:   map[string]Cuisine{},
		categoriesByID: map[string]map[string]Category{},
		itemsByID:      map[string]Item{},
	}

	for _, cuisine := range doc.Cuisines {
		s.cuisinesByID[cuisine.ID] = cuisine
		s.categoriesByID[cuisine.ID] = map[string]Category{}
		for _, category := range cuisine.Categories {
			s.categoriesByID[cuisine.ID][category.ID] = category
			for _, item := range category.Items {
				if _, exists := s.itemsByID[item.ID]; exists {
					return nil, fmt.Errorf("duplicate item id %s in category %s", item.ID, category.ID)
				}
				s.itemsByID[item.ID] = item
			}
		}
	}

	return s, nil
}

// ListCuisines returns all cuisines in menu order.
func (s *Store) ListCuisines() []Cuisine {
	return s.cuisines
}

func (s *Store) GetCuisine(cuisineID string) (Cuisine, bool) {
	cuisine, found := s.cuisinesByID[cuisineID]
	return cuisine, found
}

// ListCategories returns the categories of a cuisine in menu order. An
// unknown cuisine id yields an empty result, not an error.
func (s *Store) ListCategories(cuisineID string) []Category {
	cuisine, found := s.cuisinesByID[cuisineID]
	if !found {
		return []Category{}
	}
	return cuisine.Categories
}

// ListAllCategories flattens all categories across cuisines, in menu order.
func (s *Store) ListAllCategories() []CategoryRef {
	refs := []CategoryRef{}
	for _, cuisine := range s.cuisines {
		for _, category := range cuisine.Categories {
			refs = append(refs, CategoryRef{
				CuisineID:   cuisine.ID,
				CuisineName: cuisine.Name,
				Category:    category,
			})
		}
	}
	return refs
}

// ListItems returns the items of a category in menu order. Unknown ids yield
// an empty result.
func (s *Store) ListItems(cuisineID string, categoryID string) []Item {
	categories, found := s.categoriesByID[cuisineID]
	if !found {
		return []Item{}
	}
	category, found := categories[categoryID]
	if !found {
		return []Item{}
	}
	return category.Items
}

func (s *Store) GetItem(itemID string) (Item, bool) {
	item, found := s.itemsByID[itemID]
	return item, found
}

func (s *Store) ItemCount() int {
	return len(s.itemsByID)
}

// Search matches a case-insensitive substring of the item name. Results come
// back in menu traversal order: cuisine, then category, then item.
func (s *Store) Search(query string) []Item {
	results := []Item{}
	queryLower := strings.ToLower(query)

	for _, cuisine := range s.cuisines {
		for _, category := range cuisine.Categories {
			for _, item := range category.Items {
				if strings.Contains(strings.ToLower(item.Name), queryLower) {
					results = append(results, item)
				}
			}
		}
	}

	return results
}
