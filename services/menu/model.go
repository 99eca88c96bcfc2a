package menu

// Prices are integers in minor currency units, like everywhere else in this
// system.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Emoji       string   `json:"image"`
	Price       int      `json:"price"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Items []Item `json:"items"`
}

type Cuisine struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Emoji      string     `json:"emoji"`
	Categories []Category `json:"categories"`
}

// Document is the structured input the store is built from. It uses arrays
// rather than maps so that menu order survives decoding.
type Document struct {
	Cuisines []Cuisine `json:"cuisines"`
}

// CategoryRef identifies a category together with the cuisine it belongs to,
// for flattened all-categories listings.
type CategoryRef struct {
	CuisineID   string
	CuisineName string
	Category    Category
}

const (
	fallbackCuisineName  = "Cuisine"
	fallbackCategoryName = "Category"
	fallbackItemName     = "Item"
	fallbackEmoji        = "🍽️"
)

func normalize(doc Document) Document {
	for ci := range doc.Cuisines {
		cuisine := &doc.Cuisines[ci]
		if cuisine.Name == "" {
			cuisine.Name = fallbackCuisineName
		}
		if cuisine.Emoji == "" {
			cuisine.Emoji = fallbackEmoji
		}
		for gi := range cuisine.Categories {
			category := &cuisine.Categories[gi]
			if category.Name == "" {
				category.Name = fallbackCategoryName
			}
			if category.Emoji == "" {
				category.Emoji = fallbackEmoji
			}
			for ii := range category.Items {
				item := &category.Items[ii]
				if item.Name == "" {
					item.Name = fallbackItemName
				}
				if item.Emoji == "" {
					item.Emoji = fallbackEmoji
				}
				if item.Price < 0 {
					item.Price = 0
				}
			}
		}
	}

	return doc
}
