package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoader(t *testing.T) {

	t.Run("Parse valid document", func(t *testing.T) {
		doc, err := Parse([]byte(`{
			"cuisines": [
				{
					"id": "italian",
					"name": "Italian",
					"emoji": "🍕",
					"categories": [
						{
							"id": "pizza",
							"name": "Pizza",
							"items": [
								{"id": "p1", "name": "Margherita Pizza", "image": "🍕", "price": 450}
							]
						}
					]
				}
			]
		}`))
		assert.NoError(t, err)
		assert.Len(t, doc.Cuisines, 1)
		assert.Equal(t, "italian", doc.Cuisines[0].ID)
		assert.Equal(t, 450, doc.Cuisines[0].Categories[0].Items[0].Price)
	})

	t.Run("Parse garbage fails", func(t *testing.T) {
		_, err := Parse([]byte(`{not json`))
		assert.Error(t, err)
	})

	t.Run("Load missing file yields empty document", func(t *testing.T) {
		doc := Load("does/not/exist.json")
		assert.Empty(t, doc.Cuisines)
	})

	t.Run("Load malformed file yields empty document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "menu.json")
		err := os.WriteFile(path, []byte(`{not json`), 0644)
		assert.NoError(t, err)

		doc := Load(path)
		assert.Empty(t, doc.Cuisines)
	})

	t.Run("Load valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "menu.json")
		err := os.WriteFile(path, []byte(`{"cuisines":[{"id":"asian","name":"Asian"}]}`), 0644)
		assert.NoError(t, err)

		doc := Load(path)
		assert.Len(t, doc.Cuisines, 1)
	})
}
