package menu

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a menu document from disk. Any failure yields the empty
// document: the system starts with an empty menu rather than not at all.
func Load(path string) Document {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}
	}

	doc, err := Parse(data)
	if err != nil {
		return Document{}
	}

	return doc
}

func Parse(data []byte) (Document, error) {
	doc := Document{}
	err := json.Unmarshal(data, &doc)
	if err != nil {
		return Document{}, fmt.Errorf("error parsing menu document: %s", err)
	}

	return doc, nil
}
