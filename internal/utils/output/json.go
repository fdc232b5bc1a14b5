package output

import (
	"encoding/json"
	"io"

	"github.com/law-makers/grabfood/pkg/models"
)

// WriteJSON writes listings as one indented JSON array.
func WriteJSON(w io.Writer, listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(listings)
}
