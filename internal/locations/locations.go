// Package locations serves the static clinic directory backing the widget's
// location dropdown.
package locations

import (
	"encoding/json"
	"net/http"
)

// Location is one clinic in the directory.
type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

var directory = []Location{
	{ID: "bloor-west", Name: "Bloor West", Address: "Bloor St W & Jane St"},
	{ID: "king-west", Name: "King West", Address: "Portland St & Richmond St"},
	{ID: "leaside", Name: "Leaside", Address: "Laird Dr & Industrial St"},
	{ID: "leslieville", Name: "Leslieville", Address: "Queen St E & Carlaw Ave"},
	{ID: "summerhill", Name: "Summerhill", Address: "Yonge St & Roxborough St"},
}

// All returns the clinics in display order.
func All() []Location {
	out := make([]Location, len(directory))
	copy(out, directory)
	return out
}

// ByID looks up one clinic.
func ByID(id string) (Location, bool) {
	for _, loc := range directory {
		if loc.ID == id {
			return loc, true
		}
	}
	return Location{}, false
}

// ListHandler writes the directory as JSON.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(All())
}
