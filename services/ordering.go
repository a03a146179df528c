package services

import (
	"sort"

	"github.com/barrelborn/digital-menu/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMenuItems orders vegetarian items first, then by name under English
// collation. The sort is stable.
func SortMenuItems(items []models.MenuItem) {
	// Collators keep scratch buffers; one per call.
	col := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsVeg != items[j].IsVeg {
			return items[i].IsVeg
		}
		return col.CompareString(items[i].Name, items[j].Name) < 0
	})
}
