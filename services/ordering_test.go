package services

import (
	"testing"

	"github.com/barrelborn/digital-menu/models"
	"github.com/stretchr/testify/assert"
)

func TestSortMenuItemsByName(t *testing.T) {
	items := []models.MenuItem{{Name: "Zeta"}, {Name: "Apple"}, {Name: "Mango"}}
	SortMenuItems(items)
	assert.Equal(t, []string{"Apple", "Mango", "Zeta"}, names(items))
}

func TestSortMenuItemsVegFirst(t *testing.T) {
	items := []models.MenuItem{
		{Name: "Chicken Tikka", IsVeg: false},
		{Name: "Paneer Tikka", IsVeg: true},
		{Name: "Butter Chicken", IsVeg: false},
		{Name: "Aloo Gobi", IsVeg: true},
	}
	SortMenuItems(items)
	assert.Equal(t, []string{"Aloo Gobi", "Paneer Tikka", "Butter Chicken", "Chicken Tikka"}, names(items))
}

func TestSortMenuItemsIgnoresCase(t *testing.T) {
	items := []models.MenuItem{{Name: "Banana Split"}, {Name: "apple pie"}}
	SortMenuItems(items)
	assert.Equal(t, []string{"apple pie", "Banana Split"}, names(items))
}
