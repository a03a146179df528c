package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/models"
	"github.com/barrelborn/digital-menu/utils"
)

// MenuItemInput is the body of an administrative menu insert.
type MenuItemInput struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Price       *models.Price `json:"price" validate:"required"`
	Category    string        `json:"category" validate:"required"`
	IsVeg       *bool         `json:"isVeg" validate:"required"`
	Image       string        `json:"image" validate:"required,http_url"`
	IsAvailable *bool         `json:"isAvailable"`
}

// FixVegResult reports a veg classification maintenance run.
type FixVegResult struct {
	Updated int      `json:"updated"`
	Details []string `json:"details"`
}

type MenuService struct {
	store        database.Store
	resolver     *CategoryResolver
	restaurantID string
	now          func() time.Time
}

func NewMenuService(store database.Store, resolver *CategoryResolver, restaurantID string) *MenuService {
	return &MenuService{
		store:        store,
		resolver:     resolver,
		restaurantID: restaurantID,
		now:          time.Now,
	}
}

// Categories returns the fixed catalog.
func (s *MenuService) Categories() []string {
	return models.Categories()
}

// ListAll reads every catalog collection literally; no name resolution.
func (s *MenuService) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	all := []models.MenuItem{}
	for _, category := range models.Categories() {
		items, err := s.store.MenuItems(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", category, err)
		}
		all = append(all, items...)
	}
	SortMenuItems(all)
	return all, nil
}

func (s *MenuService) ByCategory(ctx context.Context, token string) []models.MenuItem {
	return s.resolver.Resolve(ctx, token)
}

// ByID scans the catalog collections in order and returns the first hit.
func (s *MenuService) ByID(ctx context.Context, id string) (*models.MenuItem, error) {
	for _, category := range models.Categories() {
		item, err := s.store.FindMenuItem(ctx, category, id)
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find %s in %s: %w", id, category, err)
		}
		return item, nil
	}
	return nil, database.ErrNotFound
}

// AddMenuItem inserts into the collection named by the item's category.
// The category does not have to be in the catalog.
func (s *MenuService) AddMenuItem(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := in.Price.Validate(); err != nil {
		return nil, invalid("price", err.Error())
	}
	if err := models.ValidateCollectionName(in.Category); err != nil {
		return nil, invalid("category", "is not a usable collection name")
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	now := s.now().UTC()
	item := &models.MenuItem{
		Name:         in.Name,
		Description:  in.Description,
		Price:        *in.Price,
		Category:     in.Category,
		IsVeg:        *in.IsVeg,
		Image:        in.Image,
		IsAvailable:  available,
		RestaurantID: s.restaurantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.InsertMenuItem(ctx, in.Category, item); err != nil {
		return nil, fmt.Errorf("insert menu item: %w", err)
	}
	utils.InfoLogger.Infof("Menu item %s added to %q", item.ID, in.Category)
	return item, nil
}

// ClearAll empties every catalog collection. Irreversible.
func (s *MenuService) ClearAll(ctx context.Context) error {
	for _, category := range models.Categories() {
		if err := s.store.ClearCollection(ctx, category); err != nil {
			return fmt.Errorf("clear %s: %w", category, err)
		}
	}
	utils.InfoLogger.Warn("All catalog menu collections cleared")
	return nil
}

// FixVegClassification is a maintenance placeholder; it changes nothing.
func (s *MenuService) FixVegClassification(_ context.Context) FixVegResult {
	return FixVegResult{Updated: 0, Details: []string{}}
}
