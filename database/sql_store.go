package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barrelborn/digital-menu/models"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// menuItemRecord stores every menu collection in one table, keyed by the
// collection column.
type menuItemRecord struct {
	models.MenuItem
	Collection string `gorm:"type:varchar(191);index;not null"`
}

func (menuItemRecord) TableName() string { return "menu_items" }

// customerRecord keeps the calendar date of CreatedAt, in the store's
// location, next to the row so date filters stay dialect independent.
type customerRecord struct {
	models.Customer
	CreatedYear  int `gorm:"index:idx_customers_created_on,priority:1"`
	CreatedMonth int `gorm:"index:idx_customers_created_on,priority:2"`
	CreatedDay   int `gorm:"index:idx_customers_created_on,priority:3"`
}

func (customerRecord) TableName() string { return "customers" }

// SQLStore implements Store on gorm (MySQL in production, SQLite locally and
// in tests).
type SQLStore struct {
	db  *gorm.DB
	loc *time.Location
}

func NewSQLStore(db *gorm.DB, loc *time.Location) (*SQLStore, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &SQLStore{db: db, loc: loc}
	if err := db.AutoMigrate(&menuItemRecord{}, &models.CartItem{}, &customerRecord{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return s, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) CollectionNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&menuItemRecord{}).
		Distinct("collection").
		Order("collection").
		Pluck("collection", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *SQLStore) MenuItems(ctx context.Context, collection string) ([]models.MenuItem, error) {
	var rows []menuItemRecord
	if err := s.db.WithContext(ctx).Where("collection = ?", collection).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	return menuItemsFromRecords(rows), nil
}

func (s *SQLStore) SearchMenuItems(ctx context.Context, collection, term string) ([]models.MenuItem, error) {
	// SQLite's LOWER and LIKE only fold ASCII.
	if s.db.Dialector.Name() == "sqlite" {
		items, err := s.MenuItems(ctx, collection)
		if err != nil {
			return nil, err
		}
		return filterByText(items, term), nil
	}

	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	var rows []menuItemRecord
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Where("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return menuItemsFromRecords(rows), nil
}

// filterByText keeps items whose name or description contains term under
// Unicode case folding.
func filterByText(items []models.MenuItem, term string) []models.MenuItem {
	fold := cases.Fold()
	needle := fold.String(term)
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(fold.String(it.Name), needle) || strings.Contains(fold.String(it.Description), needle) {
			out = append(out, it)
		}
	}
	return out
}

func (s *SQLStore) FindMenuItem(ctx context.Context, collection, id string) (*models.MenuItem, error) {
	var row menuItemRecord
	err := s.db.WithContext(ctx).Where("collection = ? AND id = ?", collection, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	item := row.MenuItem
	return &item, nil
}

func (s *SQLStore) InsertMenuItem(ctx context.Context, collection string, item *models.MenuItem) error {
	item.ID = uuid.NewString()
	row := menuItemRecord{MenuItem: *item, Collection: collection}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *SQLStore) ClearCollection(ctx context.Context, collection string) error {
	return s.db.WithContext(ctx).Where("collection = ?", collection).Delete(&menuItemRecord{}).Error
}

func (s *SQLStore) CartItems(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.WithContext(ctx).Order("created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQLStore) IncrementCartItem(ctx context.Context, menuItemID string, quantity int) (*models.CartItem, error) {
	now := time.Now().UTC()
	row := models.CartItem{
		ID:         uuid.NewString(),
		MenuItemID: menuItemID,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "menu_item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", quantity),
			"updated_at": now,
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var stored models.CartItem
	if err := s.db.WithContext(ctx).Where("menu_item_id = ?", menuItemID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *SQLStore) DeleteCartItem(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{}).Error
}

func (s *SQLStore) ClearCart(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.CartItem{}).Error
}

func (s *SQLStore) customerQuery(ctx context.Context, f models.CustomerFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&customerRecord{})
	if f.Year != 0 {
		q = q.Where("created_year = ?", f.Year)
	}
	if f.Month != 0 {
		q = q.Where("created_month = ?", f.Month)
	}
	if f.Day != 0 {
		q = q.Where("created_day = ?", f.Day)
	}
	return q
}

func (s *SQLStore) Customers(ctx context.Context, f models.CustomerFilter) ([]models.Customer, int64, error) {
	var total int64
	if err := s.customerQuery(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := s.customerQuery(ctx, f).Order("created_at DESC").Order("id")
	if f.Limit > 0 {
		q = q.Offset(f.Offset()).Limit(f.Limit)
	}
	var rows []customerRecord
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	customers := make([]models.Customer, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, r.Customer)
	}
	return customers, total, nil
}

func (s *SQLStore) CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var row customerRecord
	err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c := row.Customer
	return &c, nil
}

func (s *SQLStore) CreateCustomerIfAbsent(ctx context.Context, c *models.Customer) (*models.Customer, bool, error) {
	local := c.CreatedAt.In(s.loc)
	row := customerRecord{
		Customer:     *c,
		CreatedYear:  local.Year(),
		CreatedMonth: int(local.Month()),
		CreatedDay:   local.Day(),
	}
	row.ID = uuid.NewString()

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}

	stored, err := s.CustomerByPhone(ctx, c.Phone)
	if err != nil {
		return nil, false, err
	}
	return stored, res.RowsAffected == 1, nil
}

func (s *SQLStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) CreateUserIfAbsent(ctx context.Context, u *models.User) (*models.User, error) {
	row := *u
	row.ID = uuid.NewString()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return s.UserByUsername(ctx, u.Username)
}

func menuItemsFromRecords(rows []menuItemRecord) []models.MenuItem {
	items := make([]models.MenuItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.MenuItem)
	}
	return items
}

// escapeLike quotes LIKE wildcards with '!' as the escape character.
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}
