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

const (
	defaultCustomerPage  = 1
	defaultCustomerLimit = 50
	exportTimeLayout     = "1/2/2006, 3:04:05 PM"
)

// CustomerQuery is the admin dashboard filter. Zero fields are unset.
type CustomerQuery struct {
	Page  int `form:"page" json:"page" validate:"omitempty,gte=1"`
	Limit int `form:"limit" json:"limit" validate:"omitempty,gte=1,lte=1000"`
	Year  int `form:"year" json:"year" validate:"omitempty,gte=1,lte=9999"`
	Month int `form:"month" json:"month" validate:"omitempty,gte=1,lte=12"`
	Day   int `form:"day" json:"day" validate:"omitempty,gte=1,lte=31"`
}

type CustomerPage struct {
	Customers  []models.Customer `json:"customers"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

type CustomerInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CustomerService struct {
	store database.Store
	loc   *time.Location
	now   func() time.Time
}

// NewCustomerService evaluates calendar filters and formats exports in loc.
func NewCustomerService(store database.Store, loc *time.Location) *CustomerService {
	if loc == nil {
		loc = time.UTC
	}
	return &CustomerService{store: store, loc: loc, now: time.Now}
}

// List returns one page, newest first, plus the total match count. Pages
// past the end are empty.
func (s *CustomerService) List(ctx context.Context, q CustomerQuery) (*CustomerPage, error) {
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	if q.Page == 0 {
		q.Page = defaultCustomerPage
	}
	if q.Limit == 0 {
		q.Limit = defaultCustomerLimit
	}

	customers, total, err := s.store.Customers(ctx, models.CustomerFilter{
		Year:  q.Year,
		Month: q.Month,
		Day:   q.Day,
		Page:  q.Page,
		Limit: q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return &CustomerPage{
		Customers:  customers,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: int((total + int64(q.Limit) - 1) / int64(q.Limit)),
	}, nil
}

// Export returns every customer matching the date parts of q, shaped for
// the spreadsheet download. Page and limit are ignored.
func (s *CustomerService) Export(ctx context.Context, q CustomerQuery) ([]models.CustomerExport, error) {
	q.Page, q.Limit = 0, 0
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	customers, _, err := s.store.Customers(ctx, models.CustomerFilter{
		Year:  q.Year,
		Month: q.Month,
		Day:   q.Day,
	})
	if err != nil {
		return nil, fmt.Errorf("export customers: %w", err)
	}

	rows := make([]models.CustomerExport, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, models.CustomerExport{
			Name:      c.Name,
			Phone:     c.Phone,
			CreatedAt: c.CreatedAt.In(s.loc).Format(exportTimeLayout),
		})
	}
	return rows, nil
}

func (s *CustomerService) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return s.store.CustomerByPhone(ctx, strings.TrimSpace(phone))
}

// Create stores a new customer or returns the one already holding the
// phone number.
func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	existing, err := s.FindByPhone(ctx, in.Phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("find customer: %w", err)
	}

	now := s.now().UTC()
	stored, created, err := s.store.CreateCustomerIfAbsent(ctx, &models.Customer{
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	if created {
		utils.InfoLogger.Infof("New customer captured (ID=%s)", stored.ID)
	}
	return stored, nil
}
