package controllers

import (
	"net/http"

	"github.com/barrelborn/digital-menu/services"
	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	Customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{Customers: customers}
}

// GetAllCustomers -> paginated list filtered by ?year=&month=&day=
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var query services.CustomerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, "Invalid customer query", err)
		return
	}

	page, err := cc.Customers.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch customers")
		return
	}
	c.JSON(http.StatusOK, page)
}

// ExportCustomers -> every match, no pagination, spreadsheet row shape
func (cc *CustomerController) ExportCustomers(c *gin.Context) {
	var query services.CustomerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, "Invalid customer query", err)
		return
	}

	rows, err := cc.Customers.Export(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "Failed to export customers")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateCustomer -> returns the existing record when the phone is known
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, "Invalid customer data", err)
		return
	}

	customer, err := cc.Customers.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Failed to save customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}
