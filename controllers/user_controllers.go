package controllers

import (
	"net/http"

	"github.com/barrelborn/digital-menu/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	Auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{Auth: auth}
}

// Login -> literal admin credential check, returns a bearer token
func (uc *UserController) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, "Invalid login data", err)
		return
	}

	result, err := uc.Auth.Login(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Login successful",
		"data":    result,
	})
}
