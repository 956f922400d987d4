package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telmov/inkpress/internal/auth"
	"github.com/telmov/inkpress/internal/service/account"
)

type AuthHandler struct {
	accounts *account.Service
}

func NewAuthHandler(accounts *account.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var creds account.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.accounts.Login(creds)
	if errors.Is(err, account.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	} else if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jwt": token})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var data account.RegisterData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	info, err := h.accounts.Register(data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, info)
}

func (h *AuthHandler) UserInfo(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	info, err := h.accounts.UserInfo(identity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
