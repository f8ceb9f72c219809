package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rubenhtun/luxora-store/internal/middleware"
	"github.com/rubenhtun/luxora-store/internal/user"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, u.Profile())
}

type updatePhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

func (h *UserHandler) UpdatePhone(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req updatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	u, err := h.users.UpdatePhone(c.Request.Context(), userID, req.Phone)
	if err != nil {
		if errors.Is(err, user.ErrInvalidPhone) {
			c.JSON(http.StatusBadRequest, gin.H{"message": user.ErrInvalidPhone.Error()})
			return
		}
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": user.ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update phone"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u.Profile(), "message": "phone updated"})
}
