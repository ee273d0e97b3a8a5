package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sendme-app/sendme-backend/internal/dtos"
	"github.com/sendme-app/sendme-backend/internal/models"
	"github.com/sendme-app/sendme-backend/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// AuthenticateByPhone is the POST /auth/phone endpoint. Find-or-create:
// it never fails for a well-formed phone number.
func (h *AuthHandler) AuthenticateByPhone(c *gin.Context) {
	var req dtos.PhoneAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	user, isNew, err := h.Users.FindOrCreateByPhone(req.PhoneNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.AuthResponse{
		User:      toProfile(user),
		IsNewUser: isNew,
	})
}

func toProfile(user *models.User) dtos.UserProfile {
	return dtos.UserProfile{
		UserID:             user.ID,
		PhoneNumber:        user.PhoneNumber,
		Name:               user.Name,
		Email:              user.Email,
		OnboardingComplete: user.OnboardingComplete,
	}
}
