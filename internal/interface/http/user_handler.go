package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/placeshare/backend/internal/application"
	"github.com/placeshare/backend/pkg/response"
	"github.com/placeshare/backend/pkg/upload"
	"github.com/placeshare/backend/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	Uploads *upload.Store
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, uploads *upload.Store, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Uploads: uploads, Logger: logger}
}

type signupRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// List GET /api/users. Password hashes are excluded from serialization.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch the users, please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Signup POST /api/users/signup (multipart with image)
func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("signup rejected")
		response.Error(c, http.StatusUnprocessableEntity, "Invalid inputs, please check your data")
		return
	}

	imagePath, err := h.Uploads.Save(c, "image")
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Invalid inputs, please check your data")
		return
	}

	u, token, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: imagePath,
	})
	if err != nil {
		_ = h.Uploads.Remove(imagePath)
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error(c, http.StatusUnprocessableEntity, "User exists already, please log in")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Signing up failed, please try again later")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"userId": u.ID, "email": u.Email, "token": token})
}

// Login POST /api/users/login
// An unknown email maps to 403 and a wrong password to 401; the message is
// identical so the response body leaks nothing.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("login rejected")
		response.Error(c, http.StatusUnprocessableEntity, "Invalid inputs, please check your data")
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusForbidden, "Could not identify user, please check the e-mail address and the password")
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Could not identify user, please check the e-mail address and the password")
		default:
			response.Error(c, http.StatusInternalServerError, "Logging in failed, please try again later")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": u.ID, "email": u.Email, "token": token})
}
