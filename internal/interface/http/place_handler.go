package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/placeshare/backend/internal/application"
	"github.com/placeshare/backend/internal/infrastructure/geocode"
	"github.com/placeshare/backend/pkg/response"
	"github.com/placeshare/backend/pkg/upload"
	"github.com/placeshare/backend/pkg/validation"
)

type PlaceHandler struct {
	Svc     *application.PlaceService
	Uploads *upload.Store
	Logger  *logrus.Logger
}

func NewPlaceHandler(svc *application.PlaceService, uploads *upload.Store, logger *logrus.Logger) *PlaceHandler {
	return &PlaceHandler{Svc: svc, Uploads: uploads, Logger: logger}
}

type createPlaceRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required,min=5"`
	Address     string `form:"address" binding:"required"`
}

type updatePlaceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
}

// GetByID GET /api/places/:pid
func (h *PlaceHandler) GetByID(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Request.Context(), c.Param("pid"))
	if err != nil {
		if errors.Is(err, application.ErrPlaceNotFound) {
			response.Error(c, http.StatusNotFound, "Could not find a place for the provided place id")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Something went wrong with the database, could not find a place")
		return
	}
	c.JSON(http.StatusOK, gin.H{"place": p})
}

// ListByUser GET /api/places/user/:uid
// Zero places and an unknown user produce the same 404.
func (h *PlaceHandler) ListByUser(c *gin.Context) {
	places, err := h.Svc.ListByUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, application.ErrPlaceNotFound) {
			response.Error(c, http.StatusNotFound, "Could not find a place for the provided user id")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Something went wrong with the database, please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

// Search GET /api/places/search?q=
func (h *PlaceHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusUnprocessableEntity, "Invalid inputs. Please check your input")
		return
	}
	places, err := h.Svc.Search(c.Request.Context(), q, 20)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Search is unavailable, please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

// Create POST /api/places (multipart with image)
func (h *PlaceHandler) Create(c *gin.Context) {
	var req createPlaceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("place create rejected")
		response.Error(c, http.StatusUnprocessableEntity, "Invalid inputs. Please check your input")
		return
	}

	imagePath, err := h.Uploads.Save(c, "image")
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Invalid inputs. Please check your input")
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), application.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		ImageURL:    imagePath,
		CreatorID:   c.GetString("userID"),
	})
	if err != nil {
		// The upload already hit disk; do not leave it orphaned.
		_ = h.Uploads.Remove(imagePath)
		switch {
		case errors.Is(err, geocode.ErrNoResults):
			response.Error(c, http.StatusUnprocessableEntity, "Could not find a place for the address provided")
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "Could not find a user for the given user Id")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create a new place, please try again")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"place": p})
}

// Update PATCH /api/places/:pid
func (h *PlaceHandler) Update(c *gin.Context) {
	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("place update rejected")
		response.Error(c, http.StatusUnprocessableEntity, "Invalid inputs. Please check your input")
		return
	}

	p, err := h.Svc.Update(c.Request.Context(), c.Param("pid"), c.GetString("userID"), application.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrPlaceNotFound):
			response.Error(c, http.StatusNotFound, "Could not find a place for the provided place id")
		case errors.Is(err, application.ErrNotOwner):
			// Kept at 500 for compatibility with existing clients, which
			// have only ever seen this status for a non-owner update.
			response.Error(c, http.StatusInternalServerError, "Action not allowed! You are not the creator of this place.")
		default:
			response.Error(c, http.StatusInternalServerError, "Something went wrong, the update could not be saved")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"place": p})
}

// Delete DELETE /api/places/:pid
func (h *PlaceHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("pid"), c.GetString("userID"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrPlaceNotFound):
			response.Error(c, http.StatusNotFound, "Deletion failed! The place doesn't exist")
		case errors.Is(err, application.ErrNotOwner):
			response.Error(c, http.StatusUnauthorized, "Action not allowed! You are not the creator of this place.")
		default:
			response.Error(c, http.StatusInternalServerError, "Something went wrong with the database, could not delete the place")
		}
		return
	}

	response.Message(c, http.StatusOK, "A place has been deleted")
}
