// This file implements the endpoints available to every authenticated
// user: browsing stores with their rating aggregates and submitting or
// revising a rating.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/middleware"
	"github.com/iliyamo/store-rating/internal/queue"
	"github.com/iliyamo/store-rating/internal/repository"
	queuepublisher "github.com/iliyamo/store-rating/internal/service"
)

// StoreHandler bundles repositories for the authenticated store browse and
// rating endpoints.
type StoreHandler struct {
	Stores  *repository.StoreRepo
	Ratings *repository.RatingRepo
}

func NewStoreHandler(s *repository.StoreRepo, r *repository.RatingRepo) *StoreHandler {
	return &StoreHandler{Stores: s, Ratings: r}
}

type rateReq struct {
	Rating int `json:"rating"`
}

// List returns all stores matching the optional name/address filters,
// each with its overall rating and the caller's own rating if any.
func (h *StoreHandler) List(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stores, err := h.Stores.ListWithUserRating(ctx, userID, c.QueryParam("name"), c.QueryParam("address"))
	if err != nil {
		c.Logger().Errorf("store list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, stores)
}

// Rate submits or revises the caller's rating for a store.  Validation and
// the existence check run before the write; the write itself is a single
// atomic upsert on the (user, store) unique key.
func (h *StoreHandler) Rate(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 64)
	if err != nil || storeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
	}
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be 1-5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Stores.Exists(ctx, storeID)
	if err != nil {
		c.Logger().Errorf("rate: existence check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
	}

	if err := h.Ratings.Upsert(ctx, userID, storeID, req.Rating); err != nil {
		c.Logger().Errorf("rate: upsert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	// Publishing is best effort; a broker outage must not fail the rating.
	_ = queuepublisher.PublishRatingSubmitted(ctx, queue.RatingSubmittedEvent{
		UserID:      userID,
		StoreID:     storeID,
		Rating:      req.Rating,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "rating saved"})
}
