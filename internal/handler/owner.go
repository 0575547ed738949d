// This file implements the store-owner area: the owner dashboard and the
// owner-scoped store mutations. Update and delete run behind the ownership
// guard: the target is loaded fresh on every request, its owner compared to
// the caller, and only then does the mutation proceed. Owning some store is
// never enough - the caller must own this one.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/middleware"
	"github.com/iliyamo/store-rating/internal/repository"
)

// OwnerHandler bundles repositories for store-owner endpoints.
type OwnerHandler struct {
	Users   *repository.UserRepo
	Stores  *repository.StoreRepo
	Ratings *repository.RatingRepo
}

func NewOwnerHandler(u *repository.UserRepo, s *repository.StoreRepo, r *repository.RatingRepo) *OwnerHandler {
	return &OwnerHandler{Users: u, Stores: s, Ratings: r}
}

type ownerStoreReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Dashboard returns the owner's stores, the ratings they received and the
// per-store averages.
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stores, err := h.Stores.ListByOwner(ctx, ownerID)
	if err != nil {
		c.Logger().Errorf("owner dashboard: list stores failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	ratings, err := h.Ratings.ListForOwner(ctx, ownerID)
	if err != nil {
		c.Logger().Errorf("owner dashboard: list ratings failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	averages, err := h.Ratings.AveragesForOwner(ctx, ownerID)
	if err != nil {
		c.Logger().Errorf("owner dashboard: averages failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	items := make([]echo.Map, 0, len(stores))
	for _, s := range stores {
		items = append(items, echo.Map{
			"id":      s.ID,
			"name":    s.Name,
			"email":   s.Email,
			"address": s.Address,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stores":   items,
		"ratings":  ratings,
		"averages": averages,
	})
}

// CreateStore creates a store owned by the caller.  The store email is
// defaulted from the owner's account email.
func (h *OwnerHandler) CreateStore(c echo.Context) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req ownerStoreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.Name == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	owner, err := h.Users.GetByID(ctx, ownerID)
	if err != nil {
		c.Logger().Errorf("owner create store: load owner failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	s, err := h.Stores.Create(ctx, req.Name, owner.Email, req.Address, &ownerID)
	if err != nil {
		c.Logger().Errorf("owner create store failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, storeResp(s))
}

// UpdateStore updates name and address of a store the caller owns.
func (h *OwnerHandler) UpdateStore(c echo.Context) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req ownerStoreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.Name == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Ownership guard: load fresh, then compare.
	s, err := h.Stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		c.Logger().Errorf("update store: load failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if !s.OwnedBy(ownerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your store"})
	}

	if err := h.Stores.UpdateByIDAndOwner(ctx, id, ownerID, req.Name, req.Address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		c.Logger().Errorf("update store failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	updated, err := h.Stores.GetByID(ctx, id)
	if err != nil {
		c.Logger().Errorf("update store: reload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, storeResp(updated))
}

// DeleteStore removes a store the caller owns, together with its ratings.
func (h *OwnerHandler) DeleteStore(c echo.Context) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Stores.DeleteByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your store"})
		default:
			c.Logger().Errorf("delete store failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "store deleted"})
}
