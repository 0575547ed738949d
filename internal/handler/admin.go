// Package handler defines HTTP handlers composing the middleware, the
// repositories and the response shaping. This file implements the admin
// area: dashboard counts, user management and store management.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/config"
	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/repository"
	"github.com/iliyamo/store-rating/internal/utils"
)

// AdminHandler bundles repositories for admin endpoints.  Role gating is
// done by the router middleware chain; by the time these run the caller is
// a verified admin.
type AdminHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Stores  *repository.StoreRepo
	Ratings *repository.RatingRepo
}

func NewAdminHandler(cfg config.Config, u *repository.UserRepo, s *repository.StoreRepo, r *repository.RatingRepo) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Users: u, Stores: s, Ratings: r}
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type createStoreReq struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address"`
	OwnerID *uint64 `json:"ownerId"`
}

// Dashboard returns the aggregate counts shown on the admin landing page.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.Count(ctx)
	if err != nil {
		c.Logger().Errorf("dashboard: count users failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	stores, err := h.Stores.Count(ctx)
	if err != nil {
		c.Logger().Errorf("dashboard: count stores failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	ratings, err := h.Ratings.Count(ctx)
	if err != nil {
		c.Logger().Errorf("dashboard: count ratings failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"totalUsers":   users,
		"totalStores":  stores,
		"totalRatings": ratings,
	})
}

// CreateUser creates an account with any of the three roles.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}
	if !utils.IsValidPassword(req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password does not meet policy"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, req.Address, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		}
		c.Logger().Errorf("admin create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}
	return c.JSON(http.StatusCreated, u)
}

// ListUsers returns users matching the optional filters, sorted by an
// allow-listed column.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	f := repository.ListFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		Role:    c.QueryParam("role"),
		SortBy:  c.QueryParam("sortBy"),
		Order:   c.QueryParam("order"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.Search(ctx, f)
	if err != nil {
		c.Logger().Errorf("list users failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one user's detail.  For store owners the response also
// carries the mean rating across their stores.
func (h *AdminHandler) GetUser(c echo.Context) error {
	// A non-numeric id matches no user, same as a numeric one that is
	// not in the table.
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		c.Logger().Errorf("get user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	resp := echo.Map{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"address": u.Address,
		"role":    u.Role,
	}
	if u.Role == model.RoleStoreOwner {
		avg, err := h.Users.OwnerAverageRating(ctx, u.ID)
		if err != nil {
			c.Logger().Errorf("owner rating lookup failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
		}
		resp["ownerRating"] = avg
	}
	return c.JSON(http.StatusOK, resp)
}

// ListStores returns stores with their rating aggregates, filtered and
// sorted like ListUsers (avg_rating is a sortable column here).
func (h *AdminHandler) ListStores(c echo.Context) error {
	f := repository.ListFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		SortBy:  c.QueryParam("sortBy"),
		Order:   c.QueryParam("order"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stores, err := h.Stores.Search(ctx, f)
	if err != nil {
		c.Logger().Errorf("list stores failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, stores)
}

// CreateStore creates a store, optionally assigned to an owner.  When an
// owner is given it must reference an existing store_owner account; the
// schema does not enforce that, so it is checked here at write time.
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req createStoreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.OwnerID != nil {
		owner, err := h.Users.GetByID(ctx, *req.OwnerID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner does not exist"})
			}
			c.Logger().Errorf("owner lookup failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
		}
		if owner.Role != model.RoleStoreOwner {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner must have store_owner role"})
		}
	}

	s, err := h.Stores.Create(ctx, req.Name, req.Email, req.Address, req.OwnerID)
	if err != nil {
		c.Logger().Errorf("admin create store failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create store"})
	}
	return c.JSON(http.StatusCreated, storeResp(s))
}

// storeResp shapes a store for responses; owner_id stays null for
// ownerless stores.
func storeResp(s *model.Store) echo.Map {
	return echo.Map{
		"id":       s.ID,
		"name":     s.Name,
		"email":    s.Email,
		"address":  s.Address,
		"owner_id": s.OwnerID,
	}
}
