package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/padoca/confeitaria/internal/catalog"
	"github.com/padoca/confeitaria/internal/customers"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	Repo *catalog.Repo
	Auth *customers.Auth
}

// Register mounts the public browse endpoints on the root router.
func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
}

// RegisterAdmin mounts catalog maintenance behind the session middleware;
// every handler additionally checks the caller against the whitelist.
func (h *CatalogHandler) RegisterAdmin(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Post("/products", h.createProduct)
		r.Delete("/products/{id}", h.deleteProduct)
		r.Get("/sizes", h.listSizes)
		r.Post("/sizes", h.createSize)
		r.Delete("/sizes/{id}", h.deleteSize)
		r.Get("/flavors", h.listFlavors)
		r.Post("/flavors", h.createFlavor)
		r.Delete("/flavors/{id}", h.deleteFlavor)
		r.Get("/flavor-levels", h.listFlavorLevels)
		r.Post("/flavor-levels", h.createFlavorLevel)
	})
}

func (h *CatalogHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.Auth.IsAdmin(r.Context(), CustomerID(r.Context()))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "authorization check failed")
			return
		}
		if !ok {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type productView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Flavor      string          `json:"flavor"`
	FlavorLevel string          `json:"flavor_level"`
	Size        string          `json:"size"`
	Yield       string          `json:"yield,omitempty"`
	Weight      string          `json:"weight,omitempty"`
}

func toProductView(p catalog.Product) productView {
	v := productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   catalog.UnitPrice(p),
	}
	if p.Flavor != nil {
		v.Flavor = p.Flavor.Name
		if p.Flavor.Level != nil {
			v.FlavorLevel = p.Flavor.Level.Name
		}
	}
	if p.Size != nil {
		v.Size = p.Size.Name
		v.Yield = p.Size.Yield
		v.Weight = p.Size.Weight
	}
	return v
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r, 3*time.Second)
	defer cancel()

	ps, err := h.Repo.ListProducts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := reqCtx(r, 3*time.Second)
	defer cancel()

	p, err := h.Repo.FindProduct(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toProductView(p))
}

type createProductReq struct {
	Name        string          `json:"name"`
	FlavorID    int64           `json:"flavor_id"`
	SizeID      int64           `json:"size_id"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Description string          `json:"description"`
}

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.FlavorID <= 0 || req.SizeID <= 0 || req.BasePrice.IsNegative() {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	ctx, cancel := reqCtx(r, 5*time.Second)
	defer cancel()

	id, err := h.Repo.CreateProduct(ctx, req.Name, req.FlavorID, req.SizeID, req.BasePrice, req.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Repo.DeleteProduct)
}

func (h *CatalogHandler) deleteSize(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Repo.DeleteSize)
}

func (h *CatalogHandler) deleteFlavor(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Repo.DeleteFlavor)
}

func (h *CatalogHandler) deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id int64) error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := reqCtx(r, 5*time.Second)
	defer cancel()

	if err := del(ctx, id); errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	} else if errors.Is(err, catalog.ErrInUse) {
		writeError(w, http.StatusConflict, "still referenced by a product or past order")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createSizeReq struct {
	Name   string          `json:"name"`
	Yield  string          `json:"yield"`
	Weight string          `json:"weight"`
	Price  decimal.Decimal `json:"price"`
}

func (h *CatalogHandler) createSize(w http.ResponseWriter, r *http.Request) {
	var req createSizeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	ctx, cancel := reqCtx(r, 5*time.Second)
	defer cancel()

	id, err := h.Repo.CreateSize(ctx, req.Name, req.Yield, req.Weight, req.Price)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *CatalogHandler) listSizes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r, 3*time.Second)
	defer cancel()

	out, err := h.Repo.ListSizes(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type createFlavorReq struct {
	Name        string `json:"name"`
	LevelID     int64  `json:"level_id"`
	Description string `json:"description"`
}

func (h *CatalogHandler) createFlavor(w http.ResponseWriter, r *http.Request) {
	var req createFlavorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.LevelID <= 0 {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	ctx, cancel := reqCtx(r, 5*time.Second)
	defer cancel()

	id, err := h.Repo.CreateFlavor(ctx, req.Name, req.LevelID, req.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *CatalogHandler) listFlavors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r, 3*time.Second)
	defer cancel()

	out, err := h.Repo.ListFlavors(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type createLevelReq struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (h *CatalogHandler) createFlavorLevel(w http.ResponseWriter, r *http.Request) {
	var req createLevelReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	ctx, cancel := reqCtx(r, 5*time.Second)
	defer cancel()

	id, err := h.Repo.CreateFlavorLevel(ctx, req.Name, req.Price)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *CatalogHandler) listFlavorLevels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r, 3*time.Second)
	defer cancel()

	out, err := h.Repo.ListFlavorLevels(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}
