package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

// CartsHandler handles the /api/carts endpoints. Ownership is checked by
// the service; the handler only passes the caller along.
type CartsHandler struct {
	CartService *service.CartService
}

// HandleCreate handles POST /api/carts.
func (h *CartsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFrom(r.Context())
	c, err := h.CartService.Create(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, storefrontsdk.CartCreatedResponse{
		Status: "success",
		Cart:   toCartResponse(c),
	})
}

// HandleGet handles GET /api/carts/{cid}.
func (h *CartsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "cid")
	if !ok {
		return
	}
	caller, _ := IdentityFrom(r.Context())
	c, err := h.CartService.Get(r.Context(), caller, ids[0])
	h.respond(w, r, c, err)
}

// HandleAddProduct handles POST /api/carts/{cid}/products/{pid}.
func (h *CartsHandler) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "cid", "pid")
	if !ok {
		return
	}
	caller, _ := IdentityFrom(r.Context())
	c, err := h.CartService.AddProduct(r.Context(), caller, ids[0], ids[1])
	h.respond(w, r, c, err)
}

// HandleRemoveProduct handles DELETE /api/carts/{cid}/products/{pid}.
func (h *CartsHandler) HandleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "cid", "pid")
	if !ok {
		return
	}
	caller, _ := IdentityFrom(r.Context())
	c, err := h.CartService.RemoveProduct(r.Context(), caller, ids[0], ids[1])
	h.respond(w, r, c, err)
}

// HandleReplace handles PUT /api/carts/{cid}.
func (h *CartsHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "cid")
	if !ok {
		return
	}

	var req storefrontsdk.ReplaceCartRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	items := make([]domain.CartItem, len(req.Products))
	for i, it := range req.Products {
		items[i] = domain.CartItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	caller, _ := IdentityFrom(r.Context())
	c, err := h.CartService.Replace(r.Context(), caller, ids[0], items)
	h.respond(w, r, c, err)
}

func (h *CartsHandler) respond(w http.ResponseWriter, r *http.Request, c domain.Cart, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCartResponse(c))
}
