package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

// ProductsHandler handles the /api/products endpoints.
type ProductsHandler struct {
	ProductService *service.ProductService
}

// HandleList handles GET /api/products?limit=&page=&sort=&query=
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := service.ListProductsParams{
		Limit: atoiOrZero(q.Get("limit")),
		Page:  atoiOrZero(q.Get("page")),
		Sort:  q.Get("sort"),
		Query: q.Get("query"),
	}
	if params.Sort != "" && params.Sort != "asc" && params.Sort != "desc" {
		httpx.WriteMessage(w, http.StatusBadRequest, "sort must be asc or desc")
		return
	}

	page, err := h.ProductService.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]storefrontsdk.ProductResponse, len(page.Products))
	for i, p := range page.Products {
		payload[i] = toProductResponse(p)
	}

	resp := storefrontsdk.ProductPageResponse{
		Status:      "success",
		Payload:     payload,
		TotalPages:  page.TotalPages,
		Page:        page.Page,
		HasPrevPage: page.HasPrev(),
		HasNextPage: page.HasNext(),
	}
	if resp.HasPrevPage {
		prev := page.Page - 1
		link := pageLink(r.URL.Path, params, page.Limit, prev)
		resp.PrevPage, resp.PrevLink = &prev, &link
	}
	if resp.HasNextPage {
		next := page.Page + 1
		link := pageLink(r.URL.Path, params, page.Limit, next)
		resp.NextPage, resp.NextLink = &next, &link
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

func pageLink(path string, params service.ListProductsParams, limit, page int) string {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("page", strconv.Itoa(page))
	if params.Sort != "" {
		v.Set("sort", params.Sort)
	}
	if params.Query != "" {
		v.Set("query", params.Query)
	}
	return path + "?" + v.Encode()
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// HandleGet handles GET /api/products/{id}.
func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	p, err := h.ProductService.Get(r.Context(), ids[0])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductResponse(p))
}

// HandleCreate handles POST /api/products. Admin only.
func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req storefrontsdk.CreateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	p, err := h.ProductService.Create(r.Context(), service.NewProduct{
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Thumbnails:  req.Thumbnails,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, storefrontsdk.ProductCreatedResponse{
		Status:  "success",
		Product: toProductResponse(p),
	})
}

// HandleDelete handles DELETE /api/products/{id}. Admin only.
func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(r.Context(), ids[0]); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "product deleted")
}
