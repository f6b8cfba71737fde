package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListProductsParams mirrors the listing query string. Zero or negative
// Limit and Page fall back to the defaults.
type ListProductsParams struct {
	Limit int
	Page  int
	Sort  string // "asc", "desc" or empty
	Query string // category, or "true"/"false" for status
}

type ProductPage struct {
	Products   []domain.Product
	Total      int
	TotalPages int
	Page       int
	Limit      int
}

func (p ProductPage) HasPrev() bool { return p.Page > 1 }
func (p ProductPage) HasNext() bool { return p.Page < p.TotalPages }

type NewProduct struct {
	Title       string
	Description string
	Code        string
	Price       int64
	Stock       int
	Category    string
	Thumbnails  []string
	Status      *bool // defaults to listed
}

type ProductService struct {
	Store store.Store
}

func (s *ProductService) List(ctx context.Context, p ListProductsParams) (ProductPage, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)
	page := max(p.Page, 1)

	// Pages past what an int offset can address are simply empty.
	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}

	q := domain.ProductQuery{
		Match:  strings.TrimSpace(p.Query),
		Limit:  limit,
		Offset: offset,
	}
	switch p.Sort {
	case "asc":
		q.Sort = domain.SortPriceAsc
	case "desc":
		q.Sort = domain.SortPriceDesc
	}

	products, total, err := s.Store.Products().ListProducts(ctx, q)
	if err != nil {
		return ProductPage{}, err
	}

	return ProductPage{
		Products:   products,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
		Page:       page,
		Limit:      limit,
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Store.Products().GetProduct(ctx, id)
	return p, mapStoreErr(err)
}

// Create validates and stores a product. Every field except thumbnails and
// status is required, and price and stock must be positive.
func (s *ProductService) Create(ctx context.Context, in NewProduct) (domain.Product, error) {
	p := domain.Product{
		ID:          idx.New().String(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Code:        strings.TrimSpace(in.Code),
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    strings.TrimSpace(in.Category),
		Thumbnails:  in.Thumbnails,
		Status:      true,
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}

	if p.Title == "" || p.Description == "" || p.Code == "" || p.Category == "" || p.Price <= 0 || p.Stock <= 0 {
		return domain.Product{}, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}

	if err := s.Store.Products().CreateProduct(ctx, p); err != nil {
		return domain.Product{}, mapStoreErr(err)
	}

	slogx.FromContext(ctx).Info("product created", slog.String("product_id", p.ID), slog.String("code", p.Code))
	return s.Get(ctx, p.ID)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Products().DeleteProduct(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	slogx.FromContext(ctx).Info("product deleted", slog.String("product_id", id))
	return nil
}
