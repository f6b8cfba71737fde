package sqlite

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

const productColumns = `id, title, description, code, price, status, stock, category, thumbnails, created_at`

type productsRepo struct {
	db dbtx
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p          domain.Product
		thumbnails string
		createdAt  int64
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Code, &p.Price,
		&p.Status, &p.Stock, &p.Category, &thumbnails, &createdAt); err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal([]byte(thumbnails), &p.Thumbnails); err != nil {
		return domain.Product{}, err
	}
	p.CreatedAt = fromMillis(createdAt)
	return p, nil
}

func (r *productsRepo) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

// productFilter renders the WHERE clause for q. "true" and "false" select
// on status, anything else on category.
func productFilter(q domain.ProductQuery) (string, []any) {
	switch q.Match {
	case "":
		return "", nil
	case "true":
		return ` WHERE status = ?`, []any{true}
	case "false":
		return ` WHERE status = ?`, []any{false}
	default:
		return ` WHERE category = ?`, []any{q.Match}
	}
}

func (r *productsRepo) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error) {
	where, args := productFilter(q)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + productColumns + ` FROM products` + where)
	switch q.Sort {
	case domain.SortPriceAsc:
		b.WriteString(` ORDER BY price ASC, id`)
	case domain.SortPriceDesc:
		b.WriteString(` ORDER BY price DESC, id`)
	default:
		b.WriteString(` ORDER BY created_at, id`)
	}
	b.WriteString(` LIMIT ? OFFSET ?`)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}
	thumbnails, err := json.Marshal(p.Thumbnails)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Code, p.Price, p.Status, p.Stock,
		p.Category, string(thumbnails), toMillis(p.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *productsRepo) DeleteProduct(ctx context.Context, id string) error {
	return expectAffected(r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id))
}
