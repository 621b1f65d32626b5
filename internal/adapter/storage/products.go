package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/port"
)

var _ port.ProductStore = (*ProductsRepository)(nil)

// A ProductsRepository persists the products collection. The image list
// is stored in the image_url text column, which historically held a
// bare URL; both forms are normalized through the image list codec at
// this boundary. The price column keeps its legacy misspelled name
// "prince" for compatibility with existing rows.
type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

const productColumns = `id, name, description, prince, category, stock, size, image_url`

func (r ProductsRepository) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at, id;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	idx := make(map[string]int)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		idx[p.ID] = len(ps)
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.attachColors(ctx, ps, idx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsRepository.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1;`

	p, err := scanProduct(r.sqldb.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	ps := []domain.Product{p}
	if err := r.attachColors(ctx, ps, map[string]int{p.ID: 0}); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return ps[0], nil
}

func (r ProductsRepository) InsertProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.InsertProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.ID = uuid.NewString()
	query := `
		INSERT INTO products
			(id, name, description, prince, category, stock, size, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	_, err := r.sqldb.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category,
		p.Stock, p.Size, domain.EncodeImageList(p.Images),
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE products SET
			name = $2,
			description = $3,
			prince = $4,
			category = $5,
			stock = $6,
			size = $7,
			image_url = $8
		WHERE id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category,
		p.Stock, p.Size, domain.EncodeImageList(p.Images),
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return p, nil
}

func (r ProductsRepository) DeleteProduct(
	ctx context.Context, id string,
) error {
	const op = "ProductsRepository.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var imageURL string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.Category, &p.Stock, &p.Size, &imageURL,
	)
	if err != nil {
		return domain.Product{}, err
	}
	p.Images = domain.DecodeImageList(imageURL)
	return p, nil
}

// attachColors loads the variant rows of every product in ps and
// attaches them in insertion order. idx maps product id to its slot.
func (r ProductsRepository) attachColors(
	ctx context.Context, ps []domain.Product, idx map[string]int,
) error {
	if len(ps) == 0 {
		return nil
	}

	query := `
		SELECT id, product_id, color_name, color_code
		FROM product_colors
		ORDER BY product_id, position;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.ColorVariant
		err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Code)
		if err != nil {
			return err
		}
		i, ok := idx[v.ProductID]
		if !ok {
			continue
		}
		ps[i].Colors = append(ps[i].Colors, v)
	}
	return rows.Err()
}
