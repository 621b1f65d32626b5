package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/port"
)

var _ port.VariantStore = (*VariantsRepository)(nil)

// A VariantsRepository persists the product_colors collection. The
// position column keeps the draft's insertion order for display.
type VariantsRepository struct {
	sqldb sqldb
}

func NewVariantsRepository(sqldb sqldb) VariantsRepository {
	return VariantsRepository{sqldb}
}

func (r VariantsRepository) VariantsByProduct(
	ctx context.Context, productID string,
) ([]domain.ColorVariant, error) {
	const op = "VariantsRepository.VariantsByProduct"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, product_id, color_name, color_code
		FROM product_colors
		WHERE product_id = $1
		ORDER BY position;`

	rows, err := r.sqldb.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.ColorVariant
	for rows.Next() {
		var v domain.ColorVariant
		err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Code)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r VariantsRepository) InsertVariants(
	ctx context.Context, productID string, vs []domain.ColorVariant,
) (stored []domain.ColorVariant, insertErr error) {
	const op = "VariantsRepository.InsertVariants"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(vs) == 0 {
		return nil, nil
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer func() {
		if insertErr == nil {
			if err := tx.Commit(); err != nil {
				insertErr = fmt.Errorf("%s: failed to commit: %w", op, err)
				stored = nil
			}
			return
		}
		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO product_colors
			(id, product_id, color_name, color_code, position)
		VALUES ($1, $2, $3, $4, $5);`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	stored = make([]domain.ColorVariant, 0, len(vs))
	for i, v := range vs {
		v.ID = uuid.NewString()
		v.ProductID = productID
		_, err := stmt.ExecContext(ctx, v.ID, v.ProductID, v.Name, v.Code, i)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to exec: %w", op, err)
		}
		stored = append(stored, v)
	}
	return stored, nil
}

func (r VariantsRepository) DeleteProductVariants(
	ctx context.Context, productID string,
) error {
	const op = "VariantsRepository.DeleteProductVariants"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err := r.sqldb.ExecContext(ctx,
		`DELETE FROM product_colors WHERE product_id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
