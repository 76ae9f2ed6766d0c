package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
	"github.com/rkowalski/shopsched/pkg/domain/repositories"
)

// PartRepository reads part timings from the parts table.
type PartRepository struct {
	db *pgxpool.Pool
}

// NewPartRepository creates a repository over a connection pool.
func NewPartRepository(db *pgxpool.Pool) *PartRepository {
	return &PartRepository{db: db}
}

// Verify interface compliance
var _ repositories.PartRepository = (*PartRepository)(nil)

// GetTiming looks up setup and cycle hours for a part revision. A NULL
// column means the value was never measured; the caller substitutes the
// shop estimate.
func (r *PartRepository) GetTiming(pn entities.PartNumber, rev entities.Revision) (entities.PartTiming, error) {
	query := `SELECT setup_time, cycle_time FROM parts WHERE part_number = $1 AND revision = $2`

	var setup, cycle *float64
	err := r.db.QueryRow(context.Background(), query, string(pn), string(rev)).Scan(&setup, &cycle)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.PartTiming{}, repositories.ErrTimingNotFound
	}
	if err != nil {
		return entities.PartTiming{}, fmt.Errorf("querying part %s rev %s: %w", pn, rev, err)
	}
	if setup == nil || cycle == nil {
		return entities.PartTiming{}, repositories.ErrTimingNotFound
	}

	timing := entities.PartTiming{
		SetupHours: decimal.NewFromFloat(*setup),
		CycleHours: decimal.NewFromFloat(*cycle),
	}
	if timing.SetupHours.IsNegative() || timing.CycleHours.IsNegative() {
		return entities.PartTiming{}, fmt.Errorf("part %s rev %s has negative timing", pn, rev)
	}
	return timing, nil
}
