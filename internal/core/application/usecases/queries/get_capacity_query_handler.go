package queries

import (
	"context"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCapacityQueryHandler reads the capacity ledger for a postal code.
type GetCapacityQueryHandler struct {
	db *gorm.DB
}

// NewGetCapacityQueryHandler creates a handler for capacity lookups.
// Requires a GORM database connection for query execution.
func NewGetCapacityQueryHandler(db *gorm.DB) GetCapacityQueryHandler {
	return GetCapacityQueryHandler{db: db}
}

// Handle executes the capacity lookup.
// A laundromat with no ledger row for the date has consumed nothing, so the
// left join falls back to zero.
func (h GetCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetCapacityQuery,
) ([]GetCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.name,
			l.daily_capacity,
			COALESCE(c.consumed, 0)
		FROM laundromats l
		JOIN laundromat_service_areas a ON a.laundromat_id = l.id
		LEFT JOIN capacity_days c ON c.laundromat_id = l.id AND c.date = ?
		WHERE a.postal_code = ? AND l.active
		ORDER BY l.name
	`, laundromat.DateKey(query.Date()), query.PostalCode().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	capacities := make([]GetCapacityQueryResponse, 0)
	for rows.Next() {
		var resp GetCapacityQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &resp.Name, &resp.Ceiling, &resp.Consumed); err != nil {
			return nil, err
		}

		laundromatID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.LaundromatID = laundromatID

		resp.Remaining = resp.Ceiling - resp.Consumed
		if resp.Remaining < 0 {
			resp.Remaining = 0
		}
		capacities = append(capacities, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return capacities, nil
}
