package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo consecutivos por tenant. El UPSERT con RETURNING hace el
// incremento atómico: dos altas concurrentes jamás reciben el mismo número.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador de secuencias.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente consecutivo para (company, kind).
func (r *SequenceRepo) Next(companyID, kind string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO tenant_sequences (company_id, kind, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, kind) DO UPDATE SET value = tenant_sequences.value + 1
		RETURNING value`, companyID, kind).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s/%s: %w", companyID, kind, err)
	}
	return n, nil
}
