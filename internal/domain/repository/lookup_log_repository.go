package repository

import (
	"context"

	"github.com/jhoicas/consulta-cnpj/internal/domain/entity"
)

// LookupLogRepository persiste el histórico de consultas.
type LookupLogRepository interface {
	Create(ctx context.Context, log *entity.LookupLog) error
	List(ctx context.Context, limit, offset int) ([]*entity.LookupLog, error)
	ListByRoot(ctx context.Context, root string, limit, offset int) ([]*entity.LookupLog, error)
}
