package lookup

import (
	"context"

	"github.com/jhoicas/consulta-cnpj/internal/application/dto"
	"github.com/jhoicas/consulta-cnpj/internal/domain/entity"
	"github.com/jhoicas/consulta-cnpj/internal/domain/repository"
	"github.com/jhoicas/consulta-cnpj/pkg/cnpj"
)

// HistoryUseCase lista el histórico de consultas.
type HistoryUseCase struct {
	repo repository.LookupLogRepository
}

// NewHistoryUseCase construye el caso de uso con el puerto de persistencia.
func NewHistoryUseCase(repo repository.LookupLogRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// List lista consultas con paginación, más recientes primero.
func (uc *HistoryUseCase) List(ctx context.Context, limit, offset int) (*dto.LookupLogListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.LookupLogListResponse{
		Items: logsToDTO(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByCompany lista con paginación las consultas de todos los establecimientos que comparten la raíz de raw.
func (uc *HistoryUseCase) ListByCompany(ctx context.Context, raw string, limit, offset int) (*dto.LookupLogListResponse, error) {
	page := dto.PageResponse{Limit: limit, Offset: offset}
	root := cnpj.Root(cnpj.Normalize(raw))
	if root == "" {
		return &dto.LookupLogListResponse{Items: []dto.LookupLogResponse{}, Page: page}, nil
	}
	list, err := uc.repo.ListByRoot(ctx, root, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.LookupLogListResponse{
		Items: logsToDTO(list),
		Page:  page,
	}, nil
}

func logsToDTO(list []*entity.LookupLog) []dto.LookupLogResponse {
	items := make([]dto.LookupLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.LookupLogResponse{
			ID:           l.ID,
			CNPJ:         l.CNPJ,
			Headquarters: l.Headquarters,
			LegalName:    l.LegalName,
			Regime:       l.Regime,
			Status:       l.Status,
			Outcome:      l.Outcome,
			CreatedAt:    l.CreatedAt,
		})
	}
	return items
}
