package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/consulta-cnpj/internal/domain/entity"
	"github.com/jhoicas/consulta-cnpj/internal/domain/repository"
)

// Asegura que LookupLogRepo implementa repository.LookupLogRepository.
var _ repository.LookupLogRepository = (*LookupLogRepo)(nil)

// LookupLogRepo implementación del histórico de consultas sobre PostgreSQL.
type LookupLogRepo struct {
	q Querier
}

// NewLookupLogRepository construye el adaptador de persistencia del histórico. Acepta pool o tx (Querier).
func NewLookupLogRepository(q Querier) *LookupLogRepo {
	return &LookupLogRepo{q: q}
}

const lookupColumns = `id, cnpj, headquarters_cnpj, legal_name, regime, status, share_capital, outcome, created_at`

// Create persiste una entrada del histórico.
func (r *LookupLogRepo) Create(ctx context.Context, l *entity.LookupLog) error {
	query := `INSERT INTO cnpj_lookups (` + lookupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CNPJ, l.Headquarters, l.LegalName, l.Regime, l.Status,
		l.ShareCapital, l.Outcome, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}
	return nil
}

// List devuelve el histórico con paginación, más recientes primero.
func (r *LookupLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.LookupLog, error) {
	query := `SELECT ` + lookupColumns + ` FROM cnpj_lookups ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lookups: %w", err)
	}
	return scanLookups(rows)
}

// ListByRoot devuelve las consultas de todos los establecimientos con la raíz indicada.
func (r *LookupLogRepo) ListByRoot(ctx context.Context, root string, limit, offset int) ([]*entity.LookupLog, error) {
	query := `SELECT ` + lookupColumns + ` FROM cnpj_lookups
		WHERE cnpj LIKE $1 || '%' ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, root, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lookups by root: %w", err)
	}
	return scanLookups(rows)
}

func scanLookups(rows pgx.Rows) ([]*entity.LookupLog, error) {
	defer rows.Close()
	var list []*entity.LookupLog
	for rows.Next() {
		var l entity.LookupLog
		if err := rows.Scan(&l.ID, &l.CNPJ, &l.Headquarters, &l.LegalName, &l.Regime, &l.Status,
			&l.ShareCapital, &l.Outcome, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lookup: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
