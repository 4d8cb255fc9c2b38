package repository

import (
	"context"

	"github.com/jhoicas/consulta-cnpj/internal/domain/entity"
)

// RegistryGateway define el puerto de consulta al registro público de empresas (DIP).
// La implementación vive en infrastructure y es responsable del transporte, la
// interpretación de status HTTP y los timeouts.
//
// Los errores deben ser *domain.LookupError (NotFound, Unavailable, Malformed).
type RegistryGateway interface {
	Fetch(ctx context.Context, cnpj string) (*entity.RegistryRecord, error)
}

// StateRegistrationGateway consulta las inscripciones estaduales de un establecimiento.
type StateRegistrationGateway interface {
	FetchRegistrations(ctx context.Context, cnpj string) ([]entity.StateRegistration, error)
}
