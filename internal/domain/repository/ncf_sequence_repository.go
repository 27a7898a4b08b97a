package repository

import (
	"context"

	"github.com/tu-usuario/factura-rd/internal/domain/entity"
)

// NCFSequenceRepository define el puerto de persistencia para secuencias NCF.
//
// LoadCandidates y CommitAdvance son el contrato de concurrencia del asignador:
// el "expected" de CommitAdvance funciona como guarda optimista — si otro
// proceso ya avanzó el consecutivo, el commit reporta conflicto y el asignador
// relee y reintenta. Dos llamadores nunca pueden recibir el mismo NCF.
type NCFSequenceRepository interface {
	Create(ctx context.Context, seq *entity.NCFSequence) error
	GetByID(ctx context.Context, id string) (*entity.NCFSequence, error)

	// LoadCandidates devuelve los rangos con números disponibles: activos y no
	// agotados, ordenados por range_from ascendente (la autorización más vieja
	// se consume primero). La vigencia la juzga el asignador, que así puede
	// distinguir "todos los rangos vencieron" de "no hay rangos".
	LoadCandidates(ctx context.Context, companyID, ncfType string) ([]*entity.NCFSequence, error)

	// CommitAdvance avanza el consecutivo de forma atómica:
	// UPDATE ... SET current = newCurrent, exhausted = exhausted
	// WHERE id = $1 AND current = expectedCurrent.
	// Devuelve false (sin error) cuando la guarda no casa: conflicto.
	CommitAdvance(ctx context.Context, id string, expectedCurrent, newCurrent int64, exhausted bool) (bool, error)

	// ListByCompany lista todas las secuencias de una empresa (activas e inactivas).
	ListByCompany(ctx context.Context, companyID string) ([]*entity.NCFSequence, error)

	// Deactivate desactiva administrativamente un rango. Nunca se eliminan.
	Deactivate(ctx context.Context, id string) error
}
