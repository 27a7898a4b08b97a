package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchases (id, company_id, supplier_id, ncf, date, subtotal, tax, total, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.CompanyID, purchase.SupplierID, purchase.NCF,
		purchase.Date, purchase.Subtotal, purchase.Tax, purchase.Total,
		purchase.CreatedAt, nullIfEmpty(purchase.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			// El NCF del proveedor es único por empresa: una misma compra no se
			// registra dos veces.
			return fmt.Errorf("purchase ncf already registered: %w", err)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := selectPurchase + ` WHERE id = $1`
	p, err := scanPurchase(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// ListByPeriod devuelve las compras registradas en [from, to), para el 606.
func (r *PurchaseRepo) ListByPeriod(companyID string, from, to time.Time) ([]*entity.Purchase, error) {
	query := selectPurchase + `
		WHERE company_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, ncf`
	rows, err := r.q.Query(context.Background(), query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ── helpers ───────────────────────────────────────────────────────────────────

const selectPurchase = `
	SELECT id, company_id, supplier_id, ncf, date, subtotal, tax, total, created_at, created_by
	FROM purchases`

func scanPurchase(row pgxScanner) (*entity.Purchase, error) {
	var p entity.Purchase
	var createdBy *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SupplierID, &p.NCF,
		&p.Date, &p.Subtotal, &p.Tax, &p.Total,
		&p.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedBy = derefStr(createdBy)
	return &p, nil
}
