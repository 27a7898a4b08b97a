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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices
			(id, company_id, customer_id, ncf, ncf_type, date, due_date, sale_type,
			 subtotal, tax, global_discount, total, amount_paid, balance, status,
			 void_reason, voided_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.NCF, invoice.NCFType,
		invoice.Date, nullIfZeroTime(invoice.DueDate), invoice.SaleType,
		invoice.Subtotal, invoice.Tax, invoice.GlobalDiscount, invoice.Total,
		invoice.AmountPaid, invoice.Balance, invoice.Status,
		nullIfEmpty(invoice.VoidReason), nullIfZeroTime(invoice.VoidedAt),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// El NCF tiene constraint único: dos facturas jamás comparten comprobante.
			return fmt.Errorf("ncf already stamped: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de detalle.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_lines
			(id, invoice_id, product_id, quantity, unit_price, discount, tax_rate, subtotal, tax, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ProductID, line.Quantity, line.UnitPrice,
		line.Discount, line.TaxRate, line.Subtotal, line.Tax, line.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// Update persiste los campos mutables. NCF y totales quedan fuera a propósito.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET amount_paid = $2,
		    balance     = $3,
		    status      = $4,
		    void_reason = COALESCE($5, void_reason),
		    voided_at   = COALESCE($6, voided_at),
		    updated_at  = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID,
		invoice.AmountPaid,
		invoice.Balance,
		invoice.Status,
		nullIfEmpty(invoice.VoidReason),
		nullIfZeroTime(invoice.VoidedAt),
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.get(id, false)
}

// GetByIDForUpdate obtiene la factura bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.get(id, true)
}

func (r *InvoiceRepo) get(id string, forUpdate bool) (*entity.Invoice, error) {
	query := selectInvoice + ` WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetLinesByInvoiceID obtiene todas las líneas de una factura.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, unit_price, discount, tax_rate, subtotal, tax, total
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity, &l.UnitPrice,
			&l.Discount, &l.TaxRate, &l.Subtotal, &l.Tax, &l.Total); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListByPeriod devuelve las facturas emitidas en [from, to), para el 607.
func (r *InvoiceRepo) ListByPeriod(companyID string, from, to time.Time) ([]*entity.Invoice, error) {
	query := selectInvoice + `
		WHERE company_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, ncf`
	return r.list(query, companyID, from, to)
}

// ListVoidedByPeriod devuelve las anuladas en [from, to) por fecha de
// anulación, para el 608.
func (r *InvoiceRepo) ListVoidedByPeriod(companyID string, from, to time.Time) ([]*entity.Invoice, error) {
	query := selectInvoice + `
		WHERE company_id = $1 AND status = 'voided' AND voided_at >= $2 AND voided_at < $3
		ORDER BY voided_at, ncf`
	return r.list(query, companyID, from, to)
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// ── helpers ───────────────────────────────────────────────────────────────────

const selectInvoice = `
	SELECT id, company_id, customer_id, ncf, ncf_type, date, due_date, sale_type,
	       subtotal, tax, global_discount, total, amount_paid, balance, status,
	       void_reason, voided_at, created_at, updated_at
	FROM invoices`

func scanInvoice(row pgxScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	var dueDate, voidedAt *time.Time
	var voidReason *string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.NCF, &inv.NCFType,
		&inv.Date, &dueDate, &inv.SaleType,
		&inv.Subtotal, &inv.Tax, &inv.GlobalDiscount, &inv.Total,
		&inv.AmountPaid, &inv.Balance, &inv.Status,
		&voidReason, &voidedAt,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.DueDate = derefTime(dueDate)
	inv.VoidedAt = derefTime(voidedAt)
	inv.VoidReason = derefStr(voidReason)
	return &inv, nil
}
