package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-rd/internal/application/billing"
	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
	"github.com/tu-usuario/factura-rd/internal/infrastructure/memory"
)

const testUser = "22222222-2222-2222-2222-222222222222"

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria para el caso de uso completo
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string][]*entity.InvoiceLine
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		lines:    make(map[string][]*entity.InvoiceLine),
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	cp := *line
	r.lines[line.InvoiceID] = append(r.lines[line.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	return r.lines[invoiceID], nil
}

func (r *fakeInvoiceRepo) ListByPeriod(companyID string, from, to time.Time) ([]*entity.Invoice, error) {
	return nil, nil
}

func (r *fakeInvoiceRepo) ListVoidedByPeriod(companyID string, from, to time.Time) ([]*entity.Invoice, error) {
	return nil, nil
}

type fakeCustomerRepo struct{ customers map[string]*entity.Customer }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) ListByCompany(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(*entity.Customer) error { return nil }

type fakeProductRepo struct{ products map[string]*entity.Product }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }

func (r *fakeProductRepo) UpdateCost(string, decimal.Decimal) error { return nil }

type fakeWarehouseRepo struct{ warehouses map[string]*entity.Warehouse }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}
func (r *fakeWarehouseRepo) ListByCompany(string) ([]*entity.Warehouse, error) { return nil, nil }

// fakeTxRunner ejecuta el callback directamente sobre los repos en memoria:
// el contrato transaccional real lo da PostgreSQL, aquí solo importa el flujo.
type fakeTxRunner struct {
	invoiceRepo *fakeInvoiceRepo
	ncfRepo     repository.NCFSequenceRepository
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	ncfRepo repository.NCFSequenceRepository,
) error) error {
	return fn(nil, nil, nil, r.invoiceRepo, nil, r.ncfRepo)
}

// fakeInventoryUC registra las salidas sin tocar stock; outErr simula un
// almacén sin existencias.
type fakeInventoryUC struct {
	outErr error
	outs   int
}

func (u *fakeInventoryUC) RegisterOUTInTx(
	_ repository.InventoryMovementRepository,
	_ repository.StockRepository,
	_ *entity.Product,
	_, _, _ string,
	_ decimal.Decimal,
	_ time.Time,
	_ string,
) error {
	if u.outErr != nil {
		return u.outErr
	}
	u.outs++
	return nil
}

func (u *fakeInventoryUC) RegisterINInTx(
	_ repository.InventoryMovementRepository,
	_ repository.StockRepository,
	_, _, _ string,
	_, _ decimal.Decimal,
	_ time.Time,
	_ string,
) error {
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type invoiceFixture struct {
	uc          *billing.CreateInvoiceUseCase
	invoiceRepo *fakeInvoiceRepo
	ncfRepo     *memory.NCFSequenceRepo
	inventory   *fakeInventoryUC
}

// newInvoiceFixture arma el caso de uso con un cliente, un almacén, un
// producto gravado al 18% (precio 100) y uno exento (precio 50).
func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	ncfRepo := memory.NewNCFSequenceRepository()
	invoiceRepo := newFakeInvoiceRepo()
	inventory := &fakeInventoryUC{}

	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"c-1": {ID: "c-1", CompanyID: testCompany, Name: "Comercial Duarte SRL", IDType: fiscal.IDTypeRNC, IDNumber: "131234567"},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p-gravado": {ID: "p-gravado", CompanyID: testCompany, Name: "Caja térmica", Price: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(18), Taxable: true},
		"p-exento":  {ID: "p-exento", CompanyID: testCompany, Name: "Libro técnico", Price: decimal.NewFromInt(50), TaxRate: decimal.Zero, Taxable: false},
	}}
	warehouses := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		"w-1": {ID: "w-1", CompanyID: testCompany, Name: "Principal"},
	}}

	alloc := billing.NewNCFAllocator(ncfRepo, billing.DefaultAllocatorConfig())
	uc := billing.NewCreateInvoiceUseCase(
		&fakeTxRunner{invoiceRepo: invoiceRepo, ncfRepo: ncfRepo},
		inventory, alloc,
		customers, products, warehouses, invoiceRepo,
	)
	return &invoiceFixture{uc: uc, invoiceRepo: invoiceRepo, ncfRepo: ncfRepo, inventory: inventory}
}

func (f *invoiceFixture) seedB01(t *testing.T, from, to int64) *entity.NCFSequence {
	t.Helper()
	return seedSequence(t, f.ncfRepo, fiscal.NCFTypeCreditoFiscal, from, to, time.Now().AddDate(1, 0, 0))
}

func baseRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerID:  "c-1",
		WarehouseID: "w-1",
		NCFType:     fiscal.NCFTypeCreditoFiscal,
		SaleType:    entity.SaleTypeCredit,
		Items: []dto.InvoiceItemRequest{
			{ProductID: "p-gravado", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
			{ProductID: "p-exento", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50), Discount: decimal.NewFromInt(5)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

// Dos líneas: 2 x 100.00 al 18% y 1 x 50.00 exenta con descuento de 5.00.
// Subtotal 245.00, ITBIS 36.00, total 281.00.
func TestCreateInvoice_TotalesDosLineas(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 100)

	out, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, baseRequest())
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(245)), "subtotal fue %s", out.Subtotal)
	assert.True(t, out.Tax.Equal(decimal.NewFromInt(36)), "ITBIS fue %s", out.Tax)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(281)), "total fue %s", out.Total)
	assert.Equal(t, "B0100000001", out.NCF)
	require.Len(t, out.Lines, 2)
	assert.True(t, out.Lines[0].Tax.Equal(decimal.NewFromInt(36)))
	assert.True(t, out.Lines[1].Tax.IsZero(), "la línea exenta no lleva ITBIS")
	assert.Equal(t, 2, f.inventory.outs, "una salida de inventario por línea")

	// total == subtotal + tax - descuento global, al centavo
	assert.True(t, out.Total.Equal(out.Subtotal.Add(out.Tax).Sub(out.GlobalDiscount)))

	stored, err := f.invoiceRepo.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "la factura quedó persistida")
	lines, _ := f.invoiceRepo.GetLinesByInvoiceID(out.ID)
	assert.Len(t, lines, 2)
}

func TestCreateInvoice_DescuentoGlobal(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 100)

	in := baseRequest()
	in.GlobalDiscount = decimal.NewFromInt(31)
	out, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, in)
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(250)), "281 - 31 = 250, fue %s", out.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_SinLineas(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 100)

	in := baseRequest()
	in.Items = nil
	_, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, in)
	assert.ErrorIs(t, err, domain.ErrEmptyInvoice)
}

func TestCreateInvoice_DescuentoDeLineaExcesivo(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 100)

	in := baseRequest()
	in.Items[0].Discount = decimal.NewFromInt(250) // gross de la línea: 200
	_, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, in)
	assert.ErrorIs(t, err, domain.ErrInvalidLineDiscount)
	assert.Empty(t, f.invoiceRepo.invoices)
}

func TestCreateInvoice_TotalNegativo(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 100)

	in := baseRequest()
	in.GlobalDiscount = decimal.NewFromInt(300) // subtotal+tax = 281
	_, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, in)
	assert.ErrorIs(t, err, domain.ErrNegativeTotal)
	assert.Empty(t, f.invoiceRepo.invoices)
}

func TestCreateInvoice_TipoDeVentaInvalido(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 100)

	in := baseRequest()
	in.SaleType = "layaway"
	_, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_TipoNCFInvalido(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 100)

	in := baseRequest()
	in.NCFType = "X99"
	_, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.invoiceRepo.invoices)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contado vs crédito
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_ContadoQuedaPagada(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 100)

	in := baseRequest()
	in.SaleType = entity.SaleTypeCash
	out, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, in)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPaid, out.Status)
	assert.True(t, out.AmountPaid.Equal(out.Total))
	assert.True(t, out.Balance.IsZero())
	assert.Empty(t, out.DueDate, "contado no tiene vencimiento")
}

func TestCreateInvoice_CreditoConVencimiento(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 100)

	in := baseRequest()
	in.CreditTermDays = 15
	out, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, in)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, out.Status)
	assert.True(t, out.Balance.Equal(out.Total))
	wantDue := time.Now().AddDate(0, 0, 15).Format("2006-01-02")
	assert.Equal(t, wantDue, out.DueDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad con el NCF
// ──────────────────────────────────────────────────────────────────────────────

// Sin rango NCF la venta no procede y no queda factura persistida.
func TestCreateInvoice_SinSecuenciaNoPersiste(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, baseRequest())
	assert.ErrorIs(t, err, domain.ErrNoSequenceAvailable)
	assert.Empty(t, f.invoiceRepo.invoices)
}

// Si el inventario no alcanza, el flujo aborta antes de emitir el NCF:
// el consecutivo no se consume.
func TestCreateInvoice_SinStockNoConsumeNCF(t *testing.T) {
	f := newInvoiceFixture(t)
	seq := f.seedB01(t, 1, 100)
	f.inventory.outErr = domain.ErrInsufficientStock

	_, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, baseRequest())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.invoiceRepo.invoices)

	got, err := f.ncfRepo.GetByID(context.Background(), seq.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Current, "el consecutivo sigue intacto")
}

func TestCreateInvoice_AvisoDeBajaDisponibilidad(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedB01(t, 1, 5)

	out, err := f.uc.CreateInvoice(context.Background(), testCompany, testUser, baseRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, out.SequenceAlert, "con 4 números restantes la respuesta avisa")
}
