package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-rd/internal/application/billing"
	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
	"github.com/tu-usuario/factura-rd/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/factura-rd/internal/interfaces/http"
)

// buildNCFApp arma una app con el handler de NCF sobre el repo en memoria,
// inyectando el contexto de auth directo en Locals.
func buildNCFApp(repo *memory.NCFSequenceRepo) *fiber.App {
	alloc := billing.NewNCFAllocator(repo, billing.DefaultAllocatorConfig())
	h := apphttp.NewNCFHandler(billing.NewNCFAdminUseCase(repo, alloc))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, testUserID)
		c.Locals(apphttp.LocalCompanyID, testCompanyID)
		c.Locals(apphttp.LocalRole, entity.RoleAdmin)
		return c.Next()
	})
	app.Get("/api/ncf/:type/preview", h.Preview)
	return app
}

func seedPreviewRange(t *testing.T, repo *memory.NCFSequenceRepo, from, to int64, expires time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.NCFSequence{
		CompanyID:           testCompanyID,
		AuthorizationNumber: "AUT-2026-777",
		NCFType:             fiscal.NCFTypeCreditoFiscal,
		RangeFrom:           from,
		RangeTo:             to,
		Current:             from,
		ExpiresOn:           expires,
		IsActive:            true,
	}))
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestPreview_OK(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedPreviewRange(t, repo, 1, 100, time.Now().AddDate(1, 0, 0))
	app := buildNCFApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ncf/B01/preview", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.NCFPreviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "B0100000001", body.Next)
	assert.Equal(t, int64(100), body.Remaining)
}

// Un tipo desconocido es un 400 de validación, no un error interno: el
// sentinela llega envuelto con contexto desde el asignador.
func TestPreview_TipoInvalidoEs400(t *testing.T) {
	app := buildNCFApp(memory.NewNCFSequenceRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/ncf/X99/preview", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestPreview_SinSecuenciasEs422(t *testing.T) {
	app := buildNCFApp(memory.NewNCFSequenceRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/ncf/B01/preview", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "NCF_UNAVAILABLE", decodeError(t, resp).Code)
}

func TestPreview_RangoVencidoEs422(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedPreviewRange(t, repo, 1, 100, time.Now().AddDate(0, 0, -1))
	app := buildNCFApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ncf/B01/preview", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "NCF_EXPIRED", decodeError(t, resp).Code)
}
