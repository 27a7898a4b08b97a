package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
)

// Los casos de uso envuelven los sentinelas con contexto (fmt.Errorf %w); el
// mapeo debe resolverlos igual que a los sentinelas desnudos.
func TestMapBillingError_SentinelasEnvueltosYDesnudos(t *testing.T) {
	h := &InvoiceHandler{}
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid input envuelto", fmt.Errorf("%w: tipo NCF %q", domain.ErrInvalidInput, "X99"), http.StatusBadRequest, "VALIDATION"},
		{"invalid input desnudo", domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{"sin secuencia", domain.ErrNoSequenceAvailable, http.StatusUnprocessableEntity, "NCF_UNAVAILABLE"},
		{"vencida envuelta", fmt.Errorf("%w: tipo B01", domain.ErrSequenceExpired), http.StatusUnprocessableEntity, "NCF_EXPIRED"},
		{"conflicto de asignación", domain.ErrAllocationConflict, http.StatusConflict, "NCF_CONFLICT"},
		{"sin stock envuelto", fmt.Errorf("descontar producto: %w", domain.ErrInsufficientStock), http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"sobrepago", domain.ErrOverpayment, http.StatusUnprocessableEntity, "OVERPAYMENT"},
		{"factura anulada", domain.ErrInvoiceVoided, http.StatusConflict, "INVOICE_VOIDED"},
		{"sin líneas", domain.ErrEmptyInvoice, http.StatusBadRequest, "VALIDATION"},
		{"no mapeado", errors.New("fallo inesperado"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", func(c *fiber.Ctx) error { return h.mapBillingError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}
