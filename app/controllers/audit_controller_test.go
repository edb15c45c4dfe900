package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexthub-ai/flowwing-cms-sub001/internal/pkg/payments"
)

// failingGateway rejects session creation with a gateway error.
type failingGateway struct {
	stubGateway
}

func (g *failingGateway) CreateCheckoutSession(ctx context.Context, p payments.SessionParams) (*payments.Session, error) {
	return nil, fmt.Errorf("%w: provider down", payments.ErrGateway)
}

func newCheckoutTestApp(gw payments.Gateway, audits *memAuditRepo) *fiber.App {
	checkout := payments.NewCheckoutService(audits, gw, payments.CheckoutConfig{
		BaseURL:     "https://flowwing.test",
		AmountCents: payments.DefaultAuditPriceCents,
		Currency:    payments.DefaultCurrency,
	})
	ac := NewAuditController(checkout, payments.NewVerifier(audits, gw))

	app := fiber.New()
	app.Post("/audit/checkout", ac.HandleAuditCheckout)
	app.Get("/audit/payment/success", ac.HandleAuditPaymentSuccess)
	return app
}

func TestHandleAuditCheckoutJSON(t *testing.T) {
	audits := newMemAuditRepo()
	gw := &stubGateway{}
	app := newCheckoutTestApp(gw, audits)

	payload := `{"email":"buyer@example.com","company_name":"Acme GmbH","social_handles":{"instagram":"@acme"}}`
	req := httptest.NewRequest(fiber.MethodPost, "/audit/checkout", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "https://checkout.test/s/cs_test", body["url"])
	assert.NotEmpty(t, body["audit_id"])

	rec, err := audits.GetByID(body["audit_id"])
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", rec.Email)
	assert.Contains(t, rec.SocialHandles, "@acme")
}

func TestHandleAuditCheckoutJSONValidation(t *testing.T) {
	audits := newMemAuditRepo()
	app := newCheckoutTestApp(&stubGateway{}, audits)

	req := httptest.NewRequest(fiber.MethodPost, "/audit/checkout", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	n, _ := audits.Count()
	assert.Zero(t, n, "invalid input must not create a record")
}

func TestHandleAuditCheckoutGatewayDown(t *testing.T) {
	audits := newMemAuditRepo()
	app := newCheckoutTestApp(&failingGateway{}, audits)

	payload := `{"email":"buyer@example.com","company_name":"Acme GmbH"}`
	req := httptest.NewRequest(fiber.MethodPost, "/audit/checkout", strings.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	// The pending record survives the failed session creation and stays
	// visible for staff followup.
	n, _ := audits.Count()
	assert.EqualValues(t, 1, n)
}

func TestHandleAuditPaymentSuccessRequiresAuditID(t *testing.T) {
	app := newCheckoutTestApp(&stubGateway{}, newMemAuditRepo())

	req := httptest.NewRequest(fiber.MethodGet, "/audit/payment/success", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestParseCheckoutRequestForm(t *testing.T) {
	app := fiber.New()
	var got payments.CheckoutRequest
	var gotJSON bool
	app.Post("/t", func(c *fiber.Ctx) error {
		req, isJSON, err := parseCheckoutRequest(c)
		require.NoError(t, err)
		got = req
		gotJSON = isJSON
		return c.SendStatus(fiber.StatusOK)
	})

	form := "email=buyer%40example.com&company_name=Acme&instagram=%40acme&tiktok="
	req := httptest.NewRequest(fiber.MethodPost, "/t", strings.NewReader(form))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

	_, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.False(t, gotJSON)
	assert.Equal(t, "buyer@example.com", got.Email)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, map[string]string{"instagram": "@acme"}, got.SocialHandles)
}
