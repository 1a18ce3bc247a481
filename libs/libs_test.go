package libs

import (
	"bytes"
	"context"
	"testing"

	"storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWithoutCloudinary(t *testing.T) {
	r := NewImageResolver(nil, "https://shop.test/uploads/")

	assert.Equal(t, "https://shop.test/uploads/lamp.jpg", r.Resolve("lamp.jpg"))
	assert.Equal(t, "https://shop.test/uploads/a/b.png", r.Resolve("/a/b.png"))
	assert.Equal(t, "https://cdn.example.com/x.jpg", r.Resolve("https://cdn.example.com/x.jpg"))
	assert.Equal(t, "", r.Resolve("  "))
}

func TestResolveWithCloudinary(t *testing.T) {
	cld, err := NewCloudinary("", "demo", "key", "secret")
	require.NoError(t, err)
	require.NotNil(t, cld)

	url := NewImageResolver(cld, "/uploads").Resolve("products/lamp")

	assert.Contains(t, url, "https://res.cloudinary.com/demo/image/upload/")
	assert.Contains(t, url, "products/lamp")
}

func TestNewCloudinaryUnconfigured(t *testing.T) {
	cld, err := NewCloudinary("", "", "", "")
	assert.NoError(t, err)
	assert.Nil(t, cld)
}

func TestOrderConfirmationMessage(t *testing.T) {
	order := models.Order{
		OrderNumber: "ORD-123",
		Items: []models.OrderItem{{
			Name:      "Lamp <deluxe>",
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("10"),
			Subtotal:  decimal.RequireFromString("20"),
		}},
		Total: decimal.RequireFromString("20"),
	}

	var buf bytes.Buffer
	_, err := orderConfirmation("shop@example.com", "ann@example.com", order).WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Order Confirmation #ORD-123")
	assert.Contains(t, raw, "To: ann@example.com")
}

func TestNilMailerIsNoop(t *testing.T) {
	var m *Mailer
	assert.NoError(t, m.OrderPlaced(context.Background(), models.Identity{Email: "a@b.co"}, models.Order{}))
}
