package order

import (
	"net/url"
	"strings"
	"testing"

	"ninedelivery/storefront-svc/internal/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCart() *cart.State {
	store := cart.NewStore(nil)
	store.AddItem("rest1", cart.NewItem{ID: "p1", Name: "Muzzarella", Price: 1200})
	store.AddItem("rest1", cart.NewItem{ID: "p1", Name: "Muzzarella", Price: 1200})
	store.AddItem("rest1", cart.NewItem{ID: "b1", Name: "Coca 500ml", Price: 450})
	store.SetNote("p1", "sin cebolla")
	return store.State()
}

func samplePayload() Payload {
	return BuildPayload(sampleCart(), Draft{
		CustomerName:    "Juan",
		CustomerAddress: "Calle Falsa 123",
	}, "Pizzería San Juan")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		state    *cart.State
		draft    Draft
		expected error
	}{
		{"ok", sampleCart(), Draft{CustomerName: "Juan", CustomerAddress: "Calle Falsa 123"}, nil},
		{"empty_cart", cart.Empty(), Draft{CustomerName: "Juan", CustomerAddress: "Calle Falsa 123"}, ErrEmptyCart},
		{"nil_cart", nil, Draft{CustomerName: "Juan", CustomerAddress: "x"}, ErrEmptyCart},
		{"blank_name", sampleCart(), Draft{CustomerName: "  ", CustomerAddress: "Calle Falsa 123"}, ErrMissingCustomer},
		{"blank_address", sampleCart(), Draft{CustomerName: "Juan"}, ErrMissingCustomer},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := Validate(testCase.state, testCase.draft)
			if testCase.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, testCase.expected)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestBuildPayload(t *testing.T) {
	p := samplePayload()

	assert.Equal(t, "Juan", p.CustomerName)
	assert.Equal(t, "Pizzería San Juan", p.RestaurantName)
	assert.Equal(t, PaymentCash, p.PaymentMethod)
	assert.Equal(t, 2850.0, p.Total)
	require.Len(t, p.Lines, 2)
	assert.Equal(t, LineSummary{Quantity: 2, Name: "Muzzarella", UnitPrice: 1200, Note: "sin cebolla"}, p.Lines[0])
}

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage(samplePayload())

	assert.True(t, strings.HasPrefix(msg, "*PEDIDO — 9delivery*\n"))
	assert.Contains(t, msg, "*Cliente:* Juan")
	assert.Contains(t, msg, "*Dirección:* Calle Falsa 123")
	assert.Contains(t, msg, "*Método de pago:* Efectivo")
	assert.Contains(t, msg, "*Restaurante:* Pizzería San Juan")
	assert.Contains(t, msg, "• 2 x Muzzarella (sin cebolla)\n  Precio: $1200 · Subtotal: $2400")
	assert.Contains(t, msg, "• 1 x Coca 500ml\n  Precio: $450 · Subtotal: $450")
	assert.Contains(t, msg, "*Total:* $2850")
	assert.Contains(t, msg, "*Observación:* -")
	assert.True(t, strings.HasSuffix(msg, "Enviado desde 9delivery"))

	assert.Equal(t, msg, BuildMessage(samplePayload()))
}

func TestBuildMessage_Extras(t *testing.T) {
	p := Payload{
		CustomerName:    "Ana",
		CustomerAddress: "Av. Colón 1",
		RestaurantName:  "Pizzería San Juan",
		Lines: []LineSummary{{
			Quantity:  2,
			Name:      "Muzzarella",
			UnitPrice: 1200,
			Extras:    []cart.Extra{{ID: "x1", Name: "Doble queso", Price: 300}},
		}},
		Total:         3000,
		GeneralNote:   "tocar timbre",
		PaymentMethod: PaymentTransfer,
	}

	msg := BuildMessage(p)
	assert.Contains(t, msg, "  Extras: Doble queso ($300)")
	assert.Contains(t, msg, "  Precio: $1200 + $300 extras · Subtotal: $3000")
	assert.Contains(t, msg, "*Método de pago:* Transferencia")
	assert.Contains(t, msg, "*Observación:* tocar timbre")
}

func TestBuildMessage_BlankFieldsUseDash(t *testing.T) {
	msg := BuildMessage(Payload{RestaurantName: "X"})
	assert.Contains(t, msg, "*Cliente:* -")
	assert.Contains(t, msg, "*Dirección:* -")
	assert.Contains(t, msg, "*Método de pago:* -")
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5493512345678", NormalizePhone("+54 9 351 234 5678"))
	assert.Equal(t, "", NormalizePhone("sin teléfono"))
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "a%20b", EncodeComponent("a b"))
	assert.Equal(t, "(ok)!*'~-_.", EncodeComponent("(ok)!*'~-_."))
	assert.Equal(t, "%2F%3F%26%3D%2B", EncodeComponent("/?&=+"))
	assert.Equal(t, "%0A", EncodeComponent("\n"))
	assert.Equal(t, "Pizzer%C3%ADa", EncodeComponent("Pizzería"))
}

func TestBuildLink(t *testing.T) {
	p := samplePayload()
	link := BuildLink("+54 9 351 234 5678", p)

	prefix := "https://wa.me/5493512345678?text="
	require.True(t, strings.HasPrefix(link, prefix))
	encoded := strings.TrimPrefix(link, prefix)
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, " ")

	text, err := url.PathUnescape(encoded)
	require.NoError(t, err)
	assert.Equal(t, BuildMessage(p), text)
	assert.Contains(t, text, "*Cliente:* Juan")
	assert.True(t, strings.HasSuffix(text, "Enviado desde 9delivery"))
}
