// Package order turns a cart and the customer's checkout draft into the text
// message and WhatsApp deep link handed to the merchant.
package order

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"ninedelivery/storefront-svc/internal/cart"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentTransfer PaymentMethod = "transferencia"
)

// Draft is the unvalidated checkout form.
type Draft struct {
	CustomerName    string        `json:"customer_name"`
	CustomerAddress string        `json:"customer_address"`
	GeneralNote     string        `json:"general_note"`
	PaymentMethod   PaymentMethod `json:"payment_method,omitempty"`
}

// Payment returns the chosen method, cash when none was picked.
func (d Draft) Payment() PaymentMethod {
	if d.PaymentMethod == "" {
		return PaymentCash
	}
	return d.PaymentMethod
}

type LineSummary struct {
	Quantity  int          `json:"quantity"`
	Name      string       `json:"name"`
	UnitPrice float64      `json:"unit_price"`
	Note      string       `json:"note,omitempty"`
	Extras    []cart.Extra `json:"extras,omitempty"`
}

// Payload is the resolved snapshot serialized into the message.
type Payload struct {
	CustomerName    string        `json:"customer_name"`
	CustomerAddress string        `json:"customer_address"`
	RestaurantName  string        `json:"restaurant_name"`
	Lines           []LineSummary `json:"lines"`
	Total           float64       `json:"total"`
	GeneralNote     string        `json:"general_note,omitempty"`
	PaymentMethod   PaymentMethod `json:"payment_method,omitempty"`
}

// ValidationError carries a message meant for the customer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrEmptyCart       = &ValidationError{Message: "No podés enviar un carrito vacío"}
	ErrMissingCustomer = &ValidationError{Message: "Por favor completá nombre y dirección para enviar el pedido"}
	ErrNotPrepared     = &ValidationError{Message: "No se pudo preparar el pedido. Intentá de nuevo."}
	ErrTooLongForQR    = &ValidationError{Message: "El pedido es demasiado largo para un código QR. Enviá el enlace directamente."}
)

// IsValidation reports whether err should be shown to the customer verbatim.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Validate applies the send-time checks: a non-empty cart and a name and
// address.
func Validate(state *cart.State, draft Draft) error {
	if state == nil || state.IsEmpty() {
		return ErrEmptyCart
	}
	if strings.TrimSpace(draft.CustomerName) == "" || strings.TrimSpace(draft.CustomerAddress) == "" {
		return ErrMissingCustomer
	}
	return nil
}

// BuildPayload snapshots the cart for restaurantName.
func BuildPayload(state *cart.State, draft Draft, restaurantName string) Payload {
	lines := make([]LineSummary, 0, len(state.Items))
	for _, l := range state.Items {
		lines = append(lines, LineSummary{
			Quantity:  l.Quantity,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Note:      l.Note,
			Extras:    l.Extras,
		})
	}
	return Payload{
		CustomerName:    strings.TrimSpace(draft.CustomerName),
		CustomerAddress: strings.TrimSpace(draft.CustomerAddress),
		RestaurantName:  restaurantName,
		Lines:           lines,
		Total:           cart.Total(state),
		GeneralNote:     draft.GeneralNote,
		PaymentMethod:   draft.Payment(),
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func paymentLabel(p PaymentMethod) string {
	switch p {
	case "":
		return "-"
	case PaymentCash:
		return "Efectivo"
	}
	return "Transferencia"
}

func lineBlock(l LineSummary) string {
	var b strings.Builder
	b.WriteString("• ")
	b.WriteString(strconv.Itoa(l.Quantity))
	b.WriteString(" x ")
	b.WriteString(l.Name)
	if note := strings.TrimSpace(l.Note); note != "" {
		b.WriteString(" (" + note + ")")
	}

	var extrasTotal float64
	if len(l.Extras) > 0 {
		names := make([]string, len(l.Extras))
		for i, e := range l.Extras {
			names[i] = e.Name + " ($" + money(e.Price) + ")"
			extrasTotal += e.Price
		}
		b.WriteString("\n  Extras: ")
		b.WriteString(strings.Join(names, ", "))
	}

	b.WriteString("\n  Precio: $")
	b.WriteString(money(l.UnitPrice))
	if extrasTotal != 0 {
		b.WriteString(" + $" + money(extrasTotal) + " extras")
	}
	b.WriteString(" · Subtotal: $")
	b.WriteString(money((l.UnitPrice + extrasTotal) * float64(l.Quantity)))
	return b.String()
}

// BuildMessage renders the order text. The same payload always yields the same
// message.
func BuildMessage(p Payload) string {
	blocks := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		blocks[i] = lineBlock(l)
	}

	return strings.Join([]string{
		"*PEDIDO — 9delivery*",
		"────────────────────────",
		"*Cliente:* " + orDash(p.CustomerName),
		"*Dirección:* " + orDash(p.CustomerAddress),
		"*Método de pago:* " + paymentLabel(p.PaymentMethod),
		"*Restaurante:* " + p.RestaurantName,
		"",
		"*Platos:*",
		strings.Join(blocks, "\n"),
		"",
		"*Total:* $" + money(p.Total),
		"*Observación:* " + orDash(strings.TrimSpace(p.GeneralNote)),
		"",
		"Enviado desde 9delivery",
	}, "\n")
}

// NormalizePhone keeps only the digits of phone.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// EncodeComponent percent-encodes s leaving only A-Z a-z 0-9 - _ . ! ~ * ' ( )
// unescaped, so spaces become %20.
func EncodeComponent(s string) string {
	escaped := url.QueryEscape(s)
	return componentUnescaper.Replace(escaped)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// BuildLink returns the wa.me deep link carrying the order message.
func BuildLink(phone string, p Payload) string {
	return "https://wa.me/" + NormalizePhone(phone) + "?text=" + EncodeComponent(BuildMessage(p))
}
