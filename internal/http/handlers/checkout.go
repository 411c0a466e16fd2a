package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"server/internal/checkout"
	"server/internal/middleware"
)

type quoteResponse struct {
	Quantity                int          `json:"quantity"`
	UnitPrice               string       `json:"unit_price"`
	Subtotal                string       `json:"subtotal"`
	ShippingCost            string       `json:"shipping_cost"`
	ShippingDiscountApplied bool         `json:"shipping_discount_applied"`
	Total                   string       `json:"total"`
	Display                 quoteDisplay `json:"display"`
	Submittable             bool         `json:"submittable"`
	FieldHints              []string     `json:"field_hints,omitempty"`
	Color                   *quoteColor  `json:"color,omitempty"`
}

type quoteDisplay struct {
	UnitPrice    string `json:"unit_price"`
	Subtotal     string `json:"subtotal"`
	ShippingCost string `json:"shipping_cost"`
	Total        string `json:"total"`
}

type quoteColor struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CheckoutQuote prices a draft and reports whether it could be submitted.
// Quantity is clamped to the orderable range before pricing, matching the
// form's stepper behavior.
func (a *App) CheckoutQuote(w http.ResponseWriter, r *http.Request) {
	var draft checkout.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	draft.Quantity = checkout.ClampQuantity(draft.Quantity)
	totals := checkout.ComputeTotals(draft)
	f := a.formatter(middleware.LocaleFromContext(r.Context()))

	resp := quoteResponse{
		Quantity:                draft.Quantity,
		UnitPrice:               totals.UnitPrice.StringFixed(2),
		Subtotal:                totals.Subtotal.StringFixed(2),
		ShippingCost:            totals.ShippingCost.StringFixed(2),
		ShippingDiscountApplied: totals.ShippingDiscountApplied,
		Total:                   totals.Total.StringFixed(2),
		Display: quoteDisplay{
			UnitPrice:    f.Format(totals.UnitPrice),
			Subtotal:     f.Format(totals.Subtotal),
			ShippingCost: f.Format(totals.ShippingCost),
			Total:        f.Format(totals.Total),
		},
		Submittable: draft.Submittable(),
		FieldHints:  a.fieldHints(draft),
	}
	if col, ok := a.Catalog.ColorByValue(draft.ProductColor); ok {
		resp.Color = &quoteColor{Value: col.Value, Label: col.Label}
	}
	a.json(w, http.StatusOK, resp)
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Total   string `json:"total,omitempty"`
}

// CheckoutSubmit validates a draft and acknowledges it. Nothing is stored or
// forwarded; the storefront simulates order placement and this endpoint keeps
// that contract.
func (a *App) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	var draft checkout.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	draft.Quantity = checkout.ClampQuantity(draft.Quantity)
	if !draft.Submittable() {
		a.json(w, http.StatusUnprocessableEntity, submitResponse{Success: false})
		return
	}
	totals := checkout.ComputeTotals(draft)
	f := a.formatter(middleware.LocaleFromContext(r.Context()))
	a.Logger.Info().
		Int("quantity", draft.Quantity).
		Str("municipality", draft.Shipping.Municipality).
		Str("payment_method", draft.PaymentMethod).
		Msg("checkout submitted")
	a.json(w, http.StatusOK, submitResponse{
		Success: true,
		Message: "Thank you! Your order has been successfully placed",
		Total:   f.Format(totals.Total),
	})
}

// fieldHints names the required fields a draft is still missing. Hints are a
// display aid for the form; Submittable stays the single gate.
func (a *App) fieldHints(d checkout.Draft) []string {
	var hints []string
	if strings.TrimSpace(d.Contact.Name) == "" {
		hints = append(hints, "name")
	}
	if strings.TrimSpace(d.Contact.Email) == "" || !checkout.ValidEmail(d.Contact.Email) {
		hints = append(hints, "email")
	}
	if strings.TrimSpace(d.Contact.Phone) == "" {
		hints = append(hints, "phone")
	}
	if strings.TrimSpace(d.Shipping.Address) == "" {
		hints = append(hints, "address")
	}
	if strings.TrimSpace(d.Shipping.Municipality) == "" {
		hints = append(hints, "municipality")
	}
	return hints
}
