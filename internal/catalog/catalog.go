// Package catalog holds the storefront's static reference data: delivery
// municipalities, product color options, and accepted payment methods. The
// tables are configuration, not logic; deployments can overlay them from a
// JSON file without touching code.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Municipality is an administrative region the store delivers to.
type Municipality struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Color is a selectable product finish with its display swatch.
type Color struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Swatch string `json:"swatch"`
}

// PaymentMethod is an accepted way to pay. Informational only; it never
// affects pricing.
type PaymentMethod struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Catalog bundles the reference tables consumed by the checkout flow.
type Catalog struct {
	Municipalities []Municipality  `json:"municipalities"`
	Colors         []Color         `json:"colors"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}

// Default returns the built-in reference tables for the observed deployment.
func Default() *Catalog {
	return &Catalog{
		Municipalities: []Municipality{
			{ID: 1, Name: "Aileu"},
			{ID: 2, Name: "Ainaro"},
			{ID: 3, Name: "Atauro"},
			{ID: 4, Name: "Baucau"},
			{ID: 5, Name: "Bobonaro"},
			{ID: 6, Name: "Covalima"},
			{ID: 7, Name: "Dili"},
			{ID: 8, Name: "Ermera"},
			{ID: 9, Name: "Lautem"},
			{ID: 10, Name: "Liquica"},
			{ID: 11, Name: "Manatuto"},
			{ID: 12, Name: "Manufahi"},
			{ID: 13, Name: "Oecusse (RAEOA)"},
			{ID: 14, Name: "Viqueque"},
		},
		Colors: []Color{
			{Value: "default", Label: "Default White", Swatch: "#f5f5f5"},
			{Value: "black", Label: "Midnight Black", Swatch: "#1a1a1a"},
			{Value: "blue", Label: "Ocean Blue", Swatch: "#2563eb"},
			{Value: "green", Label: "Forest Green", Swatch: "#16a34a"},
			{Value: "pink", Label: "Rose Pink", Swatch: "#db2777"},
		},
		PaymentMethods: []PaymentMethod{
			{Value: "cod", Label: "Cash on Delivery (Pay on Delivery)"},
			{Value: "transfer", Label: "Bank Transfer"},
			{Value: "ewallet", Label: "E-Wallet"},
		},
	}
}

// Load reads a catalog overlay from path. An empty path returns the built-in
// tables; a present file must parse and carry at least one entry per table.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	if len(c.Municipalities) == 0 || len(c.Colors) == 0 || len(c.PaymentMethods) == 0 {
		return nil, fmt.Errorf("catalog: %s is missing one or more reference tables", path)
	}
	return &c, nil
}

// ValidMunicipality reports whether name matches a known delivery region.
func (c *Catalog) ValidMunicipality(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, m := range c.Municipalities {
		if strings.EqualFold(m.Name, name) {
			return true
		}
	}
	return false
}

// ColorByValue looks up a color option by its identifier.
func (c *Catalog) ColorByValue(value string) (Color, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, col := range c.Colors {
		if col.Value == value {
			return col, true
		}
	}
	return Color{}, false
}

// ValidPaymentMethod reports whether value names an accepted payment method.
func (c *Catalog) ValidPaymentMethod(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, m := range c.PaymentMethods {
		if m.Value == value {
			return true
		}
	}
	return false
}
