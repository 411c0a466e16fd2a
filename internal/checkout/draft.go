package checkout

import (
	"regexp"
	"strings"
)

// Contact identifies the buyer.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Shipping is where the order goes.
type Shipping struct {
	Address      string `json:"address"`
	Municipality string `json:"municipality"`
}

// Draft is the in-progress, unpersisted order a buyer assembles on the
// checkout page. It lives only for the session; nothing here is stored.
type Draft struct {
	Quantity      int      `json:"quantity"`
	ProductColor  string   `json:"product_color"`
	PaymentMethod string   `json:"payment_method"`
	Contact       Contact  `json:"contact"`
	Shipping      Shipping `json:"shipping"`
}

// emailPattern is deliberately the loose local@domain.tld shape the form has
// always used. It gates the submit button; it is not a security boundary.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s matches the form's email shape check.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Submittable reports whether the draft passes the required-field and email
// shape checks. Always a value, never an error; a failing draft simply keeps
// the submit affordance disabled.
func (d Draft) Submittable() bool {
	return strings.TrimSpace(d.Contact.Name) != "" &&
		strings.TrimSpace(d.Contact.Email) != "" &&
		ValidEmail(d.Contact.Email) &&
		strings.TrimSpace(d.Contact.Phone) != "" &&
		strings.TrimSpace(d.Shipping.Address) != "" &&
		strings.TrimSpace(d.Shipping.Municipality) != ""
}
