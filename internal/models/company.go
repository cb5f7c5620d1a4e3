package models

// Address represents a postal address
type Address struct {
	Street       string `json:"street"`
	StreetNumber string `json:"streetNumber"`
	ZipCode      string `json:"zipCode"`
	Location     string `json:"location"`
	Country      string `json:"country"`
}

// Contact represents ways to reach a person
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Party represents a natural person with an address and contact data.
// Customers and company shareholders are both parties; a customer
// additionally carries a numeric identifier.
type Party struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address   Address `json:"address"`
	Contact   Contact `json:"contact"`
}

// FullName returns "FirstName LastName"
func (p Party) FullName() string {
	return p.FirstName + " " + p.LastName
}

// BankAccount represents the company's bank details printed on invoices
type BankAccount struct {
	IBAN     string `json:"iban"`
	BIC      string `json:"bic"`
	BankName string `json:"bankName"`
}

// Company represents the invoicing company
type Company struct {
	Label        string      `json:"label"`
	Name         string      `json:"name"`
	Declaration  string      `json:"declaration"`
	Address      Address     `json:"address"`
	Shareholders []Party     `json:"shareholders"`
	BankAccount  BankAccount `json:"bankAccount"`
	TaxNumber    string      `json:"taxNumber"`
}
