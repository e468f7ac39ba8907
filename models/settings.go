package models

// AppSettings is the process-wide singleton (row id 1). It is loaded once at
// startup and mutated only through a full-object save; callers must merge
// changes into the whole struct before calling the update endpoint.
type AppSettings struct {
	ID uint `json:"-" gorm:"primaryKey"`

	TaxRate      float64 `json:"tax_rate"` // percent
	DefaultNotes string  `json:"default_notes"`
	VATNumber    string  `json:"vat_number"`

	// Clonmel identity + bank details
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyPhone   string `json:"company_phone"`
	CompanyEmail   string `json:"company_email"`
	CompanyWebsite string `json:"company_website"`
	BankName       string `json:"bank_name"`
	AccountName    string `json:"account_name"`
	IBAN           string `json:"iban"`
	BIC            string `json:"bic"`

	// MirrorZone identity + bank details
	MirrorZoneName        string `json:"mirrorzone_name"`
	MirrorZoneAddress     string `json:"mirrorzone_address"`
	MirrorZonePhone       string `json:"mirrorzone_phone"`
	MirrorZoneEmail       string `json:"mirrorzone_email"`
	MirrorZoneWebsite     string `json:"mirrorzone_website"`
	MirrorZoneBankName    string `json:"mirrorzone_bank_name"`
	MirrorZoneAccountName string `json:"mirrorzone_account_name"`
	MirrorZoneIBAN        string `json:"mirrorzone_iban"`
	MirrorZoneBIC         string `json:"mirrorzone_bic"`

	EmailTemplateSubject string `json:"email_template_subject"`
	EmailTemplateBody    string `json:"email_template_body"`

	// Outbound integrations
	WebhookURL     string `json:"webhook_url"`      // generic email-send automation
	XeroWebhookURL string `json:"xero_webhook_url"` // Xero transfer
}

// CompanyIdentity is the sender block the PDF renderer and payload builders
// need, resolved for one company tag.
type CompanyIdentity struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

// BankDetails is the footer bank block for one company tag.
type BankDetails struct {
	BankName    string
	AccountName string
	IBAN        string
	BIC         string
}

// Identity resolves the sender block for a company tag, falling back to the
// fixed brand defaults when a settings field is blank.
func (s *AppSettings) Identity(company CompanyTag) CompanyIdentity {
	if company == CompanyMirrorzone {
		return CompanyIdentity{
			Name:    fallback(s.MirrorZoneName, "MirrorZone"),
			Address: fallback(s.MirrorZoneAddress, "24 Mary Street, Clonmel, Co. Tipperary, E91 YV52"),
			Phone:   fallback(s.MirrorZonePhone, "(052) 61 26306"),
			Email:   fallback(s.MirrorZoneEmail, "info@mirrorzone.ie"),
			Website: fallback(s.MirrorZoneWebsite, "www.mirrorzone.ie"),
		}
	}
	return CompanyIdentity{
		Name:    fallback(s.CompanyName, "Clonmel Glass & Mirrors Ltd"),
		Address: fallback(s.CompanyAddress, "24 Mary Street, Clonmel, Co. Tipperary"),
		Phone:   fallback(s.CompanyPhone, "(052) 612 6306"),
		Email:   fallback(s.CompanyEmail, "info@clonmelglassandmirrors.com"),
		Website: s.CompanyWebsite,
	}
}

// Bank resolves the bank block for a company tag.
func (s *AppSettings) Bank(company CompanyTag) BankDetails {
	if company == CompanyMirrorzone {
		return BankDetails{
			BankName:    fallback(s.MirrorZoneBankName, "Bank of Ireland"),
			AccountName: fallback(s.MirrorZoneAccountName, "MirrorZone"),
			IBAN:        fallback(s.MirrorZoneIBAN, "IE12BOFI90001010101234"),
			BIC:         fallback(s.MirrorZoneBIC, "BOFIIE2D"),
		}
	}
	return BankDetails{
		BankName:    fallback(s.BankName, "PTSB"),
		AccountName: fallback(s.AccountName, "Clonmel Glass & Mirrors"),
		IBAN:        fallback(s.IBAN, "IE98IPBS99071010105209"),
		BIC:         fallback(s.BIC, "PTSBIE2D"),
	}
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
