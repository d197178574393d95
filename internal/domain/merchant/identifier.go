package merchant

import "lunaspay/internal/domain/qris"

// Identifier is the derived lookup key extracted from a decoded payload.
// It is never stored.
type Identifier struct {
	NMID         string
	MerchantName string
}

// IdentifierFromPayload extracts the merchant identifier from a decoded
// payload. The national merchant id is preferred, then the merchant PAN;
// either is combined with the displayed merchant name.
func IdentifierFromPayload(p *qris.Payload) Identifier {
	ident := Identifier{}
	if p == nil {
		return ident
	}

	if info := p.MerchantAccountInfo; info != nil {
		if info.MerchantID != "" {
			ident.NMID = info.MerchantID
		} else if info.MerchantPAN != "" {
			ident.NMID = info.MerchantPAN
		}
	}

	ident.MerchantName = p.MerchantName
	return ident
}

// IsEmpty reports whether the identifier carries nothing to look up by.
func (i Identifier) IsEmpty() bool {
	return i.NMID == "" && i.MerchantName == ""
}
