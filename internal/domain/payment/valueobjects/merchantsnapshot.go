package valueobjects

// MerchantSnapshot captures the merchant identity as decoded from the QR at
// creation time. It is a copy, not a live reference: later changes to the
// merchant registry never alter what the payer agreed to.
type MerchantSnapshot struct {
	name string
	city string
	nmid string
}

func NewMerchantSnapshot(name, city, nmid string) MerchantSnapshot {
	return MerchantSnapshot{
		name: name,
		city: city,
		nmid: nmid,
	}
}

func (m MerchantSnapshot) Name() string {
	return m.name
}

func (m MerchantSnapshot) City() string {
	return m.city
}

func (m MerchantSnapshot) NMID() string {
	return m.nmid
}

func (m MerchantSnapshot) IsEmpty() bool {
	return m.name == "" && m.nmid == ""
}
