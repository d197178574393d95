package merchant

import (
	"fmt"
	"time"

	"lunaspay/internal/shared/biztime"
	"lunaspay/internal/shared/id"
)

// Registration maps a QRIS merchant to its bank settlement target. It is
// created by an administrative operation and read-only to the payment flow.
type Registration struct {
	id             uint
	registrationID string
	nmid           string
	merchantName   string
	bankCode       string
	accountNumber  string
	accountName    string
	description    string
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

// NewRegistration creates a merchant registration. At least one of nmid and
// merchantName must be non-empty; the settlement target fields are required.
func NewRegistration(nmid, merchantName, bankCode, accountNumber, accountName string) (*Registration, error) {
	if nmid == "" && merchantName == "" {
		return nil, fmt.Errorf("either nmid or merchant name is required")
	}
	if bankCode == "" {
		return nil, fmt.Errorf("bank code is required")
	}
	if accountNumber == "" {
		return nil, fmt.Errorf("account number is required")
	}
	if accountName == "" {
		return nil, fmt.Errorf("account name is required")
	}

	now := biztime.NowUTC()
	return &Registration{
		registrationID: id.MustGenerateWithPrefix(id.PrefixMerchant, id.DefaultLength),
		nmid:           nmid,
		merchantName:   merchantName,
		bankCode:       bankCode,
		accountNumber:  accountNumber,
		accountName:    accountName,
		isActive:       true,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func (r *Registration) ID() uint {
	return r.id
}

func (r *Registration) RegistrationID() string {
	return r.registrationID
}

func (r *Registration) NMID() string {
	return r.nmid
}

func (r *Registration) MerchantName() string {
	return r.merchantName
}

func (r *Registration) BankCode() string {
	return r.bankCode
}

func (r *Registration) AccountNumber() string {
	return r.accountNumber
}

func (r *Registration) AccountName() string {
	return r.accountName
}

func (r *Registration) Description() string {
	return r.description
}

func (r *Registration) IsActive() bool {
	return r.isActive
}

func (r *Registration) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Registration) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Registration) SetDescription(description string) {
	r.description = description
	r.updatedAt = biztime.NowUTC()
}

// Deactivate removes the registration from resolution without deleting it.
func (r *Registration) Deactivate() {
	r.isActive = false
	r.updatedAt = biztime.NowUTC()
}

// Activate makes the registration resolvable again.
func (r *Registration) Activate() {
	r.isActive = true
	r.updatedAt = biztime.NowUTC()
}

// SetID sets the registration ID after persistence (used by the repository after Create)
func (r *Registration) SetID(dbID uint) {
	r.id = dbID
}

// ReconstructRegistration recreates a Registration from persistence.
func ReconstructRegistration(
	dbID uint,
	registrationID string,
	nmid, merchantName string,
	bankCode, accountNumber, accountName string,
	description string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Registration {
	return &Registration{
		id:             dbID,
		registrationID: registrationID,
		nmid:           nmid,
		merchantName:   merchantName,
		bankCode:       bankCode,
		accountNumber:  accountNumber,
		accountName:    accountName,
		description:    description,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}
