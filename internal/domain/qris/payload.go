package qris

import (
	"fmt"
	"strconv"
	"strings"
)

// InitiationMethod tells whether the code is printed once (static) or
// generated per transaction (dynamic).
type InitiationMethod string

const (
	InitiationStatic  InitiationMethod = "static"
	InitiationDynamic InitiationMethod = "dynamic"
)

// ValidationError identifies why a payload failed to decode. Decode failures
// are data, not errors: a malformed scan is an expected case callers branch on.
type ValidationError string

const (
	ValidationErrorNone                ValidationError = ""
	ValidationErrorTooShort            ValidationError = "too_short"
	ValidationErrorChecksumMismatch    ValidationError = "checksum_mismatch"
	ValidationErrorMissingMerchantName ValidationError = "missing_merchant_name"
	ValidationErrorDecodeFailure       ValidationError = "decode_failure"
)

// Reason returns a human-readable explanation for the validation error.
func (v ValidationError) Reason() string {
	switch v {
	case ValidationErrorTooShort:
		return "code is too short to be a QRIS payload"
	case ValidationErrorChecksumMismatch:
		return "checksum does not match, the code may be corrupted"
	case ValidationErrorMissingMerchantName:
		return "code does not carry a merchant name"
	case ValidationErrorDecodeFailure:
		return "code could not be decoded"
	default:
		return ""
	}
}

// Amount is a fixed-point transaction amount in hundredths of a rupiah.
type Amount struct {
	cents int64
}

// NewAmountFromCents builds an Amount from hundredths of a rupiah.
func NewAmountFromCents(cents int64) Amount {
	return Amount{cents: cents}
}

// ParseAmount parses a QRIS tag 54 value ("15000" or "15000.50") into a
// fixed-point Amount. At most two decimal places are kept.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("empty amount")
	}

	whole, frac, _ := strings.Cut(s, ".")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if units < 0 {
		return Amount{}, fmt.Errorf("negative amount %q", s)
	}

	var cents int64
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
		}
	}

	return Amount{cents: units*100 + cents}, nil
}

// Cents returns the amount in hundredths of a rupiah.
func (a Amount) Cents() int64 {
	return a.cents
}

// WholeRupiah floors the amount to whole rupiah. Disbursements are made in
// integer IDR; fractional amounts are floored.
func (a Amount) WholeRupiah() int64 {
	return a.cents / 100
}

func (a Amount) String() string {
	return fmt.Sprintf("%d.%02d", a.cents/100, a.cents%100)
}

// MerchantAccountInfo carries the acquirer-specific merchant identifiers from
// outer tags 26-31 and 51. The fields are populated together; a nil pointer
// on the payload means the block was absent entirely.
type MerchantAccountInfo struct {
	GlobalID         string
	MerchantPAN      string
	MerchantID       string
	MerchantCriteria string
}

// AdditionalData carries the optional tag 62 sub-fields.
type AdditionalData struct {
	BillNumber           string
	MobileNumber         string
	StoreLabel           string
	LoyaltyNumber        string
	ReferenceLabel       string
	CustomerLabel        string
	TerminalLabel        string
	PurposeOfTransaction string
}

// Payload is a decoded QRIS record. Created once per Decode call and
// immutable afterwards; callers persist only the fields they need.
type Payload struct {
	PayloadFormatIndicator string
	InitiationMethod       InitiationMethod
	MerchantAccountInfo    *MerchantAccountInfo
	MerchantCategoryCode   string
	CurrencyCode           string
	TransactionAmount      *Amount
	CountryCode            string
	MerchantName           string
	MerchantCity           string
	PostalCode             string
	AdditionalData         *AdditionalData
	Checksum               string

	IsValid          bool
	ValidationError  ValidationError
	ValidationDetail string
}

// merchantAccountTags are the outer tags whose value is a nested TLV block of
// merchant identifiers. A later matching tag overwrites the block wholesale.
var merchantAccountTags = map[string]bool{
	"26": true, "27": true, "28": true, "29": true, "30": true, "31": true, "51": true,
}

// tagHandlers maps a top-level tag to its field setter. The closed table
// keeps dispatch exhaustive; unknown tags fall through and are ignored for
// forward compatibility.
var tagHandlers = map[string]func(*Payload, Record){
	"00": func(p *Payload, r Record) { p.PayloadFormatIndicator = r.Value },
	"01": func(p *Payload, r Record) {
		if r.Value == "11" {
			p.InitiationMethod = InitiationStatic
		} else {
			p.InitiationMethod = InitiationDynamic
		}
	},
	"52": func(p *Payload, r Record) { p.MerchantCategoryCode = r.Value },
	"53": func(p *Payload, r Record) { p.CurrencyCode = r.Value },
	"54": func(p *Payload, r Record) {
		if amount, err := ParseAmount(r.Value); err == nil {
			p.TransactionAmount = &amount
		}
	},
	"58": func(p *Payload, r Record) { p.CountryCode = r.Value },
	"59": func(p *Payload, r Record) { p.MerchantName = r.Value },
	"60": func(p *Payload, r Record) { p.MerchantCity = r.Value },
	"61": func(p *Payload, r Record) { p.PostalCode = r.Value },
	"62": func(p *Payload, r Record) { p.AdditionalData = decodeAdditionalData(r.Value) },
	"63": func(p *Payload, r Record) { p.Checksum = r.Value },
}

// minPayloadLength is a heuristic floor, not a protocol limit: the shortest
// structurally plausible payload with required tags plus the 4-char checksum
// is well above it, and anything below is rejected before checksum work.
const minPayloadLength = 20

// Decode interprets a raw QRIS string into a Payload. It is total: it never
// panics for any input, including empty and non-ASCII strings, and reports
// failures on the returned payload instead of as errors.
func Decode(raw string) (p *Payload) {
	p = &Payload{}

	defer func() {
		if r := recover(); r != nil {
			p.IsValid = false
			p.ValidationError = ValidationErrorDecodeFailure
			p.ValidationDetail = fmt.Sprintf("%v", r)
		}
	}()

	if len(raw) < minPayloadLength {
		p.ValidationError = ValidationErrorTooShort
		return p
	}

	// Checksum gates all further parsing.
	if !VerifyChecksum(raw) {
		p.ValidationError = ValidationErrorChecksumMismatch
		return p
	}

	for _, record := range Scan(raw) {
		if merchantAccountTags[record.Tag] {
			p.MerchantAccountInfo = decodeMerchantAccountInfo(record.Value)
			continue
		}
		if handler, ok := tagHandlers[record.Tag]; ok {
			handler(p, record)
		}
	}

	if p.MerchantName == "" {
		p.ValidationError = ValidationErrorMissingMerchantName
		return p
	}

	p.IsValid = true
	return p
}

func decodeMerchantAccountInfo(value string) *MerchantAccountInfo {
	info := &MerchantAccountInfo{}
	for _, sub := range Scan(value) {
		switch sub.Tag {
		case "00":
			info.GlobalID = sub.Value
		case "01":
			info.MerchantPAN = sub.Value
		case "02":
			info.MerchantID = sub.Value
		case "03":
			info.MerchantCriteria = sub.Value
		}
	}
	return info
}

func decodeAdditionalData(value string) *AdditionalData {
	data := &AdditionalData{}
	for _, sub := range Scan(value) {
		switch sub.Tag {
		case "01":
			data.BillNumber = sub.Value
		case "02":
			data.MobileNumber = sub.Value
		case "03":
			data.StoreLabel = sub.Value
		case "04":
			data.LoyaltyNumber = sub.Value
		case "05":
			data.ReferenceLabel = sub.Value
		case "06":
			data.CustomerLabel = sub.Value
		case "07":
			data.TerminalLabel = sub.Value
		case "08":
			data.PurposeOfTransaction = sub.Value
		}
	}
	return data
}

// knownMarkers are substrings seen in QRIS payloads from the major Indonesian
// acquirers. Used only by the cheap pre-classifier.
var knownMarkers = []string{"QRIS", "ID.CO", "COM.", "GPN"}

// LooksLikeQRIS is a cheap heuristic pre-check used to short-circuit
// obviously foreign codes before a full decode. It is not authoritative:
// a true result still requires Decode to validate the payload.
func LooksLikeQRIS(raw string) bool {
	if !strings.HasPrefix(raw, "00") {
		return false
	}
	upper := strings.ToUpper(raw)
	if !strings.Contains(upper, "ID") {
		return false
	}
	for _, marker := range knownMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
