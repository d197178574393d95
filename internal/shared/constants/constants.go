package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType    = "Content-Type"
	HeaderAuthorization  = "Authorization"
	HeaderXRequestID     = "X-Request-ID"
	HeaderIdempotencyKey = "X-Idempotency-Key"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyWalletRef = "wallet_ref"
	ContextKeyRequestID = "request_id"

	// Currency
	CurrencyIDR = "IDR"

	// Table names
	TableMerchantRegistrations = "merchant_registrations"
	TablePaymentAttempts       = "payment_attempts"
)
