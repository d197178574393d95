package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// PaymentConfig holds the payment lifecycle settings.
// UnmappedMerchantPolicy selects the behavior when a decoded QR cannot be
// matched to a registered merchant: "require_mapping" rejects the payment,
// "allow_synthetic_fallback" completes it with a synthetic gateway reference.
// The active policy is logged at startup; it is never read from the
// environment at call time.
type PaymentConfig struct {
	ServiceFeeBasisPoints  int    `mapstructure:"service_fee_basis_points"`
	UnmappedMerchantPolicy string `mapstructure:"unmapped_merchant_policy"`
	ConfirmLockTTLSeconds  int    `mapstructure:"confirm_lock_ttl_seconds"`
}

type DisbursementConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type BridgeConfig struct {
	RelayerBaseURL       string `mapstructure:"relayer_base_url"`
	SigningSecret        string `mapstructure:"signing_secret"`
	MinTransferAmount    int64  `mapstructure:"min_transfer_amount"`
	TimeoutSeconds       int    `mapstructure:"timeout_seconds"`
	DestinationChainID   string `mapstructure:"destination_chain_id"`
	SubmitPath           string `mapstructure:"submit_path"`
	DefaultSourceChainID string `mapstructure:"default_source_chain_id"`
}
