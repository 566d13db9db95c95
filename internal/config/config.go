package config

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	API      APIConfig      `mapstructure:"api"`
	Sync     SyncConfig     `mapstructure:"sync"`
	// Verbose enables diagnostic logging on stderr.
	Verbose    bool   `mapstructure:"verbose"`
	ConfigPath string `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type APIConfig struct {
	// Environment selects the API endpoint, "live" or "sandbox".
	Environment    string `mapstructure:"environment"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SyncConfig struct {
	// Currency is the settlement currency used for balance reconciliation.
	Currency string `mapstructure:"currency"`
	// MergeOffsetDays is how far before the last sync point the local
	// ledger is scanned for duplicates when the received transactions
	// carry no usable dates.
	MergeOffsetDays int `mapstructure:"merge_offset_days"`
	// InitialLookbackDays bounds the first fetch when the account has
	// never been synchronized.
	InitialLookbackDays int `mapstructure:"initial_lookback_days"`
	// AcceptPending controls whether transactions in status "P" are
	// imported. Deployments disagree on this, so it is a toggle.
	AcceptPending bool `mapstructure:"accept_pending"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		API: APIConfig{
			Environment:    "live",
			TimeoutSeconds: 30,
		},
		Sync: SyncConfig{
			Currency:            "EUR",
			MergeOffsetDays:     30,
			InitialLookbackDays: 360,
			AcceptPending:       true,
		},
	}
}
