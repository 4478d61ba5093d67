package utils

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Store        StoreConfig
	Remote       RemoteConfig
	Notify       NotifyConfig
	Connectivity ConnectivityConfig
	Sync         SyncConfig
	Admin        AdminConfig
	Providers    ProviderConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type StoreConfig struct {
	Backend string
	Path    string
}

type RemoteConfig struct {
	Backend  string
	BaseURL  string
	APIKey   string
	DSN      string
	MaxConns int32
	Timeout  time.Duration
}

type NotifyConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type ConnectivityConfig struct {
	ProbeURL string
	Timeout  time.Duration
}

type SyncConfig struct {
	Interval  time.Duration
	RunOnBoot bool
}

type AdminConfig struct {
	// TokenHash is a bcrypt hash of the admin bearer token.
	TokenHash string
}

type ProviderConfig struct {
	// Aliases maps short staff aliases to backend identifiers. An alias
	// with an empty identifier is known but not yet configured.
	Aliases map[string]string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORE_BACKEND", "auto")
	viper.SetDefault("STORE_PATH", "data/bookings")
	viper.SetDefault("REMOTE_BACKEND", "rest")
	viper.SetDefault("REMOTE_MAX_CONNS", 5)
	viper.SetDefault("REMOTE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CONNECTIVITY_PROBE_URL", "https://www.google.com/generate_204")
	viper.SetDefault("CONNECTIVITY_TIMEOUT_SECONDS", 3)
	viper.SetDefault("SYNC_INTERVAL_SECONDS", 60)
	viper.SetDefault("SYNC_RUN_ON_BOOT", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Store: StoreConfig{
			Backend: viper.GetString("STORE_BACKEND"),
			Path:    viper.GetString("STORE_PATH"),
		},
		Remote: RemoteConfig{
			Backend:  viper.GetString("REMOTE_BACKEND"),
			BaseURL:  viper.GetString("REMOTE_BASE_URL"),
			APIKey:   viper.GetString("REMOTE_API_KEY"),
			DSN:      viper.GetString("REMOTE_DSN"),
			MaxConns: viper.GetInt32("REMOTE_MAX_CONNS"),
			Timeout:  time.Duration(viper.GetInt("REMOTE_TIMEOUT_SECONDS")) * time.Second,
		},
		Notify: NotifyConfig{
			Endpoint: viper.GetString("NOTIFY_ENDPOINT"),
			APIKey:   viper.GetString("NOTIFY_API_KEY"),
			Timeout:  time.Duration(viper.GetInt("NOTIFY_TIMEOUT_SECONDS")) * time.Second,
		},
		Connectivity: ConnectivityConfig{
			ProbeURL: viper.GetString("CONNECTIVITY_PROBE_URL"),
			Timeout:  time.Duration(viper.GetInt("CONNECTIVITY_TIMEOUT_SECONDS")) * time.Second,
		},
		Sync: SyncConfig{
			Interval:  time.Duration(viper.GetInt("SYNC_INTERVAL_SECONDS")) * time.Second,
			RunOnBoot: viper.GetBool("SYNC_RUN_ON_BOOT"),
		},
		Admin: AdminConfig{
			TokenHash: viper.GetString("ADMIN_TOKEN_HASH"),
		},
		Providers: ProviderConfig{
			Aliases: ParseAliases(viper.GetString("PROVIDER_ALIASES")),
		},
	}

	return config, nil
}

// ParseAliases parses "lucyna=uuid-1,marta=" into an alias table. An entry
// without a value stays in the table with an empty identifier, which the
// resolver treats as a known-but-unconfigured alias.
func ParseAliases(raw string) map[string]string {
	aliases := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		alias, id, _ := strings.Cut(pair, "=")
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		aliases[alias] = strings.TrimSpace(id)
	}

	return aliases
}
