package config

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// StoreConfig holds business tunables that operators adjust without a
// redeploy: who receives business notifications, how provider payment-method
// codes map to display labels, and the deterministic price-estimation table.
type StoreConfig struct {
	NotificationRecipients []string          `mapstructure:"notification_recipients"`
	PaymentLabels          map[string]string `mapstructure:"payment_labels"`
	CategoryBasePrices     map[string]string `mapstructure:"category_base_prices"`
	DefaultBasePrice       string            `mapstructure:"default_base_price"`
}

func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		NotificationRecipients: nil,
		PaymentLabels:          map[string]string{},
		CategoryBasePrices: map[string]string{
			"apparel":     "45.00",
			"accessories": "25.00",
			"homeware":    "60.00",
		},
		DefaultBasePrice: "50.00",
	}
}

// StoreConfigHolder exposes the current StoreConfig and hot-reloads it when
// the backing file changes.
type StoreConfigHolder struct {
	current atomic.Value // holds StoreConfig
}

func NewStoreConfigHolder(log *zap.Logger) (*StoreConfigHolder, error) {
	log = log.Named("config.store")
	v := viper.New()

	v.SetConfigName("store")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/driftv8")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DRIFTV8")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &StoreConfigHolder{}
	holder.current.Store(DefaultStoreConfig())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		return holder, nil
	}

	if cfg, err := decodeStoreConfig(v); err != nil {
		log.Warn("store config invalid, using defaults", zap.Error(err))
	} else {
		holder.current.Store(cfg)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := decodeStoreConfig(v)
		if err != nil {
			log.Warn("store config reload failed", zap.Error(err))
			return
		}
		holder.current.Store(cfg)
	})
	v.WatchConfig()

	return holder, nil
}

func (h *StoreConfigHolder) Current() StoreConfig {
	if h == nil {
		return DefaultStoreConfig()
	}
	cfg, ok := h.current.Load().(StoreConfig)
	if !ok {
		return DefaultStoreConfig()
	}
	return cfg
}

// Replace swaps the active config. Used by tests.
func (h *StoreConfigHolder) Replace(cfg StoreConfig) {
	h.current.Store(cfg)
}

func decodeStoreConfig(v *viper.Viper) (StoreConfig, error) {
	cfg := DefaultStoreConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return StoreConfig{}, err
	}
	if cfg.DefaultBasePrice == "" {
		cfg.DefaultBasePrice = "50.00"
	}
	return cfg, nil
}
