package config_test

import (
	"testing"

	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewStoreConfigHolderDefaults(t *testing.T) {
	holder, err := config.NewStoreConfigHolder(zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Current()
	assert.Equal(t, "50.00", cfg.DefaultBasePrice)
	assert.Equal(t, "45.00", cfg.CategoryBasePrices["apparel"])
	assert.Empty(t, cfg.NotificationRecipients)
}

func TestStoreConfigHolderReplace(t *testing.T) {
	holder := &config.StoreConfigHolder{}

	cfg := config.DefaultStoreConfig()
	cfg.DefaultBasePrice = "70.00"
	holder.Replace(cfg)

	assert.Equal(t, "70.00", holder.Current().DefaultBasePrice)
}

func TestStoreConfigHolderZeroValue(t *testing.T) {
	var holder *config.StoreConfigHolder
	assert.Equal(t, config.DefaultStoreConfig().DefaultBasePrice, holder.Current().DefaultBasePrice)
}
