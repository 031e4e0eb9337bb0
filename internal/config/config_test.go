package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "PORT", "TAX_RATE", "FREE_SHIPPING_THRESHOLD", "SHIPPING_FEE", "CHECKOUT_RATE_LIMIT", "CORS_ALLOW_ORIGINS", "AUTH_JWT_SECRET", "PUBLISH_EVENTS", "CART_IDLE_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	require.Empty(t, cfg.AuthJWTSecret)
	require.False(t, cfg.PublishEvents)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, 30*time.Minute, cfg.CartIdleTimeout)
	require.True(t, cfg.Pricing.TaxRate.Equal(decimal.RequireFromString("0.10")))
	require.True(t, cfg.Pricing.FreeShippingThreshold.Equal(decimal.NewFromInt(500)))
	require.True(t, cfg.Pricing.ShippingFee.Equal(decimal.NewFromInt(15)))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("TAX_RATE", "0.25")
	t.Setenv("SHIPPING_FEE", "7.5")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://shop.example, https://admin.example ,")
	t.Setenv("RUN_MIGRATIONS", "no")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("CART_IDLE_TIMEOUT", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.True(t, cfg.Pricing.TaxRate.Equal(decimal.RequireFromString("0.25")))
	require.True(t, cfg.Pricing.ShippingFee.Equal(decimal.RequireFromString("7.5")))
	require.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORSAllowOrigins)
	require.False(t, cfg.RunMigrations)
	require.True(t, cfg.IsDev())
	require.Equal(t, 2*time.Hour, cfg.CartIdleTimeout)
}

func TestLoadRejectsBadPricing(t *testing.T) {
	cases := map[string]string{
		"TAX_RATE":                "ten percent",
		"FREE_SHIPPING_THRESHOLD": "-1",
		"CHECKOUT_RATE_LIMIT":     "fast",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
