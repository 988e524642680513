package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/domain/pricing"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// TestPercentageChange_Gulder es el vector de referencia: 100 → 120 = +16.67 %.
func TestPercentageChange_Gulder(t *testing.T) {
	pct, err := pricing.PercentageChange("GULDER", dec("100"), dec("120"))
	require.NoError(t, err)
	assert.True(t, pct.Equal(dec("16.67")), "esperado 16.67, obtenido %s", pct)
	assert.True(t, pricing.IsSignificant(pct, pricing.DefaultThresholdPct))
}

func TestPercentageChange_CostosIgualesEsCero(t *testing.T) {
	for _, c := range []string{"0.01", "1", "250", "1500.5", "98000"} {
		pct, err := pricing.PercentageChange("X", dec(c), dec(c))
		require.NoError(t, err)
		assert.True(t, pct.IsZero(), "costo %s", c)
		assert.False(t, pricing.IsSignificant(pct, pricing.DefaultThresholdPct))
	}
}

func TestPercentageChange_Baja(t *testing.T) {
	// (1000 - 1200) * 100 / 1000 = -20
	pct, err := pricing.PercentageChange("TROPHY", dec("1200"), dec("1000"))
	require.NoError(t, err)
	assert.True(t, pct.Equal(dec("-20")))
	assert.False(t, pct.IsPositive())
}

func TestPercentageChange_ActualCeroFalla(t *testing.T) {
	_, err := pricing.PercentageChange("HEINEKEN", dec("100"), decimal.Zero)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDivisionByZero))

	var dz *domain.DivisionByZeroError
	require.True(t, errors.As(err, &dz))
	assert.Equal(t, "HEINEKEN", dz.Stock)
}

// TestIsSignificant_Frontera verifica que exactamente ±10 no es significativo.
func TestIsSignificant_Frontera(t *testing.T) {
	cases := []struct {
		pct  string
		want bool
	}{
		{"10", false},
		{"-10", false},
		{"10.01", true},
		{"-10.01", true},
		{"9.99", false},
		{"0", false},
		{"-45.5", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, pricing.IsSignificant(dec(c.pct), pricing.DefaultThresholdPct), "pct=%s", c.pct)
	}
}

// TestIsSignificant_EquivalenciaConValorAbsoluto recorre una grilla de tripletas y
// comprueba |pct| > 10 ⇔ significativo.
func TestIsSignificant_EquivalenciaConValorAbsoluto(t *testing.T) {
	ten := decimal.NewFromInt(10)
	for base := int64(50); base <= 150; base += 5 {
		for current := int64(50); current <= 150; current += 7 {
			pct, err := pricing.PercentageChange("X", decimal.NewFromInt(base), decimal.NewFromInt(current))
			require.NoError(t, err)
			assert.Equal(t, pct.Abs().GreaterThan(ten), pricing.IsSignificant(pct, ten),
				"base=%d current=%d pct=%s", base, current, pct)
		}
	}
}
