package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Velvet Lounge Chair":        "velvet-lounge-chair",
		"  Oak & Walnut Table  ":     "oak-walnut-table",
		"Lamp -- Brass_Edition":      "lamp-brass-edition",
		"---Already-Dashed---":       "already-dashed",
		"Ceramic Vase (Large), 2024": "ceramic-vase-large-2024",
		"Lumière Candle":             "lumire-candle",
		"!!!":                        "",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, Slugify(in))
		})
	}
}

func TestSlugifyDropsNonASCIILetters(t *testing.T) {
	cases := map[string]string{
		"Crème Brûlée Mug": "crme-brle-mug",
		"Über Café":        "ber-caf",
		"Ёлка Ornament":    "ornament",
		"日本 Tea Set":       "tea-set",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, Slugify(in))
		})
	}
}

func TestSnapshot(t *testing.T) {
	p := Product{
		ID:         "p1",
		Name:       "Linen Throw",
		Slug:       "linen-throw",
		Price:      decimal.RequireFromString("89"),
		SalePrice:  decimal.NewNullDecimal(decimal.RequireFromString("69")),
		Images:     []string{"https://img/1.jpg", "https://img/2.jpg"},
		CategoryID: "textiles",
	}

	snap := p.Snapshot()

	require.Equal(t, "p1", snap.ID)
	require.Equal(t, "Linen Throw", snap.Name)
	require.Equal(t, "https://img/1.jpg", snap.Image)
	require.Equal(t, "textiles", snap.Category)
	require.True(t, snap.EffectivePrice().Equal(decimal.RequireFromString("69")))

	t.Run("without images", func(t *testing.T) {
		require.Empty(t, Product{ID: "p2"}.Snapshot().Image)
	})
}

func TestMaxQuantity(t *testing.T) {
	require.Equal(t, 3, Product{StockCount: 3}.MaxQuantity(10))
	require.Equal(t, 2, Product{StockCount: 3}.MaxQuantity(2))
	require.Equal(t, 10, Product{}.MaxQuantity(10))
}

func TestInputValidate(t *testing.T) {
	valid := Input{Name: "Desk", Price: decimal.RequireFromString("120"), Category: "office"}
	negative := -1

	cases := map[string]struct {
		mutate  func(in *Input)
		wantErr bool
	}{
		"valid":          {mutate: func(in *Input) {}},
		"missing name":   {mutate: func(in *Input) { in.Name = "  " }, wantErr: true},
		"zero price":     {mutate: func(in *Input) { in.Price = decimal.Zero }, wantErr: true},
		"no category":    {mutate: func(in *Input) { in.Category = "" }, wantErr: true},
		"negative sale":  {mutate: func(in *Input) { in.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(-5)) }, wantErr: true},
		"negative stock": {mutate: func(in *Input) { in.StockCount = &negative }, wantErr: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := in.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidProduct)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestInputDefaults(t *testing.T) {
	p := Input{Name: " Desk Lamp ", Price: decimal.RequireFromString("40"), Category: "lighting"}.product()

	require.Equal(t, "Desk Lamp", p.Name)
	require.Equal(t, "desk-lamp", p.Slug)
	require.True(t, p.InStock)
	require.Equal(t, 0, p.StockCount)
	require.NotNil(t, p.Images)
	require.NotNil(t, p.Features)
	require.NotNil(t, p.Tags)
	require.NotNil(t, p.Specifications)

	out := false
	stock := 4
	p = Input{Name: "x", Price: decimal.NewFromInt(1), Category: "c", InStock: &out, StockCount: &stock}.product()
	require.False(t, p.InStock)
	require.Equal(t, 4, p.StockCount)
}
