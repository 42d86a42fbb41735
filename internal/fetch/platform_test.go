package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.amazon.com.br/dp/B0C1234567", PlatformAmazon},
		{"https://amzn.to/3abc", PlatformAmazon},
		{"https://produto.mercadolivre.com.br/MLB-123-fone", PlatformMercadoLivre},
		{"https://articulo.mercadolibre.com.ar/MLA-1", PlatformMercadoLivre},
		{"https://shopee.com.br/product/1/2", PlatformShopee},
		{"https://pt.aliexpress.com/item/100.html", PlatformAliExpress},
		{"https://www.magazineluiza.com.br/fone/p/abc/", PlatformMagalu},
		{"https://loja.example.com/fone", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformSelectors(t *testing.T) {
	for _, p := range []Platform{PlatformAmazon, PlatformMercadoLivre, PlatformShopee, PlatformAliExpress, PlatformMagalu, PlatformUnknown} {
		sel := PlatformSelectors(p)
		assert.NotEmpty(t, sel.Title, p)
		assert.NotEmpty(t, sel.Description, p)
		assert.Contains(t, sel.Noise, "form", p)
	}
	assert.Equal(t, "#productTitle", PlatformSelectors(PlatformAmazon).Title[0])
}

func TestRequiresBrowser(t *testing.T) {
	assert.True(t, RequiresBrowser(PlatformShopee))
	assert.False(t, RequiresBrowser(PlatformAmazon))
	assert.False(t, RequiresBrowser(PlatformUnknown))
}
