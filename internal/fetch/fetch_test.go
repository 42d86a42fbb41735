package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Fone X</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Fone X</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, gotUA, "ReviewWriter")
	assert.Contains(t, gotLang, "pt-BR")
}

func TestURL_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dp/B0X", http.StatusFound)
	})
	mux.HandleFunc("/dp/B0X", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := URL(context.Background(), server.URL+"/short", nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/dp/B0X", result.FinalURL)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusServiceUnavailable, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "503")
}

func TestURL_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := URL(ctx, server.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestURL_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 1024)))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.MaxBodyBytes = 100
	result, err := URL(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.Len(t, result.HTML, 100)
}

func TestExtractMainText(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		selectors []string
		noise     []string
		contains  []string
		excludes  []string
	}{
		{
			name:      "main element wins",
			html:      `<html><body><nav>Menu</nav><main><h1>Fone X</h1><p>Bateria de 30h</p></main><footer>Rodapé</footer></body></html>`,
			selectors: DefaultTextSelectors(),
			contains:  []string{"Fone X", "Bateria de 30h"},
			excludes:  []string{"Menu", "Rodapé"},
		},
		{
			name:      "fallback to body",
			html:      `<html><body><div>Somente texto</div><script>var x = 1;</script></body></html>`,
			selectors: DefaultTextSelectors(),
			contains:  []string{"Somente texto"},
			excludes:  []string{"var x"},
		},
		{
			name:      "platform noise removed",
			html:      `<html><body><div id="productDescription">Som limpo</div><div id="customerReviews">Review spam</div></body></html>`,
			selectors: []string{"body"},
			noise:     PlatformSelectors(PlatformAmazon).Noise,
			contains:  []string{"Som limpo"},
			excludes:  []string{"Review spam"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractMainText(tt.html, tt.selectors, tt.noise...)
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, text, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, text, e)
			}
		})
	}
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", CleanWhitespace("  a   b  \n\n\t\n c "))
	assert.Equal(t, "", CleanWhitespace(" \n "))
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("Loading..."))
	assert.False(t, ShouldUseBrowser(strings.Repeat("texto ", 100)))
}
