package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
	"github.com/sirosfoundation/go-dfe/pkg/transport"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, catalog.TipoNFe, cfg.TipoValue())
	assert.Equal(t, 30*time.Second, cfg.Transport.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Transport.ConnectTimeout)
	assert.Equal(t, "1.2", cfg.Transport.MinTLSVersion)
	assert.Equal(t, "/metrics", cfg.Metrics.Metrics.Path)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad(t *testing.T) {
	t.Setenv("DFE_TEST_PASSWORD", "segredo")

	path := writeFile(t, "dfe.yaml", `
certificate:
  file: ../../pkg/credential/testdata/certificado.p12
  password: ${DFE_TEST_PASSWORD}
tipo: cte
contingencia: true
nationalServices: [distribuicao, manifestacao]
transport:
  timeout: 10s
  minTLSVersion: "1.3"
  rateLimit: 2.5
  burst: 3
log:
  level: debug
  format: json
observability:
  metrics:
    enabled: true
    addr: ":9100"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "segredo", cfg.Certificate.Password)
	assert.Equal(t, catalog.TipoCTe, cfg.TipoValue())
	assert.True(t, cfg.Contingencia)
	assert.True(t, cfg.Metrics.Metrics.Enabled)
	assert.Equal(t, ":9100", cfg.Metrics.Metrics.Addr)
	assert.Equal(t, 5*time.Second, cfg.Transport.ConnectTimeout, "defaults fill unset fields")

	national, err := cfg.NationalServiceList()
	require.NoError(t, err)
	assert.Equal(t, []catalog.Servico{catalog.DistribuicaoDFe, catalog.Manifestacao}, national)

	r, err := cfg.Resolver()
	require.NoError(t, err)
	assert.False(t, r.National(catalog.EPEC))

	https, err := cfg.HTTPSConfig()
	require.NoError(t, err)
	assert.Equal(t, uint16(transport.TLS13), https.MinTLSVersion)
	assert.Equal(t, 10*time.Second, https.Timeout)
	assert.Equal(t, 2.5, https.RateLimit)
	assert.Equal(t, 3, https.Burst)

	id, err := cfg.Identity()
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Contains(t, id.Subject(), "EMPRESA TESTE LTDA")

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	tests := map[string]string{
		"bad yaml":          "tipo: [",
		"bad tipo":          "tipo: nfse",
		"bad tls":           "transport:\n  minTLSVersion: \"1.0\"",
		"negative rate":     "transport:\n  rateLimit: -1",
		"bad level":         "log:\n  level: loud",
		"bad format":        "log:\n  format: xml",
		"unknown national":  "nationalServices: [nothing]",
		"password, no file": "certificate:\n  password: x",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestStore(t *testing.T) {
	cfg := Default()
	store, err := cfg.Store()
	require.NoError(t, err)
	assert.Positive(t, store.Sections())

	cfg.WebServices.File = writeFile(t, "ws.ini", "[NFe_SP_P]\nNfeStatusServico_4.00=https://example.test/status\n")
	store, err = cfg.Store()
	require.NoError(t, err)
	url, ok := store.Get("NFe_SP_P", "NfeStatusServico_4.00")
	assert.True(t, ok)
	assert.Equal(t, "https://example.test/status", url)
}

func TestIdentity_NotConfigured(t *testing.T) {
	id, err := Default().Identity()
	assert.NoError(t, err)
	assert.Nil(t, id)
}

func TestHTTPSConfig_RootCA(t *testing.T) {
	cfg := Default()
	cfg.Transport.RootCAFile = writeFile(t, "ca.pem", "not a certificate")
	_, err := cfg.HTTPSConfig()
	assert.Error(t, err)

	cfg.Transport.RootCAFile = filepath.Join(t.TempDir(), "missing.pem")
	_, err = cfg.HTTPSConfig()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
