package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitos/trade_journal/internal/config"
	"github.com/vitos/trade_journal/internal/domain"
	"github.com/vitos/trade_journal/internal/usecase"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  name: "Bybit"
  rest_endpoint: "https://api.bybit.com"
  recv_window: 5000
journal:
  name: "{timeframe} Journal {date} {pnl}"
  risk_threshold: 0.02
  compute_profits_by: "Gross Profit"
  entry_calc: "average"
  tables:
    - name: "Aggregated View"
      type: "aggregated"
      descriptions: true
  charts:
    - name: "Performance"
      type: "pie"
  tags:
    - "trading"
logging:
  level: "debug"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	cfg.Normalize(zap.NewNop())

	assert.Equal(t, "Bybit", cfg.API.Name)
	assert.Equal(t, 0.02, cfg.Journal.RiskThreshold)
	assert.Equal(t, domain.ProfitGross, cfg.ProfitColumn())
	assert.Equal(t, usecase.EntryCalcAverage, cfg.EntryCalc())
	require.Len(t, cfg.Journal.Tables, 1)
	assert.True(t, cfg.Journal.Tables[0].Descriptions)
	require.Len(t, cfg.Journal.Charts, 1)
	assert.Equal(t, "Performance", cfg.Journal.Charts[0].Name)
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.Journal.ComputeProfitsBy = "Net Profit"
	cfg.Journal.EntryCalc = "median"

	cfg.Normalize(zap.NewNop())

	assert.Equal(t, "https://api.bybit.com", cfg.API.RESTEndpoint)
	assert.Equal(t, config.DefaultRecvWindow, cfg.API.RecvWindow)
	assert.Equal(t, config.DefaultRiskThreshold, cfg.Journal.RiskThreshold)
	assert.Equal(t, domain.ProfitRealized, cfg.ProfitColumn())
	assert.Equal(t, usecase.EntryCalcFirst, cfg.EntryCalc())
	assert.NotEmpty(t, cfg.Journal.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "api: [unterminated")
	_, err := config.Load(path)
	require.Error(t, err)
}
