package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vitos/trade_journal/internal/domain"
	"github.com/vitos/trade_journal/internal/usecase"
)

// Defaults applied when the config file omits or mangles a value. Neither is
// fatal: the journal still renders, just with a warning at startup.
const (
	DefaultRiskThreshold = 0.01
	DefaultRecvWindow    = 5000
)

type TableConfig struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"` // "aggregated", "detailed" or "custom"
	Descriptions bool     `yaml:"descriptions"`
	Columns      []string `yaml:"columns"`
}

type ChartConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // only "pie" is rendered
}

type Config struct {
	API struct {
		Name         string `yaml:"name"`
		RESTEndpoint string `yaml:"rest_endpoint"`
		RecvWindow   int    `yaml:"recv_window"`
	} `yaml:"api"`

	Journal struct {
		// Name is the journal title template; {timeframe}, {date} and {pnl}
		// are substituted at render time.
		Name             string        `yaml:"name"`
		RiskThreshold    float64       `yaml:"risk_threshold"`
		ComputeProfitsBy string        `yaml:"compute_profits_by"`
		EntryCalc        string        `yaml:"entry_calc"`
		Tables           []TableConfig `yaml:"tables"`
		Charts           []ChartConfig `yaml:"charts"`
		Tags             []string      `yaml:"tags"`
		CSSClasses       []string      `yaml:"css_classes"`
		DisplayOrder     []string      `yaml:"display_order"`
	} `yaml:"journal"`

	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}
	return &cfg, nil
}

// Normalize fills in safe defaults for missing or unsupported values, warning
// once per substitution. Called after the logger exists.
func (c *Config) Normalize(log *zap.Logger) {
	if c.API.RESTEndpoint == "" {
		c.API.RESTEndpoint = "https://api.bybit.com"
	}
	if c.API.RecvWindow <= 0 {
		c.API.RecvWindow = DefaultRecvWindow
	}
	if c.Journal.RiskThreshold <= 0 {
		log.Warn("invalid or missing risk threshold, using default",
			zap.Float64("default", DefaultRiskThreshold))
		c.Journal.RiskThreshold = DefaultRiskThreshold
	}
	if _, ok := parseProfitColumn(c.Journal.ComputeProfitsBy); !ok {
		if c.Journal.ComputeProfitsBy != "" {
			log.Warn("unsupported profit column, using default",
				zap.String("value", c.Journal.ComputeProfitsBy),
				zap.String("default", string(domain.ProfitRealized)))
		}
		c.Journal.ComputeProfitsBy = string(domain.ProfitRealized)
	}
	switch usecase.EntryCalc(strings.ToLower(c.Journal.EntryCalc)) {
	case usecase.EntryCalcFirst, usecase.EntryCalcAverage:
		c.Journal.EntryCalc = strings.ToLower(c.Journal.EntryCalc)
	default:
		if c.Journal.EntryCalc != "" {
			log.Warn("unsupported entry calculation, using default",
				zap.String("value", c.Journal.EntryCalc))
		}
		c.Journal.EntryCalc = string(usecase.EntryCalcFirst)
	}
	if c.Journal.Name == "" {
		c.Journal.Name = "{timeframe} Journal {date} {pnl}"
	}
}

// ProfitColumn returns the normalized profit column selector.
func (c *Config) ProfitColumn() domain.ProfitColumn {
	col, _ := parseProfitColumn(c.Journal.ComputeProfitsBy)
	return col
}

// EntryCalc returns the normalized entry calculation policy.
func (c *Config) EntryCalc() usecase.EntryCalc {
	return usecase.EntryCalc(c.Journal.EntryCalc)
}

func parseProfitColumn(s string) (domain.ProfitColumn, bool) {
	switch strings.ToLower(s) {
	case strings.ToLower(string(domain.ProfitRealized)):
		return domain.ProfitRealized, true
	case strings.ToLower(string(domain.ProfitGross)):
		return domain.ProfitGross, true
	}
	return domain.ProfitRealized, false
}
