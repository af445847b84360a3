// Package configs loads the YAML token/pair/source schema and
// translates it into the core's own types, the same split the teacher
// repo's config.go draws between YAML DTOs and domain configs.
package configs

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"arbscan"
)

// Config represents the entire configuration structure from config.yml.
type Config struct {
	ChainID      int64                    `yaml:"chain_id"`
	Symbols      map[string]TokenYAMLData `yaml:"symbols"`
	Pairs        [][2]string              `yaml:"pairs"`
	Sizes        []string                 `yaml:"sizes"`
	Sources      []string                 `yaml:"sources"`
	Router       RouterYAMLData           `yaml:"router"`
	Aggregator   AggregatorYAMLData       `yaml:"aggregator"`
	AerodromeAPI AerodromeAPIYAMLData     `yaml:"aerodrome_api"`
}

// TokenYAMLData is one entry of the configured token set.
type TokenYAMLData struct {
	Address  string `yaml:"address"`
	Decimals int    `yaml:"decimals"`
}

// RouterYAMLData configures the direct on-chain RouterAdapter.
type RouterYAMLData struct {
	Address       string `yaml:"address"`
	Factory       string `yaml:"factory"`
	StableDefault bool   `yaml:"stable_default"`
}

// AggregatorYAMLData configures the 0x-style meta-aggregator API root.
type AggregatorYAMLData struct {
	BaseURL string `yaml:"base_url"`
}

// AerodromeAPIYAMLData configures the decimal-units quote-by-API venue.
type AerodromeAPIYAMLData struct {
	BaseURL string `yaml:"base_url"`
}

// LoadConfig reads and parses config.yml into a Config struct.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &config, nil
}

// ToTokens converts the configured symbol table into arbscan.Token
// values keyed by symbol, checksum-normalizing every address.
func (c *Config) ToTokens() (map[string]arbscan.Token, error) {
	tokens := make(map[string]arbscan.Token, len(c.Symbols))
	for symbol, data := range c.Symbols {
		if !common.IsHexAddress(data.Address) {
			return nil, fmt.Errorf("token %s: invalid address %q", symbol, data.Address)
		}
		tokens[symbol] = arbscan.Token{
			Symbol:   symbol,
			Address:  common.HexToAddress(data.Address),
			Decimals: data.Decimals,
		}
	}
	return tokens, nil
}

// ToPairs resolves the configured (base, quote) symbol pairs against
// tokens. Returns an error at startup if a pair names an unconfigured
// symbol — a configuration error, fatal only here.
func (c *Config) ToPairs(tokens map[string]arbscan.Token) ([]arbscan.Pair, error) {
	pairs := make([]arbscan.Pair, 0, len(c.Pairs))
	for _, p := range c.Pairs {
		base, ok := tokens[p[0]]
		if !ok {
			return nil, fmt.Errorf("pair %v: unknown base symbol %q", p, p[0])
		}
		quote, ok := tokens[p[1]]
		if !ok {
			return nil, fmt.Errorf("pair %v: unknown quote symbol %q", p, p[1])
		}
		pairs = append(pairs, arbscan.Pair{Base: base, Quote: quote})
	}
	return pairs, nil
}

// ToSizes parses the configured decimal size strings.
func (c *Config) ToSizes() ([]decimal.Decimal, error) {
	sizes := make([]decimal.Decimal, 0, len(c.Sizes))
	for _, s := range c.Sizes {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", s, err)
		}
		sizes = append(sizes, d)
	}
	return sizes, nil
}

// RouterAddress returns the checksum-normalized router address.
func (c *Config) RouterAddress() (common.Address, error) {
	if !common.IsHexAddress(c.Router.Address) {
		return common.Address{}, fmt.Errorf("invalid router address %q", c.Router.Address)
	}
	return common.HexToAddress(c.Router.Address), nil
}

// FactoryAddress returns the checksum-normalized factory address.
func (c *Config) FactoryAddress() (common.Address, error) {
	if !common.IsHexAddress(c.Router.Factory) {
		return common.Address{}, fmt.Errorf("invalid factory address %q", c.Router.Factory)
	}
	return common.HexToAddress(c.Router.Factory), nil
}
