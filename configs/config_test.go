package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
chain_id: 1
symbols:
  USDC:
    address: "0x1111111111111111111111111111111111111111"
    decimals: 6
  WETH:
    address: "0x2222222222222222222222222222222222222222"
    decimals: 18
pairs:
  - [USDC, WETH]
sizes:
  - "1000"
  - "5000"
sources:
  - UniswapV3
  - SushiSwap
router:
  address: "0x3333333333333333333333333333333333333333"
  factory: "0x4444444444444444444444444444444444444444"
  stable_default: false
aggregator:
  base_url: "https://api.example.com"
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))
	return path
}

func TestLoadConfigAndTranslate(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t))
	require.NoError(t, err)

	tokens, err := cfg.ToTokens()
	require.NoError(t, err)
	assert.Equal(t, 6, tokens["USDC"].Decimals)
	assert.Equal(t, 18, tokens["WETH"].Decimals)

	pairs, err := cfg.ToPairs(tokens)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "USDC", pairs[0].Base.Symbol)
	assert.Equal(t, "WETH", pairs[0].Quote.Symbol)

	sizes, err := cfg.ToSizes()
	require.NoError(t, err)
	require.Len(t, sizes, 2)

	routerAddr, err := cfg.RouterAddress()
	require.NoError(t, err)
	assert.NotEqual(t, "", routerAddr.Hex())
}

func TestToPairsErrorsOnUnknownSymbol(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t))
	require.NoError(t, err)
	cfg.Pairs = append(cfg.Pairs, [2]string{"USDC", "DOESNOTEXIST"})

	tokens, err := cfg.ToTokens()
	require.NoError(t, err)

	_, err = cfg.ToPairs(tokens)
	assert.Error(t, err)
}
