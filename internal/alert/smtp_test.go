package alert

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan"
)

func sampleOpportunity() arbscan.Opportunity {
	return arbscan.Opportunity{
		ChainID: 1,
		Pair: arbscan.Pair{
			Base:  arbscan.Token{Symbol: "USDC", Address: common.HexToAddress("0x1"), Decimals: 6},
			Quote: arbscan.Token{Symbol: "WETH", Address: common.HexToAddress("0x2"), Decimals: 18},
		},
		Size:   decimal.NewFromInt(1000),
		Route:  arbscan.Route{LegA: "UniswapV3", LegB: "SushiSwap"},
		NetUSD: 4.5,
	}
}

func TestSendWithNoRecipientsIsNoop(t *testing.T) {
	alerter := NewSMTPAlerter("smtp.example.com", "587", "", "", "bot@example.com", nil)
	err := alerter.Send(context.Background(), sampleOpportunity())
	require.NoError(t, err)
}

func TestBuildMessageIncludesSubjectAndBody(t *testing.T) {
	alerter := NewSMTPAlerter("smtp.example.com", "587", "", "", "bot@example.com", []string{"ops@example.com"})
	msg := alerter.buildMessage(sampleOpportunity())

	assert.Contains(t, msg, "To: ops@example.com")
	assert.Contains(t, msg, "From: bot@example.com")
	assert.Contains(t, msg, "UniswapV3->SushiSwap")
	assert.Contains(t, msg, "net_usd=4.5000")
}
