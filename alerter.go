package arbscan

import (
	"context"
	"fmt"
)

// Alerter delivers a best-effort, human-readable notification for a
// published Opportunity. A failed Send MUST NOT affect the Sink write
// or the scan loop — callers are expected to log and continue, never
// to treat an error as fatal.
type Alerter interface {
	Send(ctx context.Context, opportunity Opportunity) error
}

// NoopAlerter discards every opportunity. Used when no alert transport
// is configured.
type NoopAlerter struct{}

func (NoopAlerter) Send(ctx context.Context, opportunity Opportunity) error {
	return nil
}

// FormatAlert renders the §6 human-readable alert body: pair, size,
// chain, leg tags, gross base amount, gross bps, MEV-only ROI bps,
// estimated gas USD, net ROI bps, net USD.
func FormatAlert(o Opportunity) string {
	return fmt.Sprintf(
		"chain=%d pair=%s size=%s route=%s\ngross_base=%s gross_bps=%.2f\nmev_only_roi_bps=%.2f gas_usd=%.4f\nnet_roi_bps=%.2f net_usd=%.4f",
		o.ChainID, o.Pair.String(), o.Size.String(), o.Route.String(),
		o.GrossBase.String(), o.GrossBps,
		o.Details.MEVOnlyROIBp, o.GasUSD,
		o.Details.NetROIBps, o.NetUSD,
	)
}
