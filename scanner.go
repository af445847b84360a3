package arbscan

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RouterLegTag identifies the direct on-chain router in a route family,
// distinct from any aggregator source tag in configuration.
const RouterLegTag = "router"

// ScanMetrics is the optional counters hook the Scanner reports through.
// A nil ScanMetrics is always safe; the Scanner checks for nil before
// every call. Counters are purely additive — they never gate a publish
// decision.
type ScanMetrics interface {
	IncPublished()
	IncSuppressed(reason string)
	IncAdapterFailure(protocol string)
}

// Scanner enumerates (pair x size x route) and drives the configured
// adapters to find round-trip dislocations. One Scanner instance is
// built once at startup and reused across every scan.
type Scanner struct {
	ChainID     int64
	Pairs       []Pair
	Sizes       []decimal.Decimal
	Sources     []string
	Aggregators map[string]QuoteAdapter
	Router      QuoteAdapter
	Model       *ProfitModel
	Cooldown    *Cooldown
	Sink        Sink
	Alerter     Alerter
	Concurrency  int
	Metrics      ScanMetrics
	CallDeadline time.Duration

	now func() time.Time // overridable for tests
}

type routeTask struct {
	pair Pair
	size decimal.Decimal
	legA string
	legB string
}

// buildRouteTasks enumerates the three route families from §4.6 in
// deterministic order: aggregator x aggregator (configured source order),
// then aggregator -> router, then router -> aggregator.
func (s *Scanner) buildRouteTasks() []routeTask {
	var tasks []routeTask
	for _, pair := range s.Pairs {
		for _, size := range s.Sizes {
			for _, srcA := range s.Sources {
				for _, srcB := range s.Sources {
					if srcA == srcB {
						continue
					}
					tasks = append(tasks, routeTask{pair, size, srcA, srcB})
				}
			}
			for _, src := range s.Sources {
				tasks = append(tasks, routeTask{pair, size, src, RouterLegTag})
			}
			for _, src := range s.Sources {
				tasks = append(tasks, routeTask{pair, size, RouterLegTag, src})
			}
		}
	}
	return tasks
}

func (s *Scanner) adapterFor(tag string) QuoteAdapter {
	if tag == RouterLegTag {
		return s.Router
	}
	return s.Aggregators[tag]
}

// Scan runs one full enumeration and returns every qualifying
// Opportunity, in deterministic index order regardless of which
// goroutine finishes first (P7). A route with a failing leg never
// affects any other route's publication decision (P5).
func (s *Scanner) Scan(ctx context.Context) ([]Opportunity, error) {
	tasks := s.buildRouteTasks()
	results := make([]*Opportunity, len(tasks))

	deadline := s.CallDeadline
	if deadline <= 0 {
		deadline = DefaultCallDeadline
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.Concurrency > 0 {
		g.SetLimit(s.Concurrency)
	}

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			// Deliberately never returns a non-nil error: an adapter or
			// profit-model failure on one route must never cancel the
			// sibling goroutines errgroup.WithContext would otherwise
			// abort.
			defer func() {
				if r := recover(); r != nil {
					log.Printf("arbscan: route %s|%s|%s panicked: %v", task.pair, task.size, task.legA, r)
				}
			}()
			results[i] = s.evaluateRoute(gctx, task, deadline)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var opportunities []Opportunity
	for _, r := range results {
		if r != nil {
			opportunities = append(opportunities, *r)
		}
	}

	if s.Sink != nil {
		if err := s.Sink.Write(ctx, opportunities); err != nil {
			log.Printf("arbscan: sink write failed: %v", err)
		}
	}

	for _, o := range opportunities {
		if s.Alerter == nil {
			continue
		}
		if err := s.Alerter.Send(ctx, o); err != nil {
			log.Printf("arbscan: alert delivery failed for %s %s: %v", o.Pair, o.Route, err)
		}
	}

	return opportunities, nil
}

func (s *Scanner) evaluateRoute(ctx context.Context, task routeTask, deadline time.Duration) *Opportunity {
	adapterA := s.adapterFor(task.legA)
	adapterB := s.adapterFor(task.legB)
	if adapterA == nil || adapterB == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	sellAmount := ToBase(task.size, task.pair.Base.Decimals)
	quoteA := adapterA.Quote(callCtx, task.pair.Base.Address, task.pair.Quote.Address, sellAmount)
	if quoteA == nil || quoteA.BuyAmount == nil || quoteA.BuyAmount.Sign() <= 0 {
		s.incAdapterFailure(task.legA)
		return nil
	}

	callCtxB, cancelB := context.WithTimeout(ctx, deadline)
	defer cancelB()

	quoteB := adapterB.Quote(callCtxB, task.pair.Quote.Address, task.pair.Base.Address, quoteA.BuyAmount)
	if quoteB == nil || quoteB.BuyAmount == nil || quoteB.BuyAmount.Sign() <= 0 {
		s.incAdapterFailure(task.legB)
		return nil
	}

	route := Route{LegA: quoteA.Protocol, LegB: quoteB.Protocol}
	opp, publish := s.Model.Evaluate(s.ChainID, task.pair, task.size, task.pair.Base.Decimals, route, *quoteA, *quoteB)
	if !publish {
		if s.Metrics != nil {
			s.Metrics.IncSuppressed("threshold")
		}
		return nil
	}

	if s.Cooldown != nil {
		now := time.Now
		if s.now != nil {
			now = s.now
		}
		if !s.Cooldown.Allow(ctx, route.Key(task.pair, task.size), now()) {
			if s.Metrics != nil {
				s.Metrics.IncSuppressed("cooldown")
			}
			return nil
		}
	}

	if s.Metrics != nil {
		s.Metrics.IncPublished()
	}
	return &opp
}

func (s *Scanner) incAdapterFailure(protocol string) {
	if s.Metrics != nil {
		s.Metrics.IncAdapterFailure(protocol)
	}
}

// ScanReport is one event emitted by Run, mirroring the teacher's
// channel-based progress reporting: a ScanReport channel the caller
// drains in its own goroutine.
type ScanReport struct {
	Timestamp     time.Time
	EventType     string // "scan_complete" | "error"
	Message       string
	Published     int
	Opportunities []Opportunity
}

// Run drives Scan in a loop with an inter-scan delay, emitting a
// ScanReport per iteration. Per §7, the loop catches every scan-level
// error at the top and never terminates because of it; it only returns
// when ctx is canceled.
func (s *Scanner) Run(ctx context.Context, reportChan chan<- ScanReport, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		opps, err := s.Scan(ctx)
		if err != nil {
			reportChan <- ScanReport{Timestamp: time.Now(), EventType: "error", Message: err.Error()}
		} else {
			reportChan <- ScanReport{
				Timestamp:     time.Now(),
				EventType:     "scan_complete",
				Message:       "scan complete",
				Published:     len(opps),
				Opportunities: opps,
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
