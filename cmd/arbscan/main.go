package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"arbscan"
	"arbscan/configs"
	"arbscan/internal/aggregator"
	"arbscan/internal/alert"
	"arbscan/internal/cooldown"
	"arbscan/internal/db"
	"arbscan/internal/health"
	"arbscan/internal/metrics"
	"arbscan/internal/router"
)

func main() {
	_ = godotenv.Load()

	env := configs.LoadEnvConfig()
	if env.RPCURL == "" {
		panic("RPC_URL not set")
	}

	cfg, err := configs.LoadConfig("configs/config.yml")
	if err != nil {
		panic(err)
	}

	client, err := ethclient.Dial(env.RPCURL)
	if err != nil {
		panic(err)
	}

	tokens, err := cfg.ToTokens()
	if err != nil {
		panic(err)
	}
	pairs, err := cfg.ToPairs(tokens)
	if err != nil {
		panic(err)
	}
	sizes, err := cfg.ToSizes()
	if err != nil {
		panic(err)
	}

	routerAddr, err := cfg.RouterAddress()
	if err != nil {
		panic(err)
	}
	factoryAddr, err := cfg.FactoryAddress()
	if err != nil {
		panic(err)
	}
	routerAdapter, err := router.NewAdapter(client, routerAddr, factoryAddr, cfg.Router.StableDefault)
	if err != nil {
		panic(err)
	}

	aggregators := make(map[string]arbscan.QuoteAdapter, len(cfg.Sources)+1)
	for _, src := range cfg.Sources {
		aggregators[src] = aggregator.NewAdapter(cfg.Aggregator.BaseURL, env.AggregatorAPIKey, env.BearerToken, src)
	}

	// scanSources drives route enumeration; it starts from the
	// configured aggregator sources and gains the Aerodrome quote-API
	// venue too, when configured, so that venue actually participates
	// in scans rather than sitting wired but unreachable.
	scanSources := cfg.Sources
	const aerodromeAPISource = "Aerodrome_API"
	if cfg.AerodromeAPI.BaseURL != "" {
		decimals := make(map[common.Address]int, len(tokens))
		for _, tok := range tokens {
			decimals[tok.Address] = tok.Decimals
		}
		aggregators[aerodromeAPISource] = aggregator.NewAerodromeAPIAdapter(cfg.AerodromeAPI.BaseURL, decimals)
		scanSources = append(scanSources, aerodromeAPISource)
	}

	var sink arbscan.Sink = arbscan.NoopSink{}
	if env.MySQLDSN != "" {
		mysqlSink, err := db.NewMySQLSink(env.MySQLDSN)
		if err != nil {
			panic(err)
		}
		sink = mysqlSink
	}

	var alerter arbscan.Alerter = arbscan.NoopAlerter{}
	if env.SMTPHost != "" && len(env.SMTPTo) > 0 {
		alerter = alert.NewSMTPAlerter(env.SMTPHost, env.SMTPPort, env.SMTPUsername, env.SMTPPassword, env.SMTPFrom, env.SMTPTo)
	}

	var backstop arbscan.Backstop
	if env.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
		backstop = cooldown.NewRedisBackstop(redisClient, "arbscan:cooldown:")
	}

	cd := arbscan.NewCooldown(time.Duration(env.AlertCooldownS)*time.Second, backstop)
	model := arbscan.NewProfitModel(env.MEVBufferBps, env.MinProfitUSD, env.MinROIBps, 1.0, env.ETHUSD)

	reg := prometheus.NewRegistry()
	scanMetrics := metrics.NewRegistry(reg)
	checker := &health.Checker{}

	scanner := &arbscan.Scanner{
		ChainID:     cfg.ChainID,
		Pairs:       pairs,
		Sizes:       sizes,
		Sources:     scanSources,
		Aggregators: aggregators,
		Router:      routerAdapter,
		Model:       model,
		Cooldown:    cd,
		Sink:        sink,
		Alerter:     alerter,
		Concurrency: 8,
		Metrics:     scanMetrics,
	}

	mux := http.NewServeMux()
	mux.Handle("/health", checker.Handler())
	mux.Handle("/metrics", metrics.Handler(reg))
	go func() {
		if err := http.ListenAndServe(":8080", mux); err != nil {
			log.Printf("arbscan: http server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reportChan := make(chan arbscan.ScanReport, 100)
	go func() {
		if err := scanner.Run(ctx, reportChan, time.Second); err != nil {
			log.Printf("arbscan: scan loop stopped: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case report := <-reportChan:
			switch report.EventType {
			case "scan_complete":
				checker.MarkReady()
				if report.Published > 0 {
					fmt.Printf("✓ scan complete: %d opportunities published\n", report.Published)
				}
			case "error":
				log.Printf("arbscan: scan error: %s", report.Message)
			}
		}
	}
}
