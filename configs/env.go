package configs

import (
	"os"
	"strconv"
	"strings"
)

// EnvConfig holds the §6 "Environment options" — thresholds and
// secrets the YAML schema deliberately excludes from version control.
type EnvConfig struct {
	RPCURL   string
	MySQLDSN string

	AggregatorAPIKey string
	BearerToken      string

	MEVBufferBps   int64
	MinProfitUSD   float64
	MinROIBps      float64
	ETHUSD         float64
	AlertCooldownS int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPTo       []string

	RedisAddr string
}

// LoadEnvConfig reads the recognized environment keys, applying the
// §4.5/§6 defaults when unset: MEV_BUFFER_BPS=5, MIN_PROFIT_USD=1.0,
// MIN_ROI_BPS=5, ALERT_COOLDOWN_S=60, ETH_USD=0 (disables gas pricing).
func LoadEnvConfig() EnvConfig {
	return EnvConfig{
		RPCURL:           os.Getenv("RPC_URL"),
		MySQLDSN:         os.Getenv("MYSQL_DSN"),
		AggregatorAPIKey: os.Getenv("AGGREGATOR_API_KEY"),
		BearerToken:      os.Getenv("BEARER_TOKEN"),

		MEVBufferBps:   envInt64("MEV_BUFFER_BPS", 5),
		MinProfitUSD:   envFloat("MIN_PROFIT_USD", 1.0),
		MinROIBps:      envFloat("MIN_ROI_BPS", 5),
		ETHUSD:         envFloat("ETH_USD", 0),
		AlertCooldownS: int(envInt64("ALERT_COOLDOWN_S", 60)),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		SMTPTo:       splitNonEmpty(os.Getenv("SMTP_TO"), ','),

		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitNonEmpty(s string, sep rune) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == sep }) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
