package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	PGHost       string
	PGUser       string
	PGDBName     string
	PGPassword   string
	PGPort       string
	JwtSecretKey string
	ServiceName  string

	ElasticAPMServerURL   string
	ElasticAPMServiceName string
	ElasticAPMEnvironment string

	NatsURL string

	OTPExpireMinutes int
	OTPMaxAttempts   int

	QuotaTickSeconds    int
	VoucherSweepSeconds int

	SMSUsername string
	SMSAPIKey   string
	SMSSenderID string
	SMSEndpoint string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
	}

	config := &Config{
		PGHost:       os.Getenv("PG_HOST"),
		PGUser:       os.Getenv("PG_USER"),
		PGDBName:     os.Getenv("PG_DBNAME"),
		PGPassword:   os.Getenv("PG_PASSWORD"),
		PGPort:       os.Getenv("PG_PORT"),
		JwtSecretKey: os.Getenv("JwtSecretKey"),
		ServiceName:  os.Getenv("SERVICE_NAME"),

		ElasticAPMServerURL:   os.Getenv("ELASTIC_APM_SERVER_URL"),
		ElasticAPMServiceName: os.Getenv("ELASTIC_APM_SERVICE_NAME"),
		ElasticAPMEnvironment: os.Getenv("ELASTIC_APM_ENVIRONMENT"),

		NatsURL: os.Getenv("NATS_URL"),

		OTPExpireMinutes: envInt("OTP_EXPIRE_MINUTES", 5),
		OTPMaxAttempts:   envInt("OTP_MAX_ATTEMPTS", 5),

		QuotaTickSeconds:    envInt("QUOTA_TICK_SECONDS", 1),
		VoucherSweepSeconds: envInt("VOUCHER_SWEEP_SECONDS", 60),

		SMSUsername: os.Getenv("SMS_USERNAME"),
		SMSAPIKey:   os.Getenv("SMS_API_KEY"),
		SMSSenderID: os.Getenv("SMS_SENDER_ID"),
		SMSEndpoint: os.Getenv("SMS_ENDPOINT"),
	}

	return config, nil
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
