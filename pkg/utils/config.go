package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Fraud    FraudConfig
	Gateway  GatewayConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Push     PushConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// FraudConfig holds the thresholds for the fraud signal rules. They are
// tunable, not business law.
type FraudConfig struct {
	CancellationThreshold     int
	CancellationWindow        time.Duration
	BookingFrequencyThreshold int
	BookingFrequencyWindow    time.Duration
	LocationChangeKm          float64
	PaymentChangeThreshold    int
	PaymentChangeWindow       time.Duration
}

type GatewayConfig struct {
	BaseURL       string
	APIKey        string
	APISecret     string
	WebhookSecret string
	ReturnURL     string
	NotifyURL     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	RateLimitEnabled  bool
	RateLimitCapacity int
	RateLimitRefill   int
	RateLimitInterval time.Duration
}

type QueueConfig struct {
	URL      string
	Exchange string
	Queue    string
}

type PushConfig struct {
	Endpoint string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("FRAUD_CANCELLATION_THRESHOLD", 3)
	viper.SetDefault("FRAUD_CANCELLATION_WINDOW_HOURS", 24)
	viper.SetDefault("FRAUD_BOOKING_FREQUENCY_THRESHOLD", 5)
	viper.SetDefault("FRAUD_BOOKING_FREQUENCY_WINDOW_MINUTES", 60)
	viper.SetDefault("FRAUD_LOCATION_CHANGE_KM", 50)
	viper.SetDefault("FRAUD_PAYMENT_CHANGE_THRESHOLD", 3)
	viper.SetDefault("FRAUD_PAYMENT_CHANGE_WINDOW_HOURS", 24)
	viper.SetDefault("GATEWAY_BASE_URL", "https://sandbox.cashfree.com/pg")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_CAPACITY", 10)
	viper.SetDefault("RATE_LIMIT_REFILL", 1)
	viper.SetDefault("RATE_LIMIT_INTERVAL_SECONDS", 6)
	viper.SetDefault("AMQP_EXCHANGE", "tasktakr.events")
	viper.SetDefault("AMQP_QUEUE", "tasktakr.notifications")
	viper.SetDefault("PUSH_ENDPOINT", "https://exp.host/--/api/v2/push/send")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Fraud: FraudConfig{
			CancellationThreshold:     viper.GetInt("FRAUD_CANCELLATION_THRESHOLD"),
			CancellationWindow:        time.Duration(viper.GetInt("FRAUD_CANCELLATION_WINDOW_HOURS")) * time.Hour,
			BookingFrequencyThreshold: viper.GetInt("FRAUD_BOOKING_FREQUENCY_THRESHOLD"),
			BookingFrequencyWindow:    time.Duration(viper.GetInt("FRAUD_BOOKING_FREQUENCY_WINDOW_MINUTES")) * time.Minute,
			LocationChangeKm:          viper.GetFloat64("FRAUD_LOCATION_CHANGE_KM"),
			PaymentChangeThreshold:    viper.GetInt("FRAUD_PAYMENT_CHANGE_THRESHOLD"),
			PaymentChangeWindow:       time.Duration(viper.GetInt("FRAUD_PAYMENT_CHANGE_WINDOW_HOURS")) * time.Hour,
		},
		Gateway: GatewayConfig{
			BaseURL:       viper.GetString("GATEWAY_BASE_URL"),
			APIKey:        viper.GetString("GATEWAY_API_KEY"),
			APISecret:     viper.GetString("GATEWAY_API_SECRET"),
			WebhookSecret: viper.GetString("GATEWAY_WEBHOOK_SECRET"),
			ReturnURL:     viper.GetString("GATEWAY_RETURN_URL"),
			NotifyURL:     viper.GetString("GATEWAY_NOTIFY_URL"),
		},
		Redis: RedisConfig{
			Addr:              viper.GetString("REDIS_ADDR"),
			Password:          viper.GetString("REDIS_PASSWORD"),
			DB:                viper.GetInt("REDIS_DB"),
			RateLimitEnabled:  viper.GetBool("RATE_LIMIT_ENABLED"),
			RateLimitCapacity: viper.GetInt("RATE_LIMIT_CAPACITY"),
			RateLimitRefill:   viper.GetInt("RATE_LIMIT_REFILL"),
			RateLimitInterval: time.Duration(viper.GetInt("RATE_LIMIT_INTERVAL_SECONDS")) * time.Second,
		},
		Queue: QueueConfig{
			URL:      viper.GetString("AMQP_URL"),
			Exchange: viper.GetString("AMQP_EXCHANGE"),
			Queue:    viper.GetString("AMQP_QUEUE"),
		},
		Push: PushConfig{
			Endpoint: viper.GetString("PUSH_ENDPOINT"),
		},
	}

	return config, nil
}
