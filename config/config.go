package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	Env               string
	LogLevel          string
	DBUrl             string
	JWTSecret         string
	AllowedOrigin     string
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// External services
	PincodeAPIBaseURL  string
	PhoneVerifyURL     string
	RazorpayKeyID      string
	RazorpayKeySecret  string
	RazorpayBaseURL    string
	ExternalAPITimeout time.Duration
	// R2 Storage (payment incident archive)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	R2UploadTimeout   time.Duration
	// Cache
	SessionTTL time.Duration
	PincodeTTL time.Duration
	// Business rules
	Currency              string
	FreeShippingThreshold float64
	FlatShippingFee       float64
	TaxRate               float64
	DeliveryDays          int
	LookupQuietPeriod     time.Duration
	SubmitPacingDelay     time.Duration
}

func LoadConfig() *Config {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// In docker/prod envs .env may not exist; rely on system env vars.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBUrl:         getEnv("DB_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		PincodeAPIBaseURL:  getEnv("PINCODE_API_BASE_URL", "https://api.postalpincode.in"),
		PhoneVerifyURL:     getEnv("PHONE_VERIFY_URL", ""),
		RazorpayKeyID:      getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:  getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayBaseURL:    getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		ExternalAPITimeout: getDurationEnv("EXTERNAL_API_TIMEOUT", 10*time.Second),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2UploadTimeout:   getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),

		// Session defaults: 30m checkout window, 1h pincode cache
		SessionTTL: getDurationEnv("SESSION_TTL", 30*time.Minute),
		PincodeTTL: getDurationEnv("PINCODE_CACHE_TTL", time.Hour),

		// Business rules: free shipping above 50, 8% tax, 7-day delivery
		Currency:              getEnv("CURRENCY", "INR"),
		FreeShippingThreshold: getFloat64Env("FREE_SHIPPING_THRESHOLD", 50),
		FlatShippingFee:       getFloat64Env("FLAT_SHIPPING_FEE", 9.99),
		TaxRate:               getFloat64Env("TAX_RATE", 0.08),
		DeliveryDays:          getIntEnv("DELIVERY_DAYS", 7),
		LookupQuietPeriod:     getDurationEnv("LOOKUP_QUIET_PERIOD", 500*time.Millisecond),
		SubmitPacingDelay:     getDurationEnv("SUBMIT_PACING_DELAY", 350*time.Millisecond),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.DBUrl == "" {
		log.Fatal("CRITICAL: DB_DSN environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
		log.Println("WARNING: Razorpay credentials missing; online payment will be unavailable.")
	}
	if c.PhoneVerifyURL == "" {
		log.Fatal("CRITICAL: PHONE_VERIFY_URL is required")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getFloat64Env(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}
