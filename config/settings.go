package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Settings struct {
	Port      string
	AppEnv    string
	DBURL     string
	DBPool    PoolSettings
	JWTSecret string

	CORSAllowedOrigins []string

	// BookingBaseURL is the public booking form the rendered messages link to.
	BookingBaseURL string
	Location       *time.Location
	// ReminderCron enables the daily run when non-empty, e.g. "0 9 * * *".
	ReminderCron     string
	MonthScanWorkers int

	Gateway string
	Twilio  TwilioSettings
}

type PoolSettings struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type TwilioSettings struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

// Load reads settings from the environment, loading a .env file first when
// one exists.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	tz := getenv("TIMEZONE", "Asia/Tokyo")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn().Err(err).Str("timezone", tz).Msg("unknown timezone, falling back to UTC")
		loc = time.UTC
	}

	return Settings{
		Port:      getenv("PORT", "8080"),
		AppEnv:    getenv("APP_ENV", "production"),
		DBURL:     os.Getenv("DB_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		DBPool: PoolSettings{
			MaxIdleConns:    readInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    readInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: time.Duration(readInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		},
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		BookingBaseURL:     getenv("BOOKING_BASE_URL", "https://booking.example.jp/public/reservations/new"),
		Location:           loc,
		ReminderCron:       os.Getenv("REMINDER_CRON"),
		MonthScanWorkers:   readInt("MONTH_SCAN_WORKERS", 4),
		Gateway:            getenv("GATEWAY", "log"),
		Twilio: TwilioSettings{
			AccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
			PhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
			WhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
