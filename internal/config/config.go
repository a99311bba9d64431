package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Server struct {
	Port           int
	DatabaseURL    string
	JWTSecret      []byte
	RefreshSecret  []byte
	KafkaBrokers   []string
	DocumentSvcURL string
	LogLevel       string
}

type Portal struct {
	APIBaseURL string
	StatePath  string
	LogLevel   string
}

func LoadServer() Server {
	loadDotenv()
	return Server{
		Port:           EnvIntDefault("SERVER_PORT", 8090),
		DatabaseURL:    EnvDefault("DATABASE_URL", "portal.db"),
		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		RefreshSecret:  []byte(os.Getenv("REFRESH_SECRET")),
		KafkaBrokers:   CSV(os.Getenv("KAFKA_BROKERS")),
		DocumentSvcURL: os.Getenv("DOCUMENT_SERVICE_URL"),
		LogLevel:       EnvDefault("LOG_LEVEL", "info"),
	}
}

func LoadPortal() Portal {
	loadDotenv()
	return Portal{
		APIBaseURL: EnvDefault("API_BASE_URL", "http://localhost:8090/api"),
		StatePath:  EnvDefault("PORTAL_STATE_PATH", "portal-state.db"),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),
	}
}

func loadDotenv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not loaded: %v, using process environment", err)
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
