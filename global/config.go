package global

import (
	"crypto/ed25519"
	"os"

	"github.com/go-redis/redis_rate/v10"
	"gopkg.in/yaml.v3"
)

// Conf global config
var Conf Config

// Session signing key pair of the server (loaded from serverKeysPath in conf.yaml)
var PublicKey ed25519.PublicKey
var PrivateKey ed25519.PrivateKey
var SessionKeysCreated int64

// Global rate limiter
var RateLimiter *redis_rate.Limiter

type Config struct {
	Host       string           `yaml:"host"`
	Port       int              `yaml:"port"`
	Scheme     string           `yaml:"scheme"`
	Mode       string           `yaml:"mode"`
	Version    string           `yaml:"version"`
	Cors       CorsConfig       `yaml:"cors"`
	CouchDB    CouchDBConfig    `yaml:"couchdb"`
	Redis      RedisConfig      `yaml:"redis"`
	Esign      EsignConfig      `yaml:"esign"`
	Session    SessionConfig    `yaml:"session"`
	Prometheus PrometheusConfig `yaml:"prometheus"`
}

type CorsConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// CouchDBConfig points at the host platforms user directory
type CouchDBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Scheme   string `yaml:"scheme"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// EsignConfig configures the e-signature provider integration
type EsignConfig struct {
	BasePath       string `yaml:"basePath"`
	AccountID      string `yaml:"accountId"`
	IntegrationKey string `yaml:"integrationKey"`
	UserID         string `yaml:"userId"`
	AuthServer     string `yaml:"authServer"`
	PrivateKeyPath string `yaml:"privateKeyPath"`
	// the provider issues tokens valid for tokenExpirySeconds; the cache
	// holds them for the shorter tokenCacheSeconds so a cached token is
	// never served past its real expiry
	TokenExpirySeconds int    `yaml:"tokenExpirySeconds"`
	TokenCacheSeconds  int    `yaml:"tokenCacheSeconds"`
	ReturnURL          string `yaml:"returnUrl"`
	EmailSubject       string `yaml:"emailSubject"`
}

type SessionConfig struct {
	ServerKeysPath string `yaml:"serverKeysPath"`
	CookieName     string `yaml:"cookieName"`
	DurationHours  int    `yaml:"durationHours"`
	Secure         bool   `yaml:"secure"`
}

type PrometheusConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoadConfig reads the yaml configuration file into Conf and fills in
// defaults for optional values
func LoadConfig(path string) error {
	confBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if uErr := yaml.Unmarshal(confBytes, &Conf); uErr != nil {
		return uErr
	}
	if Conf.Esign.TokenExpirySeconds == 0 {
		Conf.Esign.TokenExpirySeconds = 3600
	}
	if Conf.Esign.TokenCacheSeconds == 0 {
		Conf.Esign.TokenCacheSeconds = 3300
	}
	if Conf.Esign.EmailSubject == "" {
		Conf.Esign.EmailSubject = "Please sign this document"
	}
	if Conf.Session.CookieName == "" {
		Conf.Session.CookieName = "signit_session"
	}
	if Conf.Session.DurationHours == 0 {
		Conf.Session.DurationHours = 24
	}
	return nil
}
