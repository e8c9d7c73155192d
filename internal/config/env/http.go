package env

import (
	"net"
	"os"
	"redblack/internal/config"
)

const (
	httpHostEnvName    = "HTTP_HOST"
	httpPortEnvName    = "HTTP_PORT"
	metricsPortEnvName = "METRICS_PORT"
)

type httpConfig struct {
	host        string
	port        string
	metricsPort string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	return &httpConfig{
		host:        getEnv(httpHostEnvName, ""),
		port:        getEnv(httpPortEnvName, "8080"),
		metricsPort: getEnv(metricsPortEnvName, "9095"),
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}

func (cfg *httpConfig) MetricsAddress() string {
	return net.JoinHostPort(cfg.host, cfg.metricsPort)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
