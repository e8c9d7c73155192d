package env

import "redblack/internal/config"

type logConfig struct {
	serviceName string
	env         string
}

func NewLogConfig() config.LogConfig {
	return &logConfig{
		serviceName: getEnv("SERVICE_NAME", "redblack"),
		env:         getEnv("ENV", "local"),
	}
}

func (l *logConfig) ServiceName() string { return l.serviceName }
func (l *logConfig) Env() string         { return l.env }
