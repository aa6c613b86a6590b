package config

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

func (traceConf TracingConfig) fillDefaultValues() TracingConfig {
	if traceConf.ServiceName == "" {
		traceConf.ServiceName = "logroller"
	}

	return traceConf
}
