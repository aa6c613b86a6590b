package config

import "fmt"

type CompressionConfig struct {
	Type  string `yaml:"type"`
	Level string `yaml:"level"`
}

func (compConf CompressionConfig) validate() error {
	if !allowed(allowedValues("compression.type"), compConf.Type) {
		return fmt.Errorf("compression.type option must be one of %v", allowedValues("compression.type"))
	}

	if compConf.Level != "" && !allowed(allowedValues("compression.level"), compConf.Level) {
		return fmt.Errorf("compression.level option must be one of %v", allowedValues("compression.level"))
	}

	return nil
}
