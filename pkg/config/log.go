package config

import "fmt"

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (logConf LogConfig) validate() error {
	if !allowed(allowedValues("log.level"), logConf.Level) {
		return fmt.Errorf("log level should be one of %v", allowedValues("log.level"))
	}

	if !allowed(allowedValues("log.format"), logConf.Format) {
		return fmt.Errorf("log format should be one of %v", allowedValues("log.format"))
	}

	return nil
}
