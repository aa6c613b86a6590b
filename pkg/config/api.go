package config

import "fmt"

type APIConfig struct {
	Port int `yaml:"port"`
}

func (apiConf APIConfig) validate() error {
	if apiConf.Port <= 0 || apiConf.Port > 65535 {
		return fmt.Errorf("api port %d is invalid", apiConf.Port)
	}

	return nil
}
