package config

import "errors"

type ObjectStorageConfig struct {
	Type   string      `yaml:"type"`
	Config interface{} `yaml:"config"`
}

func (storageConf ObjectStorageConfig) validate() error {
	if storageConf.Type == "" {
		return errors.New("object_storage.type is mandatory")
	}

	return nil
}
