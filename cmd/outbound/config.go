package main

import (
	"os"

	"gopkg.in/yaml.v3"

	cacherules "github.com/outbound-dev/outbound/pkg/cache-rules"
)

type Config struct {
	Charset string           `yaml:"charset"`
	Rules   cacherules.Rules `yaml:"rules"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}
