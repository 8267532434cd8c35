package server

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	// port the HTTP server listens on.
	ServerPort string `yaml:"port"`

	// connection string of the postgres database.
	DBURI string `yaml:"dburi"`

	// per-subscription event buffer. 0 means the built-in default.
	SubscriptionBuffer int `yaml:"subscriptionBuffer,omitempty"`
}

func LoadServerConfig(filepath string) (*ServerConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*ServerConfig, error) {
	var out ServerConfig
	err := yaml.Unmarshal(conf, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
