package fluentsql

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Conf describes how to reach a database server. DSN, when set, overrides
// the assembled default of the selected driver.
type Conf struct {
	Type     string `yaml:"type"` // sqlite3, mysql, pgsql, ...
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DB       string `yaml:"db"`
	DSN      string `yaml:"dsn"`
}

// LoadConf reads a Conf from a YAML file.
func LoadConf(path string) (*Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var conf Conf
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}

	return &conf, nil
}

// SourceFactory constructs a ConnectionSource from a Conf. Driver packages
// register one with RegisterFactory, keyed by Conf.Type.
type SourceFactory func(conf *Conf) (ConnectionSource, error)

var registry = map[string]SourceFactory{}

func RegisterFactory(dbType string, factory SourceFactory) {
	registry[dbType] = factory
}

// OpenSource builds the ConnectionSource for conf.Type. The driver package
// for that type must have been imported so its factory is registered.
func OpenSource(conf *Conf) (ConnectionSource, error) {
	factory, ok := registry[conf.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported database type: %s", conf.Type)
	}
	return factory(conf)
}
