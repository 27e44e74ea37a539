package commands

import (
	"sync"
)

// ConfigPersister serializes read-modify-write cycles on the config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateToken stores token in the config file. An empty token removes it.
func (p *ConfigPersister) UpdateToken(token string) error {
	return p.update(func(config *Config) {
		config.Token = token
	})
}

// UpdateBaseURL stores the API root used at login. An empty value removes it.
func (p *ConfigPersister) UpdateBaseURL(baseURL string) error {
	return p.update(func(config *Config) {
		config.BaseURL = baseURL
	})
}

func (p *ConfigPersister) update(apply func(config *Config)) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := loadConfig()
	if err != nil {
		return err
	}

	apply(config)

	return saveConfigStruct(config)
}
