package config

import "gopkg.in/yaml.v3"

func unmarshalYAML(content []byte, cfg *GlobalConfig) error {
	return yaml.Unmarshal(content, cfg)
}
