package config

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// ParseOverrides splits "key=value" pairs into a map. Keys are lowercased.
func ParseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errors.Errorf("expected key=value, got %q", pair)
		}
		out[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return out, nil
}

// ApplyOverrides decodes string values such as {"k1": "-0.1"} onto the distortion
// coefficients. Unknown keys are an error and the config is left untouched on failure.
func (c *Config) ApplyOverrides(overrides map[string]string) error {
	if len(overrides) == 0 {
		return nil
	}
	updated := c.Distortion
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &updated,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(overrides); err != nil {
		return errors.Wrap(err, "invalid distortion override")
	}
	if err := updated.CheckValid(); err != nil {
		return err
	}
	c.Distortion = updated
	return nil
}
