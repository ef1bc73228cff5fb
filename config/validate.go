package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/teranos/sketchflow/errors"
)

var structValidator = newValidator()

// newValidator reports fields by their config key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Limits: both must admit at least one level and one node
	if c.Limits.MaxDepth < 1 {
		return errors.Newf("limits.max_depth must be >= 1, got %d", c.Limits.MaxDepth)
	}
	if c.Limits.MaxNodes < 1 {
		return errors.Newf("limits.max_nodes must be >= 1, got %d", c.Limits.MaxNodes)
	}

	// Rate limit: 0 = unlimited, negative = invalid
	if c.Server.RatePerMinute < 0 {
		return errors.Newf("server.rate_per_minute must be >= 0, got %d", c.Server.RatePerMinute)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.Newf("server.max_body_bytes must be > 0, got %d", c.Server.MaxBodyBytes)
	}

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	if c.Generate.Layout != "" && c.Layout.Engine != "" && c.Generate.Layout != c.Layout.Engine {
		return errors.Newf("generate.layout (%s) and layout.engine (%s) disagree", c.Generate.Layout, c.Layout.Engine)
	}

	if _, err := SplitOptionString(c.AdapterOptions); err != nil {
		return errors.Wrap(err, "adapter_options")
	}

	if err := structValidator.Struct(c); err != nil {
		return errors.Newf("invalid config: %s", describe(err))
	}
	return nil
}

// describe renders validator failures with their config keys
// ("server.addr failed hostname_port").
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		_, key, _ := strings.Cut(fe.Namespace(), ".")
		msgs[i] = key + " failed " + fe.Tag()
	}
	return strings.Join(msgs, ", ")
}
