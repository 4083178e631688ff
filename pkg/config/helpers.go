package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/launchpad/pkg/errutils"
)

// SetValue sets a configuration value by its YAML key.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "apps_dir":
		c.Settings.AppsDir = value
	case "state_dir":
		c.Settings.StateDir = value
	case "cache_dir":
		c.Settings.CacheDir = value
	case "resources_dir":
		c.Settings.ResourcesDir = value
	case "official_source_url":
		c.Settings.OfficialSourceURL = value
	case "listen_addr":
		c.Settings.ListenAddr = value
	case "log_level":
		c.Settings.LogLevel = value
	case "log_format":
		c.Settings.LogFormat = value
	case "display_command":
		c.Settings.DisplayCommand = strings.Fields(value)
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %s", errutils.ErrValidation, key, err.Error())
		}
		c.Settings.HTTPTimeout = d
	case "skip_update_apps", "skip_splash_screen":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %s", errutils.ErrInvalidBoolValue, key, value)
		}
		if key == "skip_update_apps" {
			c.Settings.SkipUpdateApps = boolVal
		} else {
			c.Settings.SkipSplashScreen = boolVal
		}
	default:
		return fmt.Errorf("%w: %s", errutils.ErrUnknownConfigKey, key)
	}
	return nil
}

// GetValue returns a configuration value by its YAML key.
func (c *Config) GetValue(key string) (string, error) {
	m := c.ToMap()
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", errutils.ErrUnknownConfigKey, key)
	}
	return v, nil
}

// ToMap renders every setting as a string keyed by its YAML name.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		yamlKey := strings.Split(yamlTag, ",")[0]

		fieldValue := settingsValue.Field(i)
		switch v := fieldValue.Interface().(type) {
		case time.Duration:
			result[yamlKey] = v.String()
		case bool:
			result[yamlKey] = strconv.FormatBool(v)
		case []string:
			result[yamlKey] = strings.Join(v, " ")
		default:
			result[yamlKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

// Keys returns the sorted list of known setting keys.
func (c *Config) Keys() []string {
	m := c.ToMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
