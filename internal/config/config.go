// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config Type

// Names searched for in each config directory, in order.
var fileNames = []string{"todoctl.yaml", "todoctl.yml", "todoctl.toml"}

func init() {
	_, _ = Load()
}

// Load reads the config file named by TODOCTL_CFG or, when unset, the first
// todoctl.yaml or todoctl.toml found in XDG_CONFIG_HOME, APPDATA or HOME.
// An explicit path overrides both.
func Load(cfgFilePath ...string) (Type, error) {
	var path string
	var err error
	if len(cfgFilePath) == 1 && cfgFilePath[0] != "" {
		path = cfgFilePath[0]
	} else if path, err = getConfigPath(); err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	data, err := decode(path, bytes)
	if err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source: path,
		Data:   data}

	return Config, nil
}

func decode(path string, bytes []byte) (map[string]interface{}, error) {
	var data map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(bytes, &data); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(bytes, &data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// get traverses the map using a dotted key path. The namespaced key is tried
// before the bare one.
func (cfg *Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data

		success := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[part]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

func lazy() {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
}

func GetString(key string, defaultValue ...string) (string, error) {
	lazy()

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

func GetInt(key string, defaultValue ...int) (int, error) {
	lazy()

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML and TOML decode numbers as int, int64 or float64.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

func GetBool(key string, defaultValue ...bool) (bool, error) {
	lazy()

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, errors.New("value is not a bool")
	}
	return b, nil
}

// GetStringSlice accepts either a list of strings or a single string.
func GetStringSlice(key string) ([]string, error) {
	lazy()

	val, err := Config.get(key)
	if err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%s: element %v is not a string", key, e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.New("value is not a string list")
	}
}

func getConfigPath() (string, error) {
	if p, ok := os.LookupEnv("TODOCTL_CFG"); ok && p != "" {
		fi, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", p)
		}
		if fi.IsDir() {
			return "", fmt.Errorf("TODOCTL_CFG points to a directory: %s", p)
		}
		log.Debugf("using config file from TODOCTL_CFG: %s", p)
		return p, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		for _, name := range fileNames {
			file := filepath.Join(c, name)
			if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
