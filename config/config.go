package config

import (
	"fmt"
	"os"
	"os/user"
	"reflect"
)

// Version is filled at compile time with the git version of flowtag
var Version = "undefined"

type (
	//Config holds the configuration for the running system
	Config struct {
		S StaticCfg
	}
)

// GetConfig retrieves a configuration in order of precedence: an explicit
// path, the user config, the system config, and finally builtin defaults
// when no file exists anywhere.
func GetConfig(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		return loadSystemConfig(cfgPath)
	}

	user, err := user.Current()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not get user info: %s\n", err.Error())
	} else if exists(user.HomeDir + "/.flowtag/config.yaml") {
		return loadSystemConfig(user.HomeDir + "/.flowtag/config.yaml")
	}

	if exists("/etc/flowtag/config.yaml") {
		return loadSystemConfig("/etc/flowtag/config.yaml")
	}

	return defaultConfig()
}

// loadSystemConfig attempts to parse a config file
func loadSystemConfig(cfgPath string) (*Config, error) {
	var config = new(Config)
	static, err := loadStaticConfig(cfgPath)
	if err != nil {
		return config, err
	}
	config.S = *static
	return config, nil
}

// defaultConfig builds a config entirely from struct defaults
func defaultConfig() (*Config, error) {
	var config = new(Config)
	static, err := defaultStaticConfig()
	if err != nil {
		return config, err
	}
	config.S = *static
	return config, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}
