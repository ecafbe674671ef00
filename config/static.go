package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"reflect"

	"github.com/creasty/defaults"
	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		Log        LogStaticCfg       `yaml:"LogConfig"`
		Protocols  ProtocolsStaticCfg `yaml:"Protocols"`
		Report     ReportStaticCfg    `yaml:"Report"`
		UserConfig UserCfgStaticCfg   `yaml:"UserConfig"`
		Version    string
	}

	//LogStaticCfg contains the configuration for logging
	LogStaticCfg struct {
		LogLevel  int    `yaml:"LogLevel" default:"2"`
		LogPath   string `yaml:"LogPath" default:"$HOME/.flowtag/logs"`
		LogToFile bool   `yaml:"LogToFile" default:"false"`
	}

	//ProtocolsStaticCfg controls where protocol number assignments come from
	ProtocolsStaticCfg struct {
		//TablePath overrides the builtin IANA table when set
		TablePath string `yaml:"TablePath" default:""`
	}

	//ReportStaticCfg controls where reports get written
	ReportStaticCfg struct {
		OutputDir string `yaml:"OutputDir" default:"result"`
	}

	//UserCfgStaticCfg contains user preferences
	UserCfgStaticCfg struct {
		UpdateCheckFrequency int `yaml:"UpdateCheckFrequency" default:"14"`
	}
)

// loadStaticConfig attempts to parse a config file
func loadStaticConfig(cfgPath string) (*StaticCfg, error) {
	var config = new(StaticCfg)
	_, err := os.Stat(cfgPath)

	if os.IsNotExist(err) {
		return config, err
	}

	cfgFile, err := ioutil.ReadFile(cfgPath)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(cfgFile, config)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %s\n", err.Error())
		return config, err
	}

	// fill in unset fields before expanding the set ones
	if err = defaults.Set(config); err != nil {
		return config, err
	}

	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	config.Version = Version
	return config, nil
}

// defaultStaticConfig builds the static config from struct tag defaults only
func defaultStaticConfig() (*StaticCfg, error) {
	var config = new(StaticCfg)
	if err := defaults.Set(config); err != nil {
		return config, err
	}
	expandConfig(reflect.ValueOf(config).Elem())
	config.Version = Version
	return config, nil
}
