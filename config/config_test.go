package config

import (
	"io/ioutil"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestStruct struct {
	InertString       string
	ExpandString      string
	ExpandStringSlice []string
	Inner             TestStructInner
}

type TestStructInner struct {
	InertString       string
	ExpandString      string
	ExpandStringSlice []string
}

func TestExpandConfig(t *testing.T) {
	inert := "DO_NOT_CHANGE"
	outerEnvVarName := "_OUTER_ENV_VAR"
	outerEnvVarValue := "OUTER_VALUE"
	innerEnvVarName := "_INNER_ENV_VAR"
	innerEnvVarValue := "INNER_VALUE"
	test := TestStruct{
		InertString:       inert,
		ExpandString:      "$" + outerEnvVarName,
		ExpandStringSlice: []string{"$" + outerEnvVarName, inert},
	}
	innerStruct := TestStructInner{
		InertString:       inert,
		ExpandString:      "$" + innerEnvVarName,
		ExpandStringSlice: []string{"$" + innerEnvVarName, inert},
	}
	test.Inner = innerStruct

	os.Setenv(outerEnvVarName, outerEnvVarValue)
	os.Setenv(innerEnvVarName, innerEnvVarValue)
	assert.Equal(t, outerEnvVarValue, os.ExpandEnv("$"+outerEnvVarName))
	assert.Equal(t, innerEnvVarValue, os.ExpandEnv("$"+innerEnvVarName))
	expandConfig(reflect.ValueOf(&test).Elem())

	assert.Equal(t, inert, test.InertString)
	assert.Equal(t, outerEnvVarValue, test.ExpandString)
	assert.Equal(t, innerEnvVarValue, test.Inner.ExpandString)
	os.Unsetenv(outerEnvVarName)
	os.Unsetenv(innerEnvVarName)
}

func TestDefaultStaticConfig(t *testing.T) {
	static, err := defaultStaticConfig()
	require.Nil(t, err)

	assert.Equal(t, 2, static.Log.LogLevel)
	assert.Equal(t, "result", static.Report.OutputDir)
	assert.Equal(t, 14, static.UserConfig.UpdateCheckFrequency)
	assert.Equal(t, "", static.Protocols.TablePath)
}

func TestLoadStaticConfigOverridesDefaults(t *testing.T) {
	cfgFile, err := ioutil.TempFile("", "flowtag-config")
	require.Nil(t, err)
	defer os.Remove(cfgFile.Name())

	cfgYaml := "LogConfig:\n  LogLevel: 3\nReport:\n  OutputDir: /tmp/reports\n"
	_, err = cfgFile.WriteString(cfgYaml)
	require.Nil(t, err)
	cfgFile.Close()

	static, err := loadStaticConfig(cfgFile.Name())
	require.Nil(t, err)

	assert.Equal(t, 3, static.Log.LogLevel)
	assert.Equal(t, "/tmp/reports", static.Report.OutputDir)
	// untouched sections still pick up their defaults
	assert.Equal(t, 14, static.UserConfig.UpdateCheckFrequency)
}

func TestGetConfigMissingExplicitPath(t *testing.T) {
	_, err := GetConfig("./.does-not-exist-3290ur")
	assert.NotNil(t, err)
}
