package config

import (
	"encoding/json"
	"io/ioutil"
	"log"

	"github.com/kelseyhightower/envconfig"
)

// EnvAppName is used as a prefix for environment variable names when using
// the LoadXFromEnv funcs. It defaults to empty.
var EnvAppName = ""

// LoadEnvConfig will use envconfig to load the given config struct from the
// environment.
func LoadEnvConfig(c interface{}) {
	err := envconfig.Process(EnvAppName, c)
	if err != nil {
		log.Fatal("unable to load env variable: ", err)
	}
}

// LoadJSONFile is a helper function to read a config file into whatever
// config struct you need. For example, a custom config could be composed of
// the Metrics struct in this package plus your own settings.
func LoadJSONFile(fileName string, cfg interface{}) {
	cb, err := ioutil.ReadFile(fileName)
	if err != nil {
		log.Fatalf("Unable to read config file '%s': %s", fileName, err)
	}

	if err = json.Unmarshal(cb, &cfg); err != nil {
		log.Fatalf("Unable to parse JSON in config file '%s': %s", fileName, err)
	}
}
