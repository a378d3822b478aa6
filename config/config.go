package config

import (
	"io/ioutil"
	"os"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

// DefaultPath is where midas looks for its configuration.
const DefaultPath = "midas.yml"

type Config struct {
	Prompt   string `yaml:"Prompt"`
	ExitWord string `yaml:"ExitWord"`
	Farewell string `yaml:"Farewell"`
	LogLevel string `yaml:"LogLevel"`
	Trace    bool   `yaml:"Trace"`
}

func Default() Config {
	return Config{
		Prompt:   "midas> ",
		ExitWord: "exit",
		Farewell: "Stay gold.",
		LogLevel: "WARNING",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	c := Default()

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, tracerr.Wrap(err)
	}
	return c, nil
}

func (c Config) Save(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	return tracerr.Wrap(ioutil.WriteFile(path, out, 0644))
}
