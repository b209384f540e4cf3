package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	envFile  string
	flagOnce sync.Once
)

// MustNew loads a config struct from the environment and panics on failure.
// Intended for process bootstrap only.
func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// New populates T from environment variables carrying the given prefix.
// A .env file is exported into the environment first: either the file named
// by the -env flag, or ./.env when present.
func New[T any](prefix string) (*T, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func loadEnvFile() error {
	flagOnce.Do(func() {
		if flag.Lookup("env") == nil {
			flag.StringVar(&envFile, "env", "", "path to .env file")
		}
		if !flag.Parsed() {
			flag.Parse()
		}
	})

	path := strings.TrimSpace(envFile)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	info, err := os.Stat(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		if explicit {
			return fmt.Errorf("%s is a directory", path)
		}
		return nil
	}

	return exportEnvironment(path)
}

func exportEnvironment(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	for k, v := range viper.AllSettings() {
		if err := os.Setenv(strings.ToUpper(k), fmt.Sprint(v)); err != nil {
			return err
		}
	}
	return nil
}
