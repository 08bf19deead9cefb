package config

import (
	"os"
	"testing"
)

var repoConfig *Config

func TestMain(m *testing.M) {
	repoConfig = MustLoadConfig("../../config.yaml")
	os.Exit(m.Run())
}
