package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/seabattle-go/internal/services/directory"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	for _, key := range []string{"STORAGE_TYPE", "REDIS_URL", "STATIC_DIR", "LOG_LEVEL", "HTTP_PORT", "WS_PORT"} {
		s.T().Setenv(key, "")
	}
}

func (s *ConfigSuite) writeFile(content string) string {
	path := filepath.Join(s.T().TempDir(), "seabattle.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(8181, cfg.HTTPPort)
	s.Equal(3000, cfg.WSPort)
	s.Equal(StorageMemory, cfg.Storage.Type)
	s.Equal([]directory.Credentials{{Name: "gamer", Password: "gamer"}}, cfg.SeedPlayers)

	level, err := cfg.SlogLevel()
	s.Require().NoError(err)
	s.Equal(slog.LevelInfo, level)
}

func (s *ConfigSuite) TestFileOverridesDefaults() {
	path := s.writeFile(`
http_port: 9000
log_level: debug
storage:
  type: redis
  redis_url: redis://localhost:6379/0
seed_players:
  - name: admiral
    password: anchors
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(9000, cfg.HTTPPort)
	s.Equal(3000, cfg.WSPort)
	s.Equal(StorageRedis, cfg.Storage.Type)
	s.Equal("redis://localhost:6379/0", cfg.Storage.RedisURL)
	s.Equal([]directory.Credentials{{Name: "admiral", Password: "anchors"}}, cfg.SeedPlayers)
}

func (s *ConfigSuite) TestEnvOverridesFile() {
	path := s.writeFile("http_port: 9000\nws_port: 9001\n")
	s.T().Setenv("HTTP_PORT", "8000")
	s.T().Setenv("STATIC_DIR", "/srv/front")

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(8000, cfg.HTTPPort)
	s.Equal(9001, cfg.WSPort)
	s.Equal("/srv/front", cfg.StaticDir)
}

func (s *ConfigSuite) TestInvalidSettings() {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"redis without url", map[string]string{"STORAGE_TYPE": "redis"}},
		{"unknown storage", map[string]string{"STORAGE_TYPE": "postgres"}},
		{"port not a number", map[string]string{"WS_PORT": "three thousand"}},
		{"same ports", map[string]string{"HTTP_PORT": "3000"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "chatty"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			for k, v := range tt.env {
				s.T().Setenv(k, v)
			}
			_, err := Load("")
			s.Error(err)
		})
	}
}

func (s *ConfigSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "absent.yaml"))
	s.Error(err)
}

func (s *ConfigSuite) TestMalformedFile() {
	_, err := Load(s.writeFile("http_port: [nope"))
	s.Error(err)
}
