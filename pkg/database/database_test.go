package database

import (
	"exam_studio_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldMigrate(t *testing.T) {
	cases := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug migrates by default", "debug", false, true},
		{"release skips by default", "release", false, false},
		{"release with flag migrates", "release", true, true},
		{"debug with flag migrates", "debug", true, true},
	}
	for _, c := range cases {
		cfg := &config.Config{
			Server:       config.ServerConfig{Mode: c.mode},
			ForceMigrate: c.force,
		}
		assert.Equal(t, c.want, ShouldMigrate(cfg), c.name)
	}
}
