package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullConfig(t *testing.T) {
	input := `// offshoot configuration
settings {
    default-assistant "claude"
    state-dir "/var/tmp/offshoot"
    poll-interval 250
}

assistants {
    claude {
        command "claude"
        args "--print" "--verbose" "--output-format" "stream-json"
        env {
            NO_COLOR "1"
        }
    }
    gemini {
        command "gemini"
        args "--prompt-interactive=false"
        cwd "/work"
    }
}
`

	cfg, err := Parse(nil, input)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/var/tmp/offshoot", cfg.Settings.StateDir)
	assert.Equal(t, 250*time.Millisecond, cfg.Settings.PollInterval)
	assert.Equal(t, "claude", cfg.Settings.DefaultAssistant)

	require.Len(t, cfg.Assistants, 2)

	claude, ok := cfg.Assistants["claude"]
	require.True(t, ok, "should have 'claude' assistant")
	assert.Equal(t, "claude", claude.Command)
	assert.Equal(t, []string{"--print", "--verbose", "--output-format", "stream-json"}, claude.Args)
	assert.Equal(t, "1", claude.Env["NO_COLOR"])

	gemini, ok := cfg.Assistants["gemini"]
	require.True(t, ok, "should have 'gemini' assistant")
	assert.Equal(t, "/work", gemini.Cwd)
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.Settings.DefaultAssistant)
	assert.Equal(t, 500*time.Millisecond, cfg.Settings.PollInterval)

	claude, ok := cfg.Assistants["claude"]
	require.True(t, ok, "defaults should carry a claude profile")
	assert.Contains(t, claude.Args, "--print")
	assert.Contains(t, claude.Args, "stream-json")
}

func TestParseOverridesProfileByName(t *testing.T) {
	cfg, err := Parse(nil, `
assistants {
    claude {
        command "/opt/claude/bin/claude"
        args "--print"
    }
}
`)
	require.NoError(t, err)

	claude := cfg.Assistants["claude"]
	require.NotNil(t, claude)
	assert.Equal(t, "/opt/claude/bin/claude", claude.Command)
	assert.Equal(t, []string{"--print"}, claude.Args, "project profile replaces the default wholesale")
}

func TestLoadProjectOverridesGlobal(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	globalDir := filepath.Join(configHome, "offshoot")
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, GlobalConfigFile), []byte(`
settings {
    default-assistant "gemini"
    poll-interval 100
}
assistants {
    gemini {
        command "gemini"
    }
}
`), 0644))

	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, ProjectConfigFile), []byte(`
settings {
    default-assistant "claude"
}
`), 0644))

	cfg, err := Load(projectDir)
	require.NoError(t, err)

	// Project wins where it speaks, global fills the rest.
	assert.Equal(t, "claude", cfg.Settings.DefaultAssistant)
	assert.Equal(t, 100*time.Millisecond, cfg.Settings.PollInterval)
	assert.Contains(t, cfg.Assistants, "gemini")
}

func TestLoadMissingFilesUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.Settings.DefaultAssistant)
}

func TestProfileLookup(t *testing.T) {
	cfg := DefaultConfig()

	p, err := cfg.Profile("")
	require.NoError(t, err)
	assert.Equal(t, "claude", p.Name)
	assert.Equal(t, "claude", p.Command)

	_, err = cfg.Profile("nonexistent")
	assert.Error(t, err)
}
