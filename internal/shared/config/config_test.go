package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "LLM_PROVIDER", "LLM_MODEL", "SPELL_CHECK_MODEL", "CHUNK_SIZE", "CHUNK_OVERLAP", "REVIEWER_FEEDBACK", "SPELL_CHECK"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("provider = %q", cfg.LLMProvider)
	}
	if cfg.LLMModel != "gpt-4.1-mini" || cfg.SpellCheckModel != "gpt-4.1-nano" {
		t.Fatalf("models = %q / %q", cfg.LLMModel, cfg.SpellCheckModel)
	}
	if cfg.ChunkSize != 6000 || cfg.ChunkOverlap != 600 {
		t.Fatalf("chunking = %d / %d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.SpellCheckEnabled || cfg.ReviewerFeedback {
		t.Fatal("optional stages should default off")
	}
}

func TestNormalizeProvider(t *testing.T) {
	cases := map[string]string{
		"openai":    "openai",
		"Anthropic": "anthropic",
		"LOCAL":     "local",
		"bogus":     "openai",
		"":          "openai",
	}
	for in, want := range cases {
		if got := normalizeProvider(in); got != want {
			t.Errorf("normalizeProvider(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetEnvIntRejectsInvalid(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")
	if got := getEnvInt("CHUNK_SIZE", 6000); got != 6000 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("CHUNK_SIZE", "-5")
	if got := getEnvInt("CHUNK_SIZE", 6000); got != 6000 {
		t.Fatalf("got %d", got)
	}
}

func TestLoadEnvFilesDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nexport FILE_ONLY_KEY=\"from-file\"\nPRESET_KEY=from-file\nmalformed line\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("PRESET_KEY", "from-env")
	os.Unsetenv("FILE_ONLY_KEY")
	t.Cleanup(func() { os.Unsetenv("FILE_ONLY_KEY") })

	loadEnvFiles(path)

	if got := os.Getenv("FILE_ONLY_KEY"); got != "from-file" {
		t.Fatalf("FILE_ONLY_KEY = %q", got)
	}
	if got := os.Getenv("PRESET_KEY"); got != "from-env" {
		t.Fatalf("PRESET_KEY = %q", got)
	}
}
