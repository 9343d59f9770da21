package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration. It is loaded once at the
// process boundary and threaded explicitly into services; core
// packages never read the environment themselves.
type Config struct {
	Env               string
	LLMProvider       string
	LLMModel          string
	SpellCheckModel   string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	AnthropicAPIKey   string
	AnthropicBaseURL  string
	DatabaseURL       string
	ArchiveDir        string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	SSEKMSKeyID       string
	CallFile          string
	ProposalFile      string
	QuestionsFile     string
	OutputFile        string
	ChunkSize         int
	ChunkOverlap      int
	ReviewerFeedback  bool
	SpellCheckEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		LLMProvider:       normalizeProvider(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4.1-mini"),
		SpellCheckModel:   getEnv("SPELL_CHECK_MODEL", "gpt-4.1-nano"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL:  getEnv("ANTHROPIC_BASE_URL", ""),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ArchiveDir:        getEnv("ARCHIVE_DIR", ""),
		AWSRegion:         getEnv("AWS_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:       getEnv("SSE_KMS_KEY_ID", ""),
		CallFile:          getEnv("CALL_FILE", ""),
		ProposalFile:      getEnv("PROPOSAL_FILE", ""),
		QuestionsFile:     getEnv("QUESTIONS_FILE", "questions.txt"),
		OutputFile:        getEnv("OUTPUT_FILE", ""),
		ChunkSize:         getEnvInt("CHUNK_SIZE", 6000),
		ChunkOverlap:      getEnvInt("CHUNK_OVERLAP", 600),
		ReviewerFeedback:  getEnvBool("REVIEWER_FEEDBACK", false),
		SpellCheckEnabled: getEnvBool("SPELL_CHECK", false),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "anthropic":
		return "anthropic"
	case "local":
		return "local"
	default:
		return "openai"
	}
}
