// Package file loads CLI settings from a TOML file with environment
// overrides. Precedence, lowest to highest: built-in defaults, config.toml,
// a .env file in the working directory, real environment variables.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Default settings values.
const (
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultChatModel      = "gpt-4o-mini"
	DefaultChunkSize      = 800
	DefaultChunkOverlap   = 120
	DefaultTopK           = 6
)

// Settings holds the CLI configuration.
type Settings struct {
	// OpenAIAPIKey authenticates embedding and chat requests. Usually set
	// through the OPENAI_API_KEY environment variable rather than the file.
	OpenAIAPIKey string `toml:"openai_api_key"`

	// OpenAIBaseURL overrides the API endpoint for compatible providers.
	OpenAIBaseURL string `toml:"openai_base_url"`

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `toml:"embedding_model"`

	// ChatModel is the chat model name.
	ChatModel string `toml:"chat_model"`

	// DataDir is where the vector database lives. Empty means
	// ~/.tirads/data.
	DataDir string `toml:"data_dir"`

	// CorpusDir is the default guideline corpus directory for ingestion.
	CorpusDir string `toml:"corpus_dir"`

	// ChunkSize is the ingestion chunk size in tokens.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the ingestion chunk overlap in tokens.
	ChunkOverlap int `toml:"chunk_overlap"`

	// TopK is the default retrieval depth.
	TopK int `toml:"top_k"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		EmbeddingModel: DefaultEmbeddingModel,
		ChatModel:      DefaultChatModel,
		ChunkSize:      DefaultChunkSize,
		ChunkOverlap:   DefaultChunkOverlap,
		TopK:           DefaultTopK,
	}
}

// Path returns the config file path within configDir, defaulting to
// ~/.tirads/config.toml.
func Path(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".tirads")
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads settings from configDir, layering .env and environment
// overrides on top. A missing config file is not an error; defaults apply.
func Load(configDir string) (Settings, error) {
	s := Defaults()

	path, err := Path(configDir)
	if err != nil {
		return s, err
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file yet - that's fine, start from defaults
	case err != nil:
		return s, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	// Overload=false: a .env file never beats the real environment.
	_ = godotenv.Load()

	applyEnv(&s)
	return s, nil
}

// Save writes the settings to configDir, creating it if needed.
func Save(configDir string, s Settings) error {
	path, err := Path(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// The file can hold the API key, hence the restricted permissions.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyEnv layers environment variables over the loaded settings.
func applyEnv(s *Settings) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		s.OpenAIBaseURL = v
	}
	if v := os.Getenv("TIRADS_EMBEDDING_MODEL"); v != "" {
		s.EmbeddingModel = v
	}
	if v := os.Getenv("TIRADS_CHAT_MODEL"); v != "" {
		s.ChatModel = v
	}
	if v := os.Getenv("TIRADS_DATA_DIR"); v != "" {
		s.DataDir = v
	}
	if v := os.Getenv("TIRADS_CORPUS_DIR"); v != "" {
		s.CorpusDir = v
	}
	if v := os.Getenv("TIRADS_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.TopK = n
		}
	}
}
