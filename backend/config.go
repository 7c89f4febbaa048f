package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// 環境変数のプレフィックス（例: SCRIBBLE_LOG_LEVEL）
const envPrefix = "scribble"

const defaultUpdateFeedURL = "https://api.github.com/repos/scribble-app/scribble/releases/latest"

// Config は環境変数から読み込むアプリケーション設定
// 既定値はDefaultConfigが持ち、設定された環境変数だけが上書きする
type Config struct {
	DataDir               string        `envconfig:"DATA_DIR"`
	UpdateFeedURL         string        `envconfig:"UPDATE_URL"`
	UpdateTimeout         time.Duration `envconfig:"UPDATE_TIMEOUT"`
	CheckUpdatesOnStartup bool          `envconfig:"CHECK_UPDATES"`
	LogLevel              string        `envconfig:"LOG_LEVEL"`
	ShellAllowlist        []string      `envconfig:"SHELL_ALLOW"`
}

// LoadConfig は既定の設定に環境変数を重ねて読み込みます
// データディレクトリが空の場合はユーザー設定ディレクトリ配下を使う
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// DefaultConfig は既定の設定を返します
func DefaultConfig() *Config {
	return &Config{
		DataDir:               defaultDataDir(),
		UpdateFeedURL:         defaultUpdateFeedURL,
		UpdateTimeout:         15 * time.Second,
		CheckUpdatesOnStartup: true,
		LogLevel:              "info",
	}
}

// defaultDataDir はアプリケーションデータディレクトリの既定パスを返す
func defaultDataDir() string {
	appData, err := os.UserConfigDir()
	if err != nil {
		appData, err = os.UserHomeDir()
		if err != nil {
			appData = "."
		}
	}
	return filepath.Join(appData, "scribble")
}
