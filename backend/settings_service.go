package backend

import (
	"encoding/json"
	"os"
	"path/filepath"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// ウィンドウ状態の取得。テストで差し替えるため変数にしている
var (
	windowGetSize     = wailsRuntime.WindowGetSize
	windowGetPosition = wailsRuntime.WindowGetPosition
	windowIsMaximised = wailsRuntime.WindowIsMaximised
)

// SettingsService は設定関連の操作を提供するインターフェースです
type SettingsService interface {
	LoadSettings() (*Settings, error)
	SaveSettings(settings *Settings) error
	SaveWindowState(ctx *Context) error
}

// settingsService はSettingsServiceの実装です
type settingsService struct {
	appDataDir string
}

// NewSettingsService は新しいsettingsServiceインスタンスを作成します
func NewSettingsService(appDataDir string) *settingsService {
	return &settingsService{
		appDataDir: appDataDir,
	}
}

func defaultSettings() *Settings {
	return &Settings{
		WindowWidth:           1024,
		WindowHeight:          768,
		WindowX:               0,
		WindowY:               0,
		IsMaximized:           false,
		UILanguage:            LocaleSystem,
		CheckUpdatesOnStartup: true,
		NotificationsEnabled:  true,
	}
}

// LoadSettings はsettings.jsonから設定を読み込みます
// ファイルが存在しない場合はデフォルト設定を返します
func (s *settingsService) LoadSettings() (*Settings, error) {
	settingsPath := filepath.Join(s.appDataDir, "settings.json")

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return defaultSettings(), nil
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}

	// 未定義の項目は既定値のまま残す
	settings := defaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if settings.UILanguage == "" {
		settings.UILanguage = LocaleSystem
	}
	return settings, nil
}

// SaveSettings は設定をsettings.jsonに保存します
func (s *settingsService) SaveSettings(settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	settingsPath := filepath.Join(s.appDataDir, "settings.json")
	return os.WriteFile(settingsPath, data, 0644)
}

// SaveWindowState はウィンドウの状態を保存します
func (s *settingsService) SaveWindowState(ctx *Context) error {
	if !ctx.Started() {
		return ErrWindowNotReady
	}

	settings, err := s.LoadSettings()
	if err != nil {
		return err
	}

	width, height := windowGetSize(ctx.ctx)
	settings.WindowWidth = width
	settings.WindowHeight = height

	x, y := windowGetPosition(ctx.ctx)
	settings.WindowX = x
	settings.WindowY = y

	settings.IsMaximized = windowIsMaximised(ctx.ctx)

	return s.SaveSettings(settings)
}
