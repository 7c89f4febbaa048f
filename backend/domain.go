package backend

import (
	"context"
	"sync"
	"sync/atomic"
)

// アプリケーションのメインの構造体
// プロセス内で一度だけ生成され、終了まで再生成されない
type App struct {
	ctx             *Context              // アプリケーションのコンテキスト
	config          *Config               // 環境変数から読み込んだ設定
	appDataDir      string                // アプリケーションデータディレクトリのパス
	settingsService *settingsService      // 設定操作サービス
	logger          AppLogger             // アプリケーションのロガー
	window          *wailsWindow          // メインウィンドウ
	windowEvents    WindowEventHandler    // ホストに登録されたウィンドウイベントハンドラ
	tray            *TrayManager          // システムトレイ
	notifier        *NotificationProvider // 通知ケイパビリティ
	shell           *ShellProvider        // シェルケイパビリティ
	updater         *UpdaterProvider      // アップデート確認ケイパビリティ
	diagnostics     *LoggerProvider       // 診断ログ（デバッグビルドのみ）
	attached        map[Capability]bool   // 接続済みのケイパビリティ
	frontendReady   chan struct{}         // フロントエンドの準備完了を通知するチャネル
	readyOnce       sync.Once             // frontendReadyを一度だけ閉じる
}

// アプリケーションのコンテキストを管理
// トレイやセカンドインスタンスのgoroutineからも参照される
type Context struct {
	ctx             context.Context
	started         atomic.Bool // ホストのOnStartupが呼ばれたかどうか
	skipBeforeClose atomic.Bool // 明示的な終了時にクローズ横取りをスキップするかどうか
}

// ケイパビリティの種類
type Capability string

const (
	CapabilityNotification Capability = "notification"
	CapabilityShell        Capability = "shell"
	CapabilityUpdater      Capability = "updater"
	CapabilityLogger       Capability = "logger"
)

// ウィンドウの表示状態
type Visibility int

const (
	Visible Visibility = iota
	Hidden
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// アップデート確認の結果
type UpdateInfo struct {
	Available      bool   `json:"available"`
	CurrentVersion string `json:"currentVersion"`
	Version        string `json:"version,omitempty"`
	Notes          string `json:"notes,omitempty"`
	URL            string `json:"url,omitempty"`
}

// アプリケーションの設定
type Settings struct {
	WindowWidth           int    `json:"windowWidth"`
	WindowHeight          int    `json:"windowHeight"`
	WindowX               int    `json:"windowX"`
	WindowY               int    `json:"windowY"`
	IsMaximized           bool   `json:"isMaximized"`
	UILanguage            string `json:"uiLanguage"`
	CheckUpdatesOnStartup bool   `json:"checkUpdatesOnStartup"`
	NotificationsEnabled  bool   `json:"notificationsEnabled"`
}
