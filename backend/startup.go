package backend

import (
	"fmt"
)

// StartupMarker は初期化完了時に一度だけ出力される
const StartupMarker = "Scribble app initialized"

// StartupSequencer はイベントループ開始前の初期化を一度だけ行う
type StartupSequencer struct {
	registry *Registry
}

// NewStartupSequencer は新しいStartupSequencerを作成します
func NewStartupSequencer(registry *Registry) *StartupSequencer {
	return &StartupSequencer{registry: registry}
}

// DefaultRegistry は通知、シェル、アップデート確認、デバッグ時のみ診断ログの順で接続するRegistryを返します
func DefaultRegistry(cfg *Config, debug func() bool) *Registry {
	return NewRegistry().
		Attach(NewNotificationProvider("Scribble")).
		Attach(NewShellProvider(cfg.ShellAllowlist)).
		Attach(NewUpdaterProvider(cfg.UpdateFeedURL, cfg.UpdateTimeout)).
		AttachConditional(NewLoggerProvider(cfg.DataDir, cfg.LogLevel), debug)
}

// Run はケイパビリティを宣言順に接続し、起動マーカーを出力します
// 途中で失敗した場合は部分的に初期化された状態で動かさず、エラーを返す
func (s *StartupSequencer) Run(app *App) error {
	if err := s.registry.Apply(app); err != nil {
		return err
	}

	app.logger.Info(StartupMarker)
	return nil
}

// Launch は初期化が成功した場合のみウィンドウイベントのインターセプタを登録してイベントループに入ります
// 初期化に失敗した場合はイベントループを開始せずにエラーを返す
func Launch(app *App, seq *StartupSequencer, loop EventLoop) error {
	if err := seq.Run(app); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	interceptor := NewWindowEventInterceptor(app.logger, app.abort)
	return loop.Run(app, interceptor)
}
