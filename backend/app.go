package backend

import (
	"context"
	"fmt"
	"os"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"scribble/backend/version"
)

// Wailsのランタイム呼び出し。テストで差し替えるため変数にしている
var (
	eventsEmit       = wailsRuntime.EventsEmit
	windowHide       = wailsRuntime.WindowHide
	windowShow       = wailsRuntime.WindowShow
	windowUnminimise = wailsRuntime.WindowUnminimise
	quitApp          = wailsRuntime.Quit
	exitProcess      = os.Exit
)

// DomReady後、フロントエンドの準備完了通知を待つ最大時間
var frontendReadyTimeout = 10 * time.Second

// NewContext は新しいContextインスタンスを作成します
// ホストのコンテキストはstartが呼ばれるまで利用できない
func NewContext() *Context {
	return &Context{ctx: context.TODO()}
}

// start はホストのコンテキストを設定し、利用可能にします
func (c *Context) start(ctx context.Context) {
	c.ctx = ctx
	c.started.Store(true)
}

// Started はホストのコンテキストが設定済みかどうかを返します
func (c *Context) Started() bool {
	return c.started.Load()
}

// SkipBeforeClose はBeforeClose処理のスキップフラグを設定します
func (c *Context) SkipBeforeClose(skip bool) {
	c.skipBeforeClose.Store(skip)
}

// ShouldSkipBeforeClose はBeforeClose処理をスキップすべきかどうかを返します
func (c *Context) ShouldSkipBeforeClose() bool {
	return c.skipBeforeClose.Load()
}

// NewApp は新しいAppインスタンスを作成します
// ホストのイベントループ開始前に一度だけ呼ばれる
func NewApp(cfg *Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create app data directory: %w", err)
	}

	app := &App{
		ctx:             NewContext(),
		config:          cfg,
		appDataDir:      cfg.DataDir,
		settingsService: NewSettingsService(cfg.DataDir),
		logger:          NewAppLogger(false),
		attached:        make(map[Capability]bool),
		frontendReady:   make(chan struct{}),
	}
	app.window = newWailsWindow(app, "main")
	return app, nil
}

// ------------------------------------------------------------
// アプリケーション関連の操作
// ------------------------------------------------------------

// アプリケーション起動時に呼び出される初期化関数
func (a *App) Startup(ctx context.Context) {
	a.ctx.start(ctx)
	a.logger.Info("Scribble %s", version.Full())
	a.logger.Console("appDataDir %s", a.appDataDir)

	// トレイは独自のループで動くため別goroutineで起動
	a.tray = NewTrayManager(a)
	go a.tray.Start()
}

// DomReady はフロントエンドの読み込み完了時に呼び出される
func (a *App) DomReady(ctx context.Context) {
	a.logger.Console("DomReady called")

	// 起動時のアップデート確認
	if a.updater != nil && a.shouldCheckUpdatesOnStartup() {
		go a.checkUpdatesWhenFrontendReady()
	}

	a.emit("backend:ready")
}

// アプリケーション終了前に呼び出される処理
// trueを返すとホストの既定のクローズ処理を抑止する
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	if a.ctx.ShouldSkipBeforeClose() || a.windowEvents == nil {
		return false
	}

	// 隠す前にウィンドウの状態を保存
	if err := a.settingsService.SaveWindowState(a.ctx); err != nil {
		a.logger.Error(err, "Failed to save window state")
	}

	request := &closeRequest{}
	a.windowEvents.Handle(a.window, WindowEvent{Kind: WindowEventCloseRequested, Close: request})
	return request.prevented
}

// Shutdown はホストのイベントループ終了時に呼び出される
func (a *App) Shutdown(ctx context.Context) {
	a.logger.Console("Shutdown called")
	if a.diagnostics != nil {
		if err := a.diagnostics.Close(); err != nil {
			fmt.Printf("Error closing diagnostic log: %v\n", err)
		}
	}
}

// Quit はクローズの横取りをスキップしてアプリケーションを終了する
func (a *App) Quit() {
	a.logger.Console("Quit requested")
	a.ctx.SkipBeforeClose(true)
	if a.hostReady() {
		quitApp(a.ctx.ctx)
	}
}

// ShowWindow は隠されたウィンドウを再表示する
func (a *App) ShowWindow() error {
	return a.window.Show()
}

// フロントエンドの準備完了を通知する
// イベントリスナーの登録後にフロントエンドから呼ばれる
func (a *App) NotifyFrontendReady() {
	a.readyOnce.Do(func() {
		close(a.frontendReady)
	})
}

// checkUpdatesWhenFrontendReady はフロントエンドがイベントを受け取れるようになってから更新を確認する
// 通知が来ない場合もタイムアウト後に確認する
func (a *App) checkUpdatesWhenFrontendReady() {
	select {
	case <-a.frontendReady:
	case <-time.After(frontendReadyTimeout):
		a.logger.Console("Frontend ready timeout, checking updates anyway")
	}

	if _, err := a.updater.CheckAndNotify(context.Background()); err != nil {
		a.logger.Error(err, "Update check failed")
	}
}

// DispatchWindowEvent はフロントエンドで検知したウィンドウイベントをインターセプタへ渡す
func (a *App) DispatchWindowEvent(name string) error {
	kind, ok := ParseWindowEventKind(name)
	if !ok {
		return fmt.Errorf("unknown window event %q", name)
	}
	if kind == WindowEventCloseRequested {
		if !a.BeforeClose(a.ctx.ctx) {
			a.Quit()
		}
		return nil
	}
	a.dispatch(kind)
	return nil
}

// dispatch はクローズ以外のウィンドウイベントを配送する
func (a *App) dispatch(kind WindowEventKind) {
	if a.windowEvents == nil {
		return
	}
	a.windowEvents.Handle(a.window, WindowEvent{Kind: kind})
}

// registerWindowEventHandler はホストにウィンドウイベントハンドラを登録する
func (a *App) registerWindowEventHandler(h WindowEventHandler) {
	a.windowEvents = h
}

// abort は回復不能なエラーでプロセスを終了する
func (a *App) abort(err error) {
	a.logger.Error(err, "Fatal error")
	if a.diagnostics != nil {
		_ = a.diagnostics.Close()
	}
	exitProcess(1)
}

// hostReady はホストのコンテキストが利用可能かどうかを返す
func (a *App) hostReady() bool {
	return a.ctx.Started()
}

// emit はフロントエンドへイベントを送る。ホスト起動前は何もしない
func (a *App) emit(event string, data ...interface{}) {
	if !a.hostReady() {
		return
	}
	eventsEmit(a.ctx.ctx, event, data...)
}

// ------------------------------------------------------------
// ケイパビリティ関連の操作
// ------------------------------------------------------------

// SendNotification はデスクトップ通知を表示する
func (a *App) SendNotification(title string, body string) error {
	if a.notifier == nil {
		return fmt.Errorf("%w: %s", ErrCapabilityMissing, CapabilityNotification)
	}
	return a.notifier.Notify(title, body)
}

// OpenURL は既定のブラウザでURLを開く
func (a *App) OpenURL(target string) error {
	if a.shell == nil {
		return fmt.Errorf("%w: %s", ErrCapabilityMissing, CapabilityShell)
	}
	return a.shell.Open(target)
}

// RunCommand は許可されたコマンドを実行する
func (a *App) RunCommand(name string, args []string) (*CommandOutput, error) {
	if a.shell == nil {
		return nil, fmt.Errorf("%w: %s", ErrCapabilityMissing, CapabilityShell)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.shell.Execute(ctx, name, args...)
}

// CheckForUpdates は新しいバージョンがあるか確認する
func (a *App) CheckForUpdates() (*UpdateInfo, error) {
	if a.updater == nil {
		return nil, fmt.Errorf("%w: %s", ErrCapabilityMissing, CapabilityUpdater)
	}
	return a.updater.CheckAndNotify(context.Background())
}

// GetVersion はアプリケーションのバージョンを返す
func (a *App) GetVersion() string {
	return currentVersion()
}

// GetLogPath は診断ログのパスを返す。リリースビルドでは空文字
func (a *App) GetLogPath() string {
	if a.diagnostics == nil {
		return ""
	}
	return a.diagnostics.LogPath()
}

// ------------------------------------------------------------
// 設定関連の操作
// ------------------------------------------------------------

// 設定を読み込む
func (a *App) LoadSettings() (*Settings, error) {
	return a.settingsService.LoadSettings()
}

// 設定を保存する
func (a *App) SaveSettings(settings *Settings) error {
	return a.settingsService.SaveSettings(settings)
}

func (a *App) shouldCheckUpdatesOnStartup() bool {
	settings, err := a.settingsService.LoadSettings()
	if err != nil {
		return a.config.CheckUpdatesOnStartup
	}
	return a.config.CheckUpdatesOnStartup && settings.CheckUpdatesOnStartup
}

// locale は通知やトレイに使う言語を返す
func (a *App) locale() string {
	settings, err := a.settingsService.LoadSettings()
	if err != nil {
		return ResolveLocale(LocaleSystem)
	}
	return ResolveLocale(settings.UILanguage)
}
