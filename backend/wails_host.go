package backend

import (
	"io/fs"
	"sync/atomic"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"scribble/backend/version"
)

// EventLoop はウィンドウイベントを配送するホストのイベントループ
// Runはプロセスが終了するまで戻らない
type EventLoop interface {
	Run(app *App, handler WindowEventHandler) error
}

// closeRequest はWailsのOnBeforeCloseをキャンセルハンドルとして扱う
type closeRequest struct {
	prevented bool
}

func (r *closeRequest) PreventClose() {
	r.prevented = true
}

// wailsWindow はWailsのメインウィンドウ
// Wails v2 はウィンドウが1枚のため、表示状態はここで保持する
// 表示はトレイやセカンドインスタンスのgoroutineからも行われるためatomicで持つ
type wailsWindow struct {
	app        *App
	label      string
	visibility atomic.Int32
}

func newWailsWindow(app *App, label string) *wailsWindow {
	w := &wailsWindow{
		app:   app,
		label: label,
	}
	w.visibility.Store(int32(Visible))
	return w
}

func (w *wailsWindow) Label() string {
	return w.label
}

// Hide はウィンドウを隠します
// Dockからの再表示など、ここを通らずに表示された場合もあるため状態に関わらずホストを呼ぶ
func (w *wailsWindow) Hide() error {
	if !w.app.hostReady() {
		return ErrWindowNotReady
	}
	windowHide(w.app.ctx.ctx)
	w.visibility.Store(int32(Hidden))
	return nil
}

// Show は隠されたウィンドウを前面に表示します
func (w *wailsWindow) Show() error {
	if !w.app.hostReady() {
		return ErrWindowNotReady
	}
	windowUnminimise(w.app.ctx.ctx)
	windowShow(w.app.ctx.ctx)
	w.visibility.Store(int32(Visible))
	return nil
}

func (w *wailsWindow) Visibility() Visibility {
	return Visibility(w.visibility.Load())
}

// WailsEventLoop はWailsをホストとするイベントループ
type WailsEventLoop struct {
	Title  string
	Assets fs.FS
}

// Run はハンドラを登録してWailsのイベントループに入ります
func (l *WailsEventLoop) Run(app *App, handler WindowEventHandler) error {
	app.registerWindowEventHandler(handler)

	settings, err := app.settingsService.LoadSettings()
	if err != nil {
		app.logger.Error(err, "Failed to load settings, using defaults")
		settings = defaultSettings()
	}

	opts := &options.App{
		Title:     l.Title,
		Width:     settings.WindowWidth,
		Height:    settings.WindowHeight,
		MinWidth:  480,
		MinHeight: 360,
		AssetServer: &assetserver.Options{
			Assets: l.Assets,
		},
		BackgroundColour: &options.RGBA{R: 17, G: 24, B: 39, A: 1},
		OnStartup:        app.Startup,
		OnDomReady:       app.DomReady,
		OnBeforeClose:    app.BeforeClose,
		OnShutdown:       app.Shutdown,
		LogLevel:         logger.INFO,
		Bind: []interface{}{
			app,
		},
		Windows: &windows.Options{
			OnSuspend: func() { app.dispatch(WindowEventSuspended) },
			OnResume:  func() { app.dispatch(WindowEventResumed) },
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   l.Title,
				Message: "Version " + version.Info(),
			},
		},
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId: "scribble-instance-lock",
			OnSecondInstanceLaunch: func(_ options.SecondInstanceData) {
				if err := app.ShowWindow(); err != nil {
					app.logger.Error(err, "Failed to show window for second instance")
				}
			},
		},
	}

	// 診断ログが接続されている場合はホストのログも同じ出力先に流す
	if app.diagnostics != nil {
		opts.Logger = app.diagnostics.WailsLogger()
		opts.LogLevel = logger.DEBUG
	}

	return wails.Run(opts)
}
