/*
Appのテストスイート

テストケース:
1. TestNewApp
   - Appの初期化でデータディレクトリとメインウィンドウが用意されることを確認
2. TestBeforeClose_WithoutHandlerAllowsClose
   - インターセプタ未登録の場合はホストの既定動作（クローズ）に任せることを確認
3. TestBeforeClose_HidesAndPrevents
   - クローズ要求でウィンドウが隠れ、クローズが抑止されることを確認
4. TestQuit_SkipsInterceptor
   - 明示的な終了ではクローズを横取りしないことを確認
5. TestDispatchWindowEvent
   - フロントエンドから送られるイベント名の処理を確認
6. TestWindowVisibility_ConcurrentShowAndClose
   - トレイなど別goroutineからの再表示とクローズ要求が同時に来ても状態が壊れないことを確認（-raceで実行）
7. TestStartupUpdateCheck_WaitsForFrontend
   - 起動時のアップデート確認がフロントエンドの準備完了まで待つことを確認
*/

package backend

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runtimeRecorder はWailsランタイム呼び出しを記録する
// ランタイムは複数のgoroutineから呼ばれるためロックして記録する
type runtimeRecorder struct {
	mu        sync.Mutex
	hides     int
	shows     int
	quits     int
	events    []string
	payloads  []interface{}
	exitCodes []int
}

// stubRuntime はWailsランタイム呼び出しを差し替え、テスト終了時に戻す
func stubRuntime(t *testing.T) *runtimeRecorder {
	t.Helper()
	r := &runtimeRecorder{}

	origEmit, origHide, origShow, origUnminimise := eventsEmit, windowHide, windowShow, windowUnminimise
	origQuit, origExit := quitApp, exitProcess
	origSize, origPos, origMax := windowGetSize, windowGetPosition, windowIsMaximised

	eventsEmit = func(_ context.Context, name string, data ...interface{}) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, name)
		r.payloads = append(r.payloads, data...)
	}
	windowHide = func(context.Context) { r.record(&r.hides) }
	windowShow = func(context.Context) { r.record(&r.shows) }
	windowUnminimise = func(context.Context) {}
	quitApp = func(context.Context) { r.record(&r.quits) }
	exitProcess = func(code int) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.exitCodes = append(r.exitCodes, code)
	}
	windowGetSize = func(context.Context) (int, int) { return 900, 700 }
	windowGetPosition = func(context.Context) (int, int) { return 40, 60 }
	windowIsMaximised = func(context.Context) bool { return false }

	t.Cleanup(func() {
		eventsEmit, windowHide, windowShow, windowUnminimise = origEmit, origHide, origShow, origUnminimise
		quitApp, exitProcess = origQuit, origExit
		windowGetSize, windowGetPosition, windowIsMaximised = origSize, origPos, origMax
	})
	return r
}

func (r *runtimeRecorder) record(counter *int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*counter++
}

// eventNames は記録されたイベント名のコピーを返す
func (r *runtimeRecorder) eventNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// newTestApp はテスト用の一時ディレクトリを使うAppを作成する
func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.CheckUpdatesOnStartup = false

	app, err := NewApp(cfg)
	require.NoError(t, err)
	app.logger = NewAppLogger(true)
	return app
}

// startHost はホストのコンテキストが用意された状態を再現する
func startHost(app *App) {
	app.ctx.start(context.Background())
}

// fakeLoop はEventLoopのテスト用実装
type fakeLoop struct {
	runs    int
	handler WindowEventHandler
}

func (l *fakeLoop) Run(app *App, handler WindowEventHandler) error {
	l.runs++
	l.handler = handler
	app.registerWindowEventHandler(handler)
	return nil
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.ctx)
	assert.NotNil(t, app.settingsService)
	assert.NotEmpty(t, app.appDataDir)
	assert.DirExists(t, app.appDataDir)
	assert.Equal(t, "main", app.window.Label())
	assert.Equal(t, Visible, app.window.Visibility())
	assert.False(t, app.hostReady())
	assert.NotNil(t, app.ctx.ctx)
	assert.Empty(t, app.attached)

	startHost(app)
	assert.True(t, app.hostReady())
}

func TestBeforeClose_WithoutHandlerAllowsClose(t *testing.T) {
	rec := stubRuntime(t)
	app := newTestApp(t)
	startHost(app)

	assert.False(t, app.BeforeClose(app.ctx.ctx))
	assert.Equal(t, 0, rec.hides)
	assert.Equal(t, Visible, app.window.Visibility())
}

func TestBeforeClose_HidesAndPrevents(t *testing.T) {
	rec := stubRuntime(t)
	app := newTestApp(t)
	startHost(app)
	app.registerWindowEventHandler(NewWindowEventInterceptor(app.logger, app.abort))

	assert.True(t, app.BeforeClose(app.ctx.ctx))
	assert.Equal(t, Hidden, app.window.Visibility())
	assert.Equal(t, 1, rec.hides)
	assert.Empty(t, rec.exitCodes)

	// 隠す前のウィンドウ状態が保存されている
	settings, err := app.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 900, settings.WindowWidth)
	assert.Equal(t, 700, settings.WindowHeight)
	assert.Equal(t, 40, settings.WindowX)
	assert.Equal(t, 60, settings.WindowY)

	// 再表示
	require.NoError(t, app.ShowWindow())
	assert.Equal(t, Visible, app.window.Visibility())
	assert.Equal(t, 1, rec.shows)
}

func TestBeforeClose_HideFailureAborts(t *testing.T) {
	rec := stubRuntime(t)
	app := newTestApp(t)
	app.registerWindowEventHandler(NewWindowEventInterceptor(app.logger, app.abort))

	// ホストのコンテキストがないためHideが失敗する
	assert.False(t, app.BeforeClose(context.Background()))
	assert.Equal(t, []int{1}, rec.exitCodes)
}

func TestQuit_SkipsInterceptor(t *testing.T) {
	rec := stubRuntime(t)
	app := newTestApp(t)
	startHost(app)
	app.registerWindowEventHandler(NewWindowEventInterceptor(app.logger, app.abort))

	app.Quit()
	assert.Equal(t, 1, rec.quits)
	assert.False(t, app.BeforeClose(app.ctx.ctx))
	assert.Equal(t, 0, rec.hides)
	assert.Equal(t, Visible, app.window.Visibility())
}

func TestDispatchWindowEvent(t *testing.T) {
	rec := stubRuntime(t)
	app := newTestApp(t)
	startHost(app)
	app.registerWindowEventHandler(NewWindowEventInterceptor(app.logger, app.abort))

	assert.Error(t, app.DispatchWindowEvent("exploded"))

	require.NoError(t, app.DispatchWindowEvent("focused"))
	require.NoError(t, app.DispatchWindowEvent("resized"))
	assert.Equal(t, Visible, app.window.Visibility())
	assert.Equal(t, 0, rec.hides)

	require.NoError(t, app.DispatchWindowEvent("close-requested"))
	assert.Equal(t, Hidden, app.window.Visibility())
	assert.Equal(t, 0, rec.quits)
}

func TestWindowVisibility_ConcurrentShowAndClose(t *testing.T) {
	rec := stubRuntime(t)
	app := newTestApp(t)
	startHost(app)
	app.registerWindowEventHandler(NewWindowEventInterceptor(app.logger, app.abort))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = app.ShowWindow()
		}()
		go func() {
			defer wg.Done()
			app.BeforeClose(app.ctx.ctx)
		}()
	}
	wg.Wait()

	assert.Contains(t, []Visibility{Visible, Hidden}, app.window.Visibility())
	assert.Equal(t, 20, rec.hides)
	assert.Equal(t, 20, rec.shows)
	assert.Empty(t, rec.exitCodes)

	// 最後の操作に関わらず、クローズ要求のあとは隠れている
	assert.True(t, app.BeforeClose(app.ctx.ctx))
	assert.Equal(t, Hidden, app.window.Visibility())
}

func TestQuit_FromAnotherGoroutine(t *testing.T) {
	rec := stubRuntime(t)
	app := newTestApp(t)
	startHost(app)
	app.registerWindowEventHandler(NewWindowEventInterceptor(app.logger, app.abort))

	// トレイの「終了」は別goroutineから呼ばれる
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Quit()
	}()
	app.BeforeClose(app.ctx.ctx)
	<-done

	assert.False(t, app.BeforeClose(app.ctx.ctx))
	assert.Equal(t, 1, rec.quits)
}

func TestNotifyFrontendReady_Idempotent(t *testing.T) {
	app := newTestApp(t)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.NotifyFrontendReady()
		}()
	}
	wg.Wait()

	select {
	case <-app.frontendReady:
	default:
		t.Fatal("frontendReady is not closed")
	}
}

func TestEmit_NoopBeforeHostStarts(t *testing.T) {
	rec := stubRuntime(t)
	app := newTestApp(t)

	app.emit("backend:ready")
	assert.Empty(t, rec.events)

	startHost(app)
	app.emit("backend:ready")
	assert.Equal(t, []string{"backend:ready"}, rec.events)
}

func TestCapabilityMethods_RequireAttachment(t *testing.T) {
	app := newTestApp(t)

	assert.ErrorIs(t, app.SendNotification("t", "b"), ErrCapabilityMissing)
	assert.ErrorIs(t, app.OpenURL("https://example.com"), ErrCapabilityMissing)
	_, err := app.RunCommand("echo", nil)
	assert.ErrorIs(t, err, ErrCapabilityMissing)
	_, err = app.CheckForUpdates()
	assert.ErrorIs(t, err, ErrCapabilityMissing)
	assert.Empty(t, app.GetLogPath())
}

func TestAppLogger_ConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAppLogger(false)
	logger.out = &buf

	logger.Info("hello %s", "world")
	err := logger.Error(assert.AnError, "failed")

	assert.Equal(t, assert.AnError, err)
	assert.Contains(t, buf.String(), "hello world\n")
	assert.Contains(t, buf.String(), "failed: "+assert.AnError.Error())
	assert.Nil(t, logger.Error(nil, "ignored"))
}
