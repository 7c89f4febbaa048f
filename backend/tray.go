//go:build windows

package backend

import (
	"context"
	_ "embed"

	"github.com/getlantern/systray"
)

//go:embed icon.ico
var iconData []byte

// TrayManager はシステムトレイを管理する
// 隠されたウィンドウを再表示する手段と、明示的な終了手段を提供する
type TrayManager struct {
	app             *App
	menuShow        *systray.MenuItem
	menuCheckUpdate *systray.MenuItem
	menuQuit        *systray.MenuItem
}

// NewTrayManager はトレイマネージャーを作成します
func NewTrayManager(app *App) *TrayManager {
	return &TrayManager{app: app}
}

// Start はトレイのループを開始します。トレイが終了するまで戻らない
func (t *TrayManager) Start() {
	systray.Run(t.onReady, t.onExit)
}

// onReady はトレイの準備完了時に呼ばれる
func (t *TrayManager) onReady() {
	t.app.logger.Console("[Tray] Initializing system tray...")
	msg := messagesFor(t.app.locale())

	systray.SetIcon(iconData)
	systray.SetTitle("Scribble")
	systray.SetTooltip(msg.TrayTooltip)

	t.menuShow = systray.AddMenuItem(msg.TrayShow, msg.TrayShowTip)
	t.menuCheckUpdate = systray.AddMenuItem(msg.TrayCheckUpdate, msg.TrayCheckUpdate)
	systray.AddSeparator()
	t.menuQuit = systray.AddMenuItem(msg.TrayQuit, msg.TrayQuitTip)

	go t.handleMenuEvents()
}

func (t *TrayManager) onExit() {
	t.app.logger.Console("[Tray] System tray exited")
}

// handleMenuEvents はメニューのクリックを処理する
func (t *TrayManager) handleMenuEvents() {
	for {
		select {
		case <-t.menuShow.ClickedCh:
			if err := t.app.ShowWindow(); err != nil {
				t.app.logger.Error(err, "[Tray] Failed to show window")
			}

		case <-t.menuCheckUpdate.ClickedCh:
			if t.app.updater == nil {
				continue
			}
			if _, err := t.app.updater.CheckAndNotify(context.Background()); err != nil {
				t.app.logger.Error(err, "[Tray] Update check failed")
			}

		case <-t.menuQuit.ClickedCh:
			t.app.logger.Console("[Tray] Quit clicked")
			t.app.Quit()
			systray.Quit()
			return
		}
	}
}
