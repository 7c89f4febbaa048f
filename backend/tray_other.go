//go:build !windows

package backend

// TrayManager はWindows以外では何もしない
// macOSではDockのクリックでウィンドウを再表示する
type TrayManager struct{}

// NewTrayManager creates a no-op tray manager
func NewTrayManager(app *App) *TrayManager {
	return &TrayManager{}
}

// Start is a no-op on non-Windows platforms
func (t *TrayManager) Start() {}
