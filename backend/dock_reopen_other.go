//go:build !darwin

package backend

// InstallDockReopenHandler は macOS 以外の環境では何もしない。
func InstallDockReopenHandler() {}
