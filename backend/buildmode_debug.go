//go:build debug || dev

package backend

// IsDebugBuild は wails dev / wails build -debug でビルドされた場合にtrueを返す
func IsDebugBuild() bool {
	return true
}
