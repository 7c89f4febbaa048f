//go:build !debug && !dev

package backend

// IsDebugBuild はリリースビルドではfalseを返す
func IsDebugBuild() bool {
	return false
}
