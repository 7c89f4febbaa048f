//go:build !darwin && !windows

package backend

// Linux などではロケール環境変数のみを使うため、ネイティブAPIは参照しない。
func detectNativeSystemLocale() string {
	return ""
}
