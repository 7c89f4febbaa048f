package version

import "runtime"

// ビルド時に -ldflags で埋め込まれる
//
//	wails build -ldflags "-X scribble/backend/version.Version=0.1.0 -X scribble/backend/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info はAboutダイアログ向けの短い表記を返す（例: "0.1.0 (abc1234)"）
func Info() string {
	if Commit == "unknown" {
		return Version
	}
	return Version + " (" + Commit + ")"
}

// Full は起動ログ向けにビルド日時と実行プラットフォームを含めて返す
func Full() string {
	return Version + " (commit: " + Commit + ", built: " + BuildTime + ", " + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
