package main

import (
	"embed"
	"io/fs"
	"log"

	"scribble/backend"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// macOS ではDockから隠したウィンドウを戻せるようにする
	backend.InstallDockReopenHandler()

	cfg, err := backend.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app, err := backend.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	dist, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		log.Fatalf("Failed to load frontend assets: %v", err)
	}

	// 初期化に失敗した場合はイベントループに入らずに終了する
	seq := backend.NewStartupSequencer(backend.DefaultRegistry(cfg, backend.IsDebugBuild))
	loop := &backend.WailsEventLoop{Title: "Scribble", Assets: dist}
	if err := backend.Launch(app, seq, loop); err != nil {
		log.Fatalf("error while running scribble application: %v", err)
	}
}
