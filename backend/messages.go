package backend

// messages はトレイと通知で使う表示文字列
type messages struct {
	TrayTooltip     string
	TrayShow        string
	TrayShowTip     string
	TrayCheckUpdate string
	TrayQuit        string
	TrayQuitTip     string
	UpdateTitle     string
	UpdateBody      string // %s に新しいバージョンが入る
}

var localizedMessages = map[string]messages{
	LocaleEnglish: {
		TrayTooltip:     "Scribble",
		TrayShow:        "Show Window",
		TrayShowTip:     "Show the main window",
		TrayCheckUpdate: "Check for Updates",
		TrayQuit:        "Quit",
		TrayQuitTip:     "Quit Scribble",
		UpdateTitle:     "Update Available",
		UpdateBody:      "Version %s is ready to install",
	},
	LocaleJapanese: {
		TrayTooltip:     "Scribble",
		TrayShow:        "ウィンドウを表示",
		TrayShowTip:     "メインウィンドウを表示",
		TrayCheckUpdate: "アップデートを確認",
		TrayQuit:        "終了",
		TrayQuitTip:     "Scribbleを終了",
		UpdateTitle:     "アップデートがあります",
		UpdateBody:      "バージョン %s をインストールできます",
	},
}

// messagesFor はロケールに対応する表示文字列を返す。未対応の場合は英語
func messagesFor(locale string) messages {
	if m, ok := localizedMessages[locale]; ok {
		return m
	}
	return localizedMessages[LocaleEnglish]
}
