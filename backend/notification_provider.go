package backend

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notification はフロントエンドへ送る通知イベントのペイロード
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NotificationProvider はデスクトップ通知のケイパビリティ
type NotificationProvider struct {
	appName string
	app     *App
	send    func(title, message string, icon any) error
}

// NewNotificationProvider は新しいNotificationProviderを作成します
func NewNotificationProvider(appName string) *NotificationProvider {
	return &NotificationProvider{
		appName: appName,
		send:    beeep.Notify,
	}
}

func (p *NotificationProvider) Capability() Capability {
	return CapabilityNotification
}

// Attach は通知の送信元名を設定してアプリに接続します
func (p *NotificationProvider) Attach(app *App) error {
	beeep.AppName = p.appName
	p.app = app
	app.notifier = p
	return nil
}

// Notify はネイティブ通知を表示し、フロントエンドにも同じ内容を送ります
// 設定で通知が無効な場合は何もしない
func (p *NotificationProvider) Notify(title string, body string) error {
	if !p.enabled() {
		return nil
	}

	p.app.emit("notification", Notification{Title: title, Body: body})
	if err := p.send(title, body, ""); err != nil {
		return p.app.logger.Error(fmt.Errorf("failed to send notification: %w", err), "Notification %q", title)
	}
	return nil
}

func (p *NotificationProvider) enabled() bool {
	settings, err := p.app.settingsService.LoadSettings()
	if err != nil {
		return true
	}
	return settings.NotificationsEnabled
}
