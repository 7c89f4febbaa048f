package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/mod/semver"

	"scribble/backend/version"
)

// release はアップデートフィードのレスポンス（GitHub Releasesのlatest形式）
type release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// UpdaterProvider は新しいバージョンの有無を確認するケイパビリティ
// ダウンロードと適用は行わない
type UpdaterProvider struct {
	feedURL        string
	currentVersion string
	client         *resty.Client
	app            *App
}

// NewUpdaterProvider は新しいUpdaterProviderを作成します
func NewUpdaterProvider(feedURL string, timeout time.Duration) *UpdaterProvider {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("User-Agent", "Scribble/"+version.Version)

	return &UpdaterProvider{
		feedURL:        feedURL,
		currentVersion: currentVersion(),
		client:         client,
	}
}

func (p *UpdaterProvider) Capability() Capability {
	return CapabilityUpdater
}

// Attach は通知ケイパビリティが接続済みであることを前提とする
func (p *UpdaterProvider) Attach(app *App) error {
	if err := app.requireCapability(CapabilityNotification); err != nil {
		return err
	}
	p.app = app
	app.updater = p
	return nil
}

// Check はフィードから最新リリースを取得して現在のバージョンと比較します
func (p *UpdaterProvider) Check(ctx context.Context) (*UpdateInfo, error) {
	var latest release
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&latest).
		Get(p.feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch update feed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("update feed returned status %d", resp.StatusCode())
	}

	info := &UpdateInfo{CurrentVersion: p.currentVersion}
	if isNewerVersion(latest.TagName, p.currentVersion) {
		info.Available = true
		info.Version = latest.TagName
		info.Notes = latest.Body
		info.URL = latest.HTMLURL
	}
	return info, nil
}

// CheckAndNotify は確認結果をフロントエンドに送り、更新があれば通知します
func (p *UpdaterProvider) CheckAndNotify(ctx context.Context) (*UpdateInfo, error) {
	info, err := p.Check(ctx)
	if err != nil {
		return nil, err
	}

	p.app.emit("update:checked", info)
	if !info.Available {
		p.app.logger.Console("No update available (current %s)", info.CurrentVersion)
		return info, nil
	}

	p.app.logger.Info("Update available: %s", info.Version)
	msg := messagesFor(p.app.locale())
	if err := p.app.notifier.Notify(msg.UpdateTitle, fmt.Sprintf(msg.UpdateBody, info.Version)); err != nil {
		return info, err
	}
	return info, nil
}

// isNewerVersion はタグが現在のバージョンより新しいかどうかを返す
// 現在のバージョンがsemverでない場合（開発ビルド）は常にfalse
func isNewerVersion(tag string, current string) bool {
	latest := canonicalVersion(tag)
	running := canonicalVersion(current)
	if !semver.IsValid(latest) || !semver.IsValid(running) {
		return false
	}
	return semver.Compare(latest, running) > 0
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

func currentVersion() string {
	return version.Version
}
