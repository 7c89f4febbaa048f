package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"

	"github.com/pkg/browser"
)

var (
	// ErrCommandNotAllowed は許可リストにないコマンドを実行しようとした場合のエラー
	ErrCommandNotAllowed = errors.New("command is not allowed")
	// ErrUnsupportedURL は開けないスキームのURLの場合のエラー
	ErrUnsupportedURL = errors.New("unsupported url")
)

// 開くことを許可するURLスキーム
var openableSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// CommandOutput はコマンドの実行結果
type CommandOutput struct {
	Code   int    `json:"code"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// ShellProvider はURLのオープンと許可されたコマンドの実行を提供する
type ShellProvider struct {
	allowed map[string]bool
	openURL func(url string) error
	logger  AppLogger
}

// NewShellProvider は新しいShellProviderを作成します
// allowedに含まれるコマンドのみ実行できる
func NewShellProvider(allowed []string) *ShellProvider {
	set := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		if name != "" {
			set[name] = true
		}
	}
	return &ShellProvider{
		allowed: set,
		openURL: browser.OpenURL,
	}
}

func (p *ShellProvider) Capability() Capability {
	return CapabilityShell
}

func (p *ShellProvider) Attach(app *App) error {
	p.logger = app.logger
	app.shell = p
	return nil
}

// Open は既定のアプリケーションでURLを開きます
func (p *ShellProvider) Open(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	if !openableSchemes[u.Scheme] {
		return fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, u.Scheme)
	}

	p.logger.Console("Opening %s", target)
	return p.openURL(u.String())
}

// Execute は許可リストにあるコマンドを実行し、終了コードと出力を返します
// 0以外の終了コードはエラーではなく結果として返す
func (p *ShellProvider) Execute(ctx context.Context, name string, args ...string) (*CommandOutput, error) {
	if !p.allowed[name] {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotAllowed, name)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, p.logger.Error(err, "Failed to run %s", name)
	}

	return &CommandOutput{
		Code:   cmd.ProcessState.ExitCode(),
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}
