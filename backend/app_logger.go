package backend

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// AppLogger はコンソール出力と診断ログへの書き込みを担当するインターフェース
type AppLogger interface {
	Console(format string, args ...interface{})                // コンソール出力
	Info(format string, args ...interface{})                   // 情報メッセージ出力
	Error(err error, format string, args ...interface{}) error // エラーメッセージ出力
}

// appLoggerImpl はAppLoggerの実装
// 診断ログが接続されるまではコンソールにのみ出力する
type appLoggerImpl struct {
	out        io.Writer
	zap        *zap.Logger
	isTestMode bool
}

// NewAppLogger は新しいAppLoggerインスタンスを作成
func NewAppLogger(isTestMode bool) *appLoggerImpl {
	return &appLoggerImpl{
		out:        os.Stdout,
		zap:        zap.NewNop(),
		isTestMode: isTestMode,
	}
}

// useDiagnostics は診断ログの出力先を差し替える
func (l *appLoggerImpl) useDiagnostics(z *zap.Logger) {
	if z == nil {
		z = zap.NewNop()
	}
	l.zap = z
}

// ログメッセージをコンソールに出力
func (l *appLoggerImpl) Console(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if !l.isTestMode {
		fmt.Fprintln(l.out, message)
	}
	l.zap.Debug(message)
}

// 情報メッセージをコンソールと診断ログに出力
func (l *appLoggerImpl) Info(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if !l.isTestMode {
		fmt.Fprintln(l.out, message)
	}
	l.zap.Info(message)
}

// エラーメッセージをコンソールと診断ログに出力し、エラーを返す
func (l *appLoggerImpl) Error(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	message := fmt.Sprintf(format, args...)
	if !l.isTestMode {
		fmt.Fprintf(l.out, "%s: %s\n", message, err.Error())
	}
	l.zap.Error(message, zap.Error(err))
	return err
}
