package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	wailsLogger "github.com/wailsapp/wails/v2/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerProvider はデバッグビルドでのみ接続される診断ログ
type LoggerProvider struct {
	logDir  string
	level   string
	logPath string
	logFile *os.File
	console zapcore.WriteSyncer
	logger  *zap.Logger
}

// NewLoggerProvider は新しいLoggerProviderを作成します
func NewLoggerProvider(appDataDir string, level string) *LoggerProvider {
	return &LoggerProvider{
		logDir:  filepath.Join(appDataDir, "logs"),
		level:   level,
		console: zapcore.Lock(os.Stderr),
	}
}

func (p *LoggerProvider) Capability() Capability {
	return CapabilityLogger
}

// Attach はログファイルを開き、アプリのロガーを診断ログに接続します
func (p *LoggerProvider) Attach(app *App) error {
	level, err := parseLevel(p.level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", p.level, err)
	}

	if err := os.MkdirAll(p.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	p.logPath = filepath.Join(p.logDir, fmt.Sprintf("app_%s.log", time.Now().Format("2006-01-02_15-04-05")))

	// zap.ConfigのOutputPathsはWindowsのドライブレターをURLスキームと誤認するため、ファイルは自前で開く
	logFile, err := os.OpenFile(p.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	p.logFile = logFile

	atomicLevel := zap.NewAtomicLevelAt(level)
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(logFile), atomicLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig()), p.console, atomicLevel),
	)
	p.logger = zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))).Named("scribble")

	app.diagnostics = p
	if l, ok := app.logger.(*appLoggerImpl); ok {
		l.useDiagnostics(p.logger)
	}
	return nil
}

// Logger は接続済みのzapロガーを返します
func (p *LoggerProvider) Logger() *zap.Logger {
	if p.logger == nil {
		return zap.NewNop()
	}
	return p.logger
}

// LogPath は現在のログファイルのパスを返します
func (p *LoggerProvider) LogPath() string {
	return p.logPath
}

// Close はバッファされたログを書き出してファイルを閉じます
func (p *LoggerProvider) Close() error {
	if p.logger == nil {
		return nil
	}
	_ = p.logger.Sync()
	return p.logFile.Close()
}

// WailsLogger はホストのログを診断ログへ流すためのアダプタを返します
func (p *LoggerProvider) WailsLogger() wailsLogger.Logger {
	return &wailsLoggerBridge{logger: p.Logger().Named("wails")}
}

// parseLevel converts string level to zapcore.Level.
func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// consoleEncoderConfig は開発時にターミナルで読むための設定
func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := encoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return cfg
}

// wailsLoggerBridge はWailsのlogger.Loggerをzapで実装する
type wailsLoggerBridge struct {
	logger *zap.Logger
}

func (b *wailsLoggerBridge) Print(message string)   { b.logger.Info(message) }
func (b *wailsLoggerBridge) Trace(message string)   { b.logger.Debug(message) }
func (b *wailsLoggerBridge) Debug(message string)   { b.logger.Debug(message) }
func (b *wailsLoggerBridge) Info(message string)    { b.logger.Info(message) }
func (b *wailsLoggerBridge) Warning(message string) { b.logger.Warn(message) }
func (b *wailsLoggerBridge) Error(message string)   { b.logger.Error(message) }

// Fatal はホストの致命的エラー。Wails側でプロセスが終了する
func (b *wailsLoggerBridge) Fatal(message string) {
	b.logger.Error(message)
	_ = b.logger.Sync()
}
