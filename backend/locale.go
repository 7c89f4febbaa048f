package backend

import (
	"os"
	"strings"
)

// サポートされる言語
const (
	LocaleJapanese = "ja"
	LocaleEnglish  = "en"
	LocaleSystem   = "system"
)

// getNativeSystemLocale はOS依存のロケール取得処理を注入するための変数
var getNativeSystemLocale = detectNativeSystemLocale

// localeEnvKeys は優先順位順のロケール環境変数
var localeEnvKeys = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// DetectSystemLocale はOSのシステムロケールを検出します
// 環境変数を優先し、GUIから起動されて環境変数が空の場合はOS APIを使う
func DetectSystemLocale() string {
	for _, key := range localeEnvKeys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return NormalizeLocale(value)
		}
	}

	if value := strings.TrimSpace(getNativeSystemLocale()); value != "" {
		return NormalizeLocale(value)
	}
	return LocaleEnglish
}

// NormalizeLocale はロケール文字列を言語コードに正規化します
// 例: "ja_JP.UTF-8" → "ja", "en-US" → "en"。未対応の言語は英語になる
func NormalizeLocale(locale string) string {
	parts := strings.FieldsFunc(strings.ToLower(locale), func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == '@'
	})
	if len(parts) == 0 {
		return LocaleEnglish
	}

	switch parts[0] {
	case LocaleJapanese:
		return LocaleJapanese
	default:
		return LocaleEnglish
	}
}

// ResolveLocale は設定された言語を解決します
// "system" または未設定の場合はシステムロケールを返す
func ResolveLocale(uiLanguage string) string {
	if uiLanguage == LocaleSystem || uiLanguage == "" {
		return DetectSystemLocale()
	}
	return NormalizeLocale(uiLanguage)
}
