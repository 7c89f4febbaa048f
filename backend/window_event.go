package backend

import (
	"errors"
	"fmt"
)

// ErrWindowNotReady はホストのウィンドウがまだ操作できない場合のエラー
var ErrWindowNotReady = errors.New("window is not ready")

// ウィンドウイベントの種類
type WindowEventKind int

const (
	WindowEventCloseRequested WindowEventKind = iota
	WindowEventDestroyed
	WindowEventFocused
	WindowEventBlurred
	WindowEventResized
	WindowEventMoved
	WindowEventSuspended
	WindowEventResumed
)

var windowEventNames = map[WindowEventKind]string{
	WindowEventCloseRequested: "close-requested",
	WindowEventDestroyed:      "destroyed",
	WindowEventFocused:        "focused",
	WindowEventBlurred:        "blurred",
	WindowEventResized:        "resized",
	WindowEventMoved:          "moved",
	WindowEventSuspended:      "suspended",
	WindowEventResumed:        "resumed",
}

func (k WindowEventKind) String() string {
	if name, ok := windowEventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// ParseWindowEventKind はフロントエンドから送られたイベント名を変換します
func ParseWindowEventKind(name string) (WindowEventKind, bool) {
	for kind, n := range windowEventNames {
		if n == name {
			return kind, true
		}
	}
	return 0, false
}

// Window はホストが管理するウィンドウ
// 破棄はホストの責務で、ここでは表示/非表示のみを操作する
type Window interface {
	Label() string
	Hide() error
	Show() error
	Visibility() Visibility
}

// CloseRequestAPI はクローズ要求のキャンセルハンドル
type CloseRequestAPI interface {
	PreventClose()
}

// WindowEvent はホストから配送されるウィンドウイベント
// CloseはKindがWindowEventCloseRequestedの場合のみ設定される
type WindowEvent struct {
	Kind  WindowEventKind
	Close CloseRequestAPI
}

// WindowEventHandler はホストに登録されるウィンドウイベントハンドラ
type WindowEventHandler interface {
	Handle(w Window, ev WindowEvent)
}

// WindowEventInterceptor はクローズ要求を非表示に置き換える
type WindowEventInterceptor struct {
	logger AppLogger
	abort  func(err error)
}

// NewWindowEventInterceptor は新しいインターセプタを作成します
// abortは非表示に失敗した場合に呼ばれ、戻らないことを前提とする
func NewWindowEventInterceptor(logger AppLogger, abort func(err error)) *WindowEventInterceptor {
	return &WindowEventInterceptor{
		logger: logger,
		abort:  abort,
	}
}

// Handle はウィンドウイベントを処理します
func (i *WindowEventInterceptor) Handle(w Window, ev WindowEvent) {
	switch ev.Kind {
	case WindowEventCloseRequested:
		// 閉じる代わりに隠してプロセスを残す
		if err := w.Hide(); err != nil {
			i.abort(fmt.Errorf("failed to hide window %q: %w", w.Label(), err))
			return
		}
		ev.Close.PreventClose()
		i.logger.Console("Window %s hidden instead of closed", w.Label())
	case WindowEventDestroyed,
		WindowEventFocused,
		WindowEventBlurred,
		WindowEventResized,
		WindowEventMoved,
		WindowEventSuspended,
		WindowEventResumed:
		// ホストの既定動作に任せる
	}
}
