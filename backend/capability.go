package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyAttached は同じケイパビリティを二度接続しようとした場合のエラー
	ErrAlreadyAttached = errors.New("capability already attached")
	// ErrCapabilityMissing は前提となるケイパビリティが未接続の場合のエラー
	ErrCapabilityMissing = errors.New("required capability is not attached")
)

// Provider はアプリケーションに接続されるケイパビリティ
type Provider interface {
	Capability() Capability
	Attach(app *App) error
}

// AttachError は接続に失敗したケイパビリティと原因を保持する
type AttachError struct {
	Capability Capability
	Err        error
}

func (e *AttachError) Error() string {
	return fmt.Sprintf("failed to attach %s capability: %v", e.Capability, e.Err)
}

func (e *AttachError) Unwrap() error {
	return e.Err
}

// registryStep は接続手順の1ステップ
// predicateがnilの場合は常に実行される
type registryStep struct {
	provider  Provider
	predicate func() bool
}

// Registry はケイパビリティの接続手順を宣言順に保持する
// 接続は逐次的に行われ、並び替えや並列実行はしない
type Registry struct {
	steps    []registryStep
	attached []Capability
}

// NewRegistry は空のRegistryを作成します
func NewRegistry() *Registry {
	return &Registry{}
}

// Attach は無条件に接続するプロバイダーを追加します
func (r *Registry) Attach(p Provider) *Registry {
	r.steps = append(r.steps, registryStep{provider: p})
	return r
}

// AttachConditional はpredicateが成立する場合のみ接続するプロバイダーを追加します
func (r *Registry) AttachConditional(p Provider, predicate func() bool) *Registry {
	r.steps = append(r.steps, registryStep{provider: p, predicate: predicate})
	return r
}

// Apply は登録された順にプロバイダーを接続します
// 最初の失敗で残りのステップは実行せずにエラーを返す
func (r *Registry) Apply(app *App) error {
	for _, step := range r.steps {
		if step.predicate != nil && !step.predicate() {
			continue
		}

		capability := step.provider.Capability()
		if app.HasCapability(capability) {
			return &AttachError{Capability: capability, Err: ErrAlreadyAttached}
		}

		if err := step.provider.Attach(app); err != nil {
			return &AttachError{Capability: capability, Err: err}
		}

		app.markAttached(capability)
		r.attached = append(r.attached, capability)
	}
	return nil
}

// Attached は実際に接続されたケイパビリティを接続順に返します
func (r *Registry) Attached() []Capability {
	out := make([]Capability, len(r.attached))
	copy(out, r.attached)
	return out
}

// HasCapability は指定したケイパビリティが接続済みかどうかを返します
func (a *App) HasCapability(c Capability) bool {
	return a.attached[c]
}

func (a *App) markAttached(c Capability) {
	if a.attached == nil {
		a.attached = make(map[Capability]bool)
	}
	a.attached[c] = true
}

// requireCapability は前提となるケイパビリティの接続を確認します
func (a *App) requireCapability(c Capability) error {
	if !a.HasCapability(c) {
		return fmt.Errorf("%w: %s", ErrCapabilityMissing, c)
	}
	return nil
}
