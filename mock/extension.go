package mock

import "github.com/fwojciec/redline"

// Compile-time interface verification.
var (
	_ redline.Extension = (*Extension)(nil)
	_ redline.Disposer  = (*Extension)(nil)
)

// Extension is a mock implementation of redline.Extension and
// redline.Disposer. A nil DisposeFn makes Dispose a no-op.
type Extension struct {
	IDFn       func() string
	RegisterFn func(ctx redline.ExtensionContext) error
	DisposeFn  func()
}

func (e *Extension) ID() string {
	return e.IDFn()
}

func (e *Extension) Register(ctx redline.ExtensionContext) error {
	return e.RegisterFn(ctx)
}

func (e *Extension) Dispose() {
	if e.DisposeFn != nil {
		e.DisposeFn()
	}
}
