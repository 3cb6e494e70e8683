package cantype

import (
	"sync"
	"sync/atomic"

	"github.com/aretw0/cantype/pkg/schema"
)

// LateType is a type whose marker is produced by a thunk on first use. It
// lets two declarations refer to each other before both exist.
type LateType struct {
	factory *Factory

	once     sync.Once
	done     atomic.Bool
	thunk    func() (TypeObject, error)
	resolved TypeObject
	err      error
}

var _ TypeObject = (*LateType)(nil)

// Late wraps thunk without calling it. The first operation on the returned
// type calls thunk exactly once and normalizes its result; every later
// operation is forwarded to that TypeObject.
func (f *Factory) Late(thunk func() any) *LateType {
	return &LateType{factory: f, thunk: func() (TypeObject, error) {
		return f.Normalize(thunk())
	}}
}

// lateVariant applies policy p to whatever l resolves to, without running
// l's thunk now.
func (f *Factory) lateVariant(p Policy, l *LateType) *LateType {
	return &LateType{factory: f, thunk: func() (TypeObject, error) {
		t, err := l.Resolve()
		if err != nil {
			return nil, err
		}
		return f.Variant(p, t), nil
	}}
}

// Resolve calls the thunk if needed and returns the memoized result.
func (l *LateType) Resolve() (TypeObject, error) {
	l.once.Do(l.resolve)
	return l.resolved, l.err
}

// IsResolved reports whether the thunk has run, without running it.
func (l *LateType) IsResolved() bool {
	return l.done.Load()
}

func (l *LateType) resolve() {
	// A thunk that panics leaves ErrUnresolved behind.
	l.err = ErrUnresolved
	defer l.done.Store(true)
	f := l.factory

	l.resolved, l.err = l.thunk()
	l.thunk = nil

	if l.err != nil {
		f.logger.Warn("late type failed to resolve", "error", l.err)
		emit(f.hooks.OnResolve, &TypeEvent{Policy: "late", Err: l.err})
		return
	}
	f.logger.Debug("late type resolved", "type", l.resolved.Name())
	emit(f.hooks.OnResolve, &TypeEvent{Policy: "late", Name: l.resolved.Name()})
}

func (l *LateType) Name() string {
	t, err := l.Resolve()
	if err != nil {
		return "late"
	}
	return t.Name()
}

func (l *LateType) IsMember(value any) bool {
	t, err := l.Resolve()
	if err != nil {
		return false
	}
	return t.IsMember(value)
}

func (l *LateType) New(value any) (any, error) {
	t, err := l.Resolve()
	if err != nil {
		return nil, err
	}
	return t.New(value)
}

func (l *LateType) Schema() schema.Schema {
	t, err := l.Resolve()
	if err != nil {
		return schema.Schema{}
	}
	return t.Schema()
}

func (l *LateType) Marker() any {
	t, err := l.Resolve()
	if err != nil {
		return nil
	}
	return t.Marker()
}

func (l *LateType) IsStrict() bool {
	t, err := l.Resolve()
	return err == nil && t.IsStrict()
}

func (l *LateType) IsNullable() bool {
	t, err := l.Resolve()
	return err == nil && t.IsNullable()
}
