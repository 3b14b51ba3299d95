// Package reactive defines the contracts generated props code compiles
// against: single time-varying values, time-varying ordered collections,
// and the trivial always-constant implementations used for plain values
// and defaults.
//
// The package is deliberately small. It is not a full reactive library;
// any implementation of Value or Vec can be supplied to generated
// *Signal/*SignalVec setters, including ones from other libraries adapted
// behind these interfaces.
package reactive

// Value is a single value that may change over time. Watch delivers the
// current value immediately and again on every subsequent change until the
// returned stop function is called.
type Value[T any] interface {
	Get() T
	Watch(fn func(T)) (stop func())
}

// SyncValue is a Value that is safe to use from multiple goroutines.
// Implementations declare the marker method ConcurrencySafe, which does
// nothing; generated setters for sync-marked fields accept SyncValue
// instead of Value, so supplying a non-sync implementation is a compile
// error at the call site.
type SyncValue[T any] interface {
	Value[T]
	ConcurrencySafe()
}

// DeltaKind identifies one kind of incremental collection change.
type DeltaKind int

const (
	DeltaReplace DeltaKind = iota
	DeltaInsert
	DeltaUpdate
	DeltaRemove
	DeltaClear
)

// VecDelta is one incremental change to a Vec. Items is set for Replace,
// Index and Item for Insert and Update, Index for Remove.
type VecDelta[T any] struct {
	Kind  DeltaKind
	Index int
	Item  T
	Items []T
}

// Vec is an ordered sequence that may change over time. Changes replays
// the current state as a single Replace delta, then delivers incremental
// deltas until the returned stop function is called.
type Vec[T any] interface {
	Changes(fn func(VecDelta[T])) (stop func())
}

// SyncVec is a Vec that is safe to use from multiple goroutines.
type SyncVec[T any] interface {
	Vec[T]
	ConcurrencySafe()
}

type alwaysValue[T any] struct {
	v T
}

// Always wraps a plain value as a constant reactive value. The result is
// trivially safe for concurrent use.
func Always[T any](v T) SyncValue[T] {
	return alwaysValue[T]{v: v}
}

func (a alwaysValue[T]) Get() T {
	return a.v
}

func (a alwaysValue[T]) Watch(fn func(T)) func() {
	fn(a.v)
	return func() {}
}

func (alwaysValue[T]) ConcurrencySafe() {}

type alwaysVec[T any] struct {
	items []T
}

// AlwaysVec wraps a slice as a constant reactive collection. Observers see
// exactly one Replace delta carrying the items.
func AlwaysVec[T any](items []T) SyncVec[T] {
	return alwaysVec[T]{items: items}
}

func (a alwaysVec[T]) Changes(fn func(VecDelta[T])) func() {
	fn(VecDelta[T]{Kind: DeltaReplace, Items: append([]T(nil), a.items...)})
	return func() {}
}

func (alwaysVec[T]) ConcurrencySafe() {}
