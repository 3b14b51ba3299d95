package reactive

import "sync"

// Mutable is a settable Value for single-goroutine use. It intentionally
// does not carry the ConcurrencySafe marker, which makes it unusable with
// generated setters for sync-marked fields.
type Mutable[T any] struct {
	value    T
	watchers map[int]func(T)
	next     int
}

// NewMutable creates a Mutable holding v.
func NewMutable[T any](v T) *Mutable[T] {
	return &Mutable[T]{value: v}
}

func (m *Mutable[T]) Get() T {
	return m.value
}

// Set stores v and notifies watchers.
func (m *Mutable[T]) Set(v T) {
	m.value = v
	for _, fn := range m.watchers {
		fn(v)
	}
}

func (m *Mutable[T]) Watch(fn func(T)) func() {
	if m.watchers == nil {
		m.watchers = make(map[int]func(T))
	}
	id := m.next
	m.next++
	m.watchers[id] = fn
	fn(m.value)
	return func() {
		delete(m.watchers, id)
	}
}

// SyncMutable is a settable Value guarded by a mutex. It carries the
// ConcurrencySafe marker.
type SyncMutable[T any] struct {
	mu    sync.Mutex
	inner Mutable[T]
}

// NewSyncMutable creates a SyncMutable holding v.
func NewSyncMutable[T any](v T) *SyncMutable[T] {
	return &SyncMutable[T]{inner: Mutable[T]{value: v}}
}

func (m *SyncMutable[T]) Get() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Get()
}

func (m *SyncMutable[T]) Set(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inner.Set(v)
}

func (m *SyncMutable[T]) Watch(fn func(T)) func() {
	m.mu.Lock()
	stop := m.inner.Watch(fn)
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		stop()
	}
}

func (*SyncMutable[T]) ConcurrencySafe() {}

// MutableVec is a mutable ordered sequence for single-goroutine use. Like
// Mutable it does not carry the ConcurrencySafe marker.
type MutableVec[T any] struct {
	items    []T
	watchers map[int]func(VecDelta[T])
	next     int
}

// NewMutableVec creates a MutableVec holding items.
func NewMutableVec[T any](items []T) *MutableVec[T] {
	return &MutableVec[T]{items: append([]T(nil), items...)}
}

// Items returns a copy of the current sequence.
func (m *MutableVec[T]) Items() []T {
	return append([]T(nil), m.items...)
}

// Push appends item and notifies watchers with an Insert delta.
func (m *MutableVec[T]) Push(item T) {
	m.items = append(m.items, item)
	m.notify(VecDelta[T]{Kind: DeltaInsert, Index: len(m.items) - 1, Item: item})
}

// Update replaces the item at index and notifies watchers.
func (m *MutableVec[T]) Update(index int, item T) {
	m.items[index] = item
	m.notify(VecDelta[T]{Kind: DeltaUpdate, Index: index, Item: item})
}

// Remove deletes the item at index and notifies watchers.
func (m *MutableVec[T]) Remove(index int) {
	m.items = append(m.items[:index], m.items[index+1:]...)
	m.notify(VecDelta[T]{Kind: DeltaRemove, Index: index})
}

// Replace swaps the whole sequence and notifies watchers.
func (m *MutableVec[T]) Replace(items []T) {
	m.items = append([]T(nil), items...)
	m.notify(VecDelta[T]{Kind: DeltaReplace, Items: m.Items()})
}

// Clear empties the sequence and notifies watchers.
func (m *MutableVec[T]) Clear() {
	m.items = nil
	m.notify(VecDelta[T]{Kind: DeltaClear})
}

func (m *MutableVec[T]) Changes(fn func(VecDelta[T])) func() {
	if m.watchers == nil {
		m.watchers = make(map[int]func(VecDelta[T]))
	}
	id := m.next
	m.next++
	m.watchers[id] = fn
	fn(VecDelta[T]{Kind: DeltaReplace, Items: m.Items()})
	return func() {
		delete(m.watchers, id)
	}
}

func (m *MutableVec[T]) notify(delta VecDelta[T]) {
	for _, fn := range m.watchers {
		fn(delta)
	}
}

// SyncMutableVec is a MutableVec guarded by a mutex, carrying the
// ConcurrencySafe marker.
type SyncMutableVec[T any] struct {
	mu    sync.Mutex
	inner MutableVec[T]
}

// NewSyncMutableVec creates a SyncMutableVec holding items.
func NewSyncMutableVec[T any](items []T) *SyncMutableVec[T] {
	return &SyncMutableVec[T]{inner: MutableVec[T]{items: append([]T(nil), items...)}}
}

// Items returns a copy of the current sequence.
func (m *SyncMutableVec[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Items()
}

// Push appends item and notifies watchers.
func (m *SyncMutableVec[T]) Push(item T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inner.Push(item)
}

// Replace swaps the whole sequence and notifies watchers.
func (m *SyncMutableVec[T]) Replace(items []T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inner.Replace(items)
}

func (m *SyncMutableVec[T]) Changes(fn func(VecDelta[T])) func() {
	m.mu.Lock()
	stop := m.inner.Changes(fn)
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		stop()
	}
}

func (*SyncMutableVec[T]) ConcurrencySafe() {}
