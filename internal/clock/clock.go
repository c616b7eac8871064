// Package clock содержит источники времени для штампов client_updated_at
// и серверных updated_at.
package clock

import (
	"sync"
	"time"
)

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// System возвращает реальное время в UTC
type System struct{}

// Now реализует Clock
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Monotonic выдает строго возрастающие штампы поверх базовых часов.
// Если базовые часы вернули время не позже предыдущего штампа
// (перевод часов, одинаковое значение), штамп сдвигается на 1ns вперед.
type Monotonic struct {
	base Clock
	last time.Time  // последний выданный штамп
	mu   sync.Mutex // мьютекс для потокобезопасности
}

// NewMonotonic создает монотонные часы поверх base.
// nil base означает системные часы.
func NewMonotonic(base Clock) *Monotonic {
	if base == nil {
		base = System{}
	}
	return &Monotonic{base: base}
}

// Now возвращает новый штамп, строго больший всех предыдущих
func (m *Monotonic) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Round(0) убирает показания monotonic clock, чтобы штамп сравнивался как wall time
	now := m.base.Now().UTC().Round(0)
	if !now.After(m.last) {
		now = m.last.Add(time.Nanosecond)
	}
	m.last = now

	return now
}

// Observe учитывает внешний штамп: следующие значения Now будут строго больше него.
// Используется при старте, чтобы продолжить последовательность после перезапуска.
func (m *Monotonic) Observe(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.After(m.last) {
		m.last = t.UTC()
	}
}

// Last возвращает последний выданный или учтенный штамп
func (m *Monotonic) Last() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.last
}

// Fake управляемые вручную часы для тестов
type Fake struct {
	now time.Time
	mu  sync.Mutex
}

// NewFake создает часы, показывающие start
func NewFake(start time.Time) *Fake {
	return &Fake{now: start.UTC()}
}

// Now реализует Clock
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

// Advance сдвигает часы на d
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

// Set устанавливает текущее время
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = t.UTC()
}
