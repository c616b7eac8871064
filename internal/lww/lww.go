// Package lww реализует правила Last-Write-Wins на уровне целой записи.
// Поля не сливаются: побеждает копия с большим временем изменения.
package lww

import "time"

// Decision результат сравнения входящей записи с сохраненной на сервере
type Decision int

const (
	// Accept входящая запись строго новее - перезаписываем
	Accept Decision = iota
	// Replay входящая запись совпадает по версии с сохраненной (повторная доставка) - no-op успех
	Replay
	// Conflict сохраненная запись не старее входящей - отклоняем
	Conflict
)

// String возвращает человекочитаемое имя решения
func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Replay:
		return "replay"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Resolve применяет серверное правило push: входящая версия принимается только если
// она строго новее сохраненной. Совпадающая версия считается повторной доставкой
// той же записи (клиент повторил batch после потерянного ответа).
func Resolve(incoming, stored time.Time) Decision {
	switch {
	case incoming.After(stored):
		return Accept
	case incoming.Equal(stored):
		return Replay
	default:
		return Conflict
	}
}

// ResolveCreate применяет правило push для create записи, уже известной серверу по client_id.
// Клиент выпускает create один раз на запись, поэтому не более новая версия означает
// повторную доставку, даже если сервер успел принять последующие update.
func ResolveCreate(incoming, stored time.Time) Decision {
	if incoming.After(stored) {
		return Accept
	}
	return Replay
}

// ServerWins применяет клиентское правило pull: серверная версия применяется,
// если она не старее локальной. При равенстве побеждает сервер.
func ServerWins(server, local time.Time) bool {
	return !server.Before(local)
}

// Latest возвращает больший из двух штампов
func Latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
