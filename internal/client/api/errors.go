package api

import "fmt"

// TransportError означает, что обмен с сервером не состоялся целиком:
// сеть недоступна, истек таймаут, сервер ответил не-2xx или прислал нечитаемое тело.
// Для движка синхронизации это отказ всего пакета.
type TransportError struct {
	Err        error
	StatusCode int // StatusCode HTTP статус, 0 если ответа не было
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
