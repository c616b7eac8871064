package iocli

//go:generate moq -out io_mock.go . IO

// IO ввод-вывод команд CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	// Confirm задает вопрос и возвращает true только на ответ y/yes
	Confirm(prompt string) (bool, error)
	// IsTerminal сообщает, что вывод идет в терминал и можно использовать цвет
	IsTerminal() bool
	Write(p []byte) (n int, err error)
}
