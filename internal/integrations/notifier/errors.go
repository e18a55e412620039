package notifier

import "errors"

var (
	// ErrNoAddress возвращается, когда у клиента нет ни телефона, ни email
	ErrNoAddress = errors.New("notifier: customer has no contact address")

	// ErrSend возвращается при ошибке доставки сообщения провайдером
	ErrSend = errors.New("notifier: failed to send message")

	// ErrUnsupportedAddress адрес не подходит для выбранного провайдера
	ErrUnsupportedAddress = errors.New("notifier: address is not supported by provider")
)
