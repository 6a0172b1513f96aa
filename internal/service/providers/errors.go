package providers

import "errors"

var (
	// ErrProviderAlreadyExists возвращается при создании провайдера с занятым ID
	ErrProviderAlreadyExists = errors.New("provider already exists")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
