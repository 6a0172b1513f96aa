package provider

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("provider.repository: provider not found")

	// ErrDuplicateID возвращается при создании провайдера с уже существующим ID
	ErrDuplicateID = errors.New("provider.repository: duplicate provider id")

	// ErrInvalidProvider возвращается при попытке сохранить провайдера без ID
	ErrInvalidProvider = errors.New("provider.repository: invalid provider")

	// ErrStorage возвращается при ошибках хранилища коллекций
	ErrStorage = errors.New("provider.repository: storage error")
)
