package kv

import "errors"

var (
	// ErrLoad возвращается при ошибке чтения коллекции
	ErrLoad = errors.New("kv.store: failed to load collection")

	// ErrSave возвращается при ошибке записи коллекции
	ErrSave = errors.New("kv.store: failed to save collection")

	// ErrDecode возвращается, когда сохраненный документ не удалось разобрать
	ErrDecode = errors.New("kv.store: failed to decode collection")

	// ErrEncode возвращается при ошибке сериализации коллекции
	ErrEncode = errors.New("kv.store: failed to encode collection")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("kv.store: failed to build query")

	// ErrSchemaMissing возвращается, когда таблица коллекций не создана (не применены миграции)
	ErrSchemaMissing = errors.New("kv.store: collections table is missing")
)
