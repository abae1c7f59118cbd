package sessionstore

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не существует или истекла
	ErrSessionNotFound = errors.New("sessionstore: session not found or expired")

	// ErrEncode возвращается при ошибке сериализации сессии
	ErrEncode = errors.New("sessionstore: failed to encode session")

	// ErrDecode возвращается при ошибке десериализации сессии
	ErrDecode = errors.New("sessionstore: failed to decode session")

	// ErrStorage возвращается при ошибке обращения к хранилищу
	ErrStorage = errors.New("sessionstore: storage error")
)
