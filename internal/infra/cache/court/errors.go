package court

import "errors"

var (
	// ErrCacheMiss возвращается, когда корта нет в кэше
	ErrCacheMiss = errors.New("court.cache: cache miss")

	// ErrCache возвращается при ошибках Redis
	ErrCache = errors.New("court.cache: redis error")

	// ErrEncode возвращается при ошибке (де)сериализации снимка корта
	ErrEncode = errors.New("court.cache: failed to encode entry")
)
