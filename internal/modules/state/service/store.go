package service

import "context"

// Store: персистентное состояние индикаторов: ключ -> последнее значение.
type Store interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, value float64) error
}

// GetOr возвращает значение ключа или def, если ключа нет или он не читается.
func GetOr(ctx context.Context, s Store, key string, def float64) float64 {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return def
	}
	return v
}
