package models

import "errors"

var (
	// ErrFetchFailure: не удалось получить свечи (сеть/парсинг), цикл прерывается.
	ErrFetchFailure = errors.New("fetch failure")
	// ErrInsufficientData: свечей меньше, чем нужно индикатору. Не ошибка цикла.
	// Попадает в логи как причина пропуска модуля.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidMode: нераспознанный режим, цикл пропускается.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrPersistenceCorruption: данные состояния битые, считаем его пустым.
	// Сбой чтения (сеть, права) сюда не относится.
	ErrPersistenceCorruption = errors.New("persistence corruption")
)
