// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки леджера (записи доходов/расходов)
var (
	// ErrInvalidAmount — некорректная сумма (ноль, отрицательная, мусор)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrCategoryTooLong — категория длиннее лимита
	ErrCategoryTooLong = errors.New("категория слишком длинная (максимум 64 символа)")
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
)

// Ошибки панели финансовых фактов (CoreX API)
var (
	// ErrFactsUnavailable — дашборд CoreX недоступен, фактов нет
	ErrFactsUnavailable = errors.New("финансовые данные временно недоступны")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrSessionExpired — сессия истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)
