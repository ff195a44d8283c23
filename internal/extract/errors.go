// Package extract содержит эвристическое извлечение расписания из HTML.
package extract

import "errors"

// Типизированные ошибки извлечения. Отсутствие данных и сбой считаются
// разными исходами: пустой результат без ошибки пайплайн не возвращает.
var (
	// ErrAuthRequired сайт перенаправил на форму входа
	ErrAuthRequired = errors.New("site requires authentication")

	// ErrNoTableFound ни одна таблица не похожа на расписание
	ErrNoTableFound = errors.New("no schedule table found on page")

	// ErrInsufficientColumns не удалось определить колонки предмета и группы/преподавателя
	ErrInsufficientColumns = errors.New("insufficient table structure: subject and group or teacher columns are required")

	// ErrNoRecordsExtracted таблица найдена, но ни одна строка не прошла проверки
	ErrNoRecordsExtracted = errors.New("no schedule records extracted")
)
