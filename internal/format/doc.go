// Package format holds the DOL formatter.
//
// Назначение: общая точка входа для fmt-команды и публичного API.
// Сейчас форматирование тождественное: вывод совпадает с входом байт в байт.
// Не делает: IO; чтение и запись файлов остаются в internal/driver.
package format
