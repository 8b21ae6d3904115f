// Package exchange реализует ядро жеребьёвки обмена подарками: быструю
// структурную проверку выполнимости и генерацию случайной перестановки
// "даритель -> получатель" без самоназначений и без пар внутри одной группы.
//
// Пакет не хранит состояния и не изменяет входные данные: все функции
// работают над снимком списка участников и возвращают новые значения.
// Единственный разделяемый объект, randomizer, обязан быть потокобезопасным.
package exchange
