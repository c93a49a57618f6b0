// Package fuzztests houses Go fuzz harnesses for the CSS and JSON front
// ends (source -> lexer -> parser -> tree). Its goal is to smoke test
// robustness: no panics, no hangs, and every tree reproduces its input.
//
// Назначение: прогонять произвольные байты через лексеры и парсеры и
// проверять инварианты дерева из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/css, internal/json, internal/lexer, internal/testkit.

package fuzztests
