// Package fuzztests houses Go fuzz harnesses for the checking pipeline
// (source -> lexer -> detectors). They smoke test robustness against panics
// and broken positions on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и
// полный набор детекторов со встроенными таблицами.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/rules,
// internal/detector, internal/driver, internal/testkit.
package fuzztests
