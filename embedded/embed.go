// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// Credits - текст окна «О программе»; {shortcut} заменяется сочетанием клавиш.
//
//go:embed credits.txt
var Credits string
