//go:build ignore

// Скрипт для генерации PNG всех состояний значка.
// Запуск: go run scripts/generate_icons.go [каталог] [угол]
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"fnflip/internal/iconkit"
)

func main() {
	dir := "build/icons"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	angle := 0.0
	if len(os.Args) > 2 {
		v, err := strconv.ParseFloat(os.Args[2], 64)
		if err != nil {
			log.Fatalf("Неверный угол %q: %v", os.Args[2], err)
		}
		angle = v
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	r := iconkit.NewRenderer(iconkit.DefaultStyle())
	for _, state := range iconkit.AllStates {
		data, err := r.PNG(state, angle)
		if err != nil {
			log.Fatalf("Ошибка генерации %s: %v", state, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("icon_%s.png", state))
		if err := os.WriteFile(path, data, 0644); err != nil {
			log.Fatalf("Ошибка записи %s: %v", path, err)
		}
		log.Printf("Создан: %s", path)
	}
}
