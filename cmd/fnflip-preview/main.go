// fnflip-preview открывает окно со всеми состояниями значка FnFlip.
package main

import (
	"os"

	"gioui.org/app"
	flag "github.com/spf13/pflag"

	"fnflip/internal/iconkit"
	"fnflip/internal/preview"
	"fnflip/pkg/log"
)

func main() {
	spins := flag.Float64("spins", iconkit.DefaultStyle().SpinsPerSecond, "оборотов в секунду (отрицательное - по часовой)")
	fps := flag.Float64("fps", iconkit.DefaultStyle().FrameRate, "частота кадров")
	fontPath := flag.String("font", "", "TTF/OTF шрифт для надписи fn")
	flag.Parse()

	logger := log.New(false, "")

	style := iconkit.DefaultStyle()
	style.SpinsPerSecond = *spins
	style.FrameRate = *fps
	if *fontPath != "" {
		data, err := os.ReadFile(*fontPath)
		if err != nil {
			logger.Fatalw("Не удалось прочитать шрифт", "path", *fontPath, "error", err)
		}
		style.GlyphFont = data
	}

	w := preview.New(iconkit.NewRenderer(style))
	w.Show()
	go func() {
		w.Wait()
		os.Exit(0)
	}()

	// Окна gio требуют главного потока
	app.Main()
}
