package instance

import (
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"
)

type infoPlist struct {
	CFBundleIdentifier string `plist:"CFBundleIdentifier"`
}

// Identity возвращает идентификатор бандла, в котором лежит exe,
// а для голого бинарника - сам путь.
func Identity(exe string) string {
	if bundle := bundleDir(exe); bundle != "" {
		if id := bundleIdentifier(bundle); id != "" {
			return id
		}
	}
	return exe
}

// bundleDir находит каталог .app для пути вида X.app/Contents/MacOS/bin.
func bundleDir(exe string) string {
	macOS := filepath.Dir(exe)
	contents := filepath.Dir(macOS)
	app := filepath.Dir(contents)
	if filepath.Base(macOS) != "MacOS" || filepath.Base(contents) != "Contents" || !strings.HasSuffix(app, ".app") {
		return ""
	}
	return app
}

func bundleIdentifier(app string) string {
	data, err := os.ReadFile(filepath.Join(app, "Contents", "Info.plist"))
	if err != nil {
		return ""
	}
	var info infoPlist
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return ""
	}
	return info.CFBundleIdentifier
}
