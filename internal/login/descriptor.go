package login

import (
	"os"
	"path/filepath"

	"howett.net/plist"
)

// searchPath - PATH для процесса, запущенного launchd.
const searchPath = "/usr/bin:/bin:/usr/sbin:/sbin"

// Descriptor - содержимое LaunchAgent plist.
type Descriptor struct {
	Label                string            `plist:"Label"`
	RunAtLoad            bool              `plist:"RunAtLoad"`
	KeepAlive            bool              `plist:"KeepAlive"`
	ProcessType          string            `plist:"ProcessType"`
	ProgramArguments     []string          `plist:"ProgramArguments"`
	EnvironmentVariables map[string]string `plist:"EnvironmentVariables"`
}

// NewDescriptor описывает агент, запускающий program при входе в систему.
func NewDescriptor(label, program string) Descriptor {
	return Descriptor{
		Label:                label,
		RunAtLoad:            true,
		KeepAlive:            false,
		ProcessType:          "Interactive",
		ProgramArguments:     []string{program},
		EnvironmentVariables: map[string]string{"PATH": searchPath},
	}
}

// decodeDict читает plist как словарь. Ошибка - файл повреждён.
func decodeDict(data []byte) (map[string]interface{}, error) {
	var dict map[string]interface{}
	if _, err := plist.Unmarshal(data, &dict); err != nil {
		return nil, err
	}
	return dict, nil
}

// recordedProgram возвращает путь из ProgramArguments[0], иначе из Program.
func recordedProgram(dict map[string]interface{}) (string, bool) {
	if args, ok := dict["ProgramArguments"].([]interface{}); ok && len(args) > 0 {
		if first, ok := args[0].(string); ok {
			return first, true
		}
	}
	if prog, ok := dict["Program"].(string); ok {
		return prog, true
	}
	return "", false
}

func encodeXML(v interface{}) ([]byte, error) {
	return plist.MarshalIndent(v, plist.XMLFormat, "\t")
}

// writeAtomic пишет файл через временный файл и rename.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fnflip-*.plist")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
