package configutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// ReadConfig loads `name` and, when one exists, merges
// `<name minus ext>.local.<ext>` over it. The local layer wins on
// conflicts, which keeps secrets and per-machine tweaks out of the
// committed file. Returns os.ErrNotExist when neither layer exists.
func ReadConfig[T any](name string) (T, error) {
	out, baseFound, err := readLayer[T](name)
	if err != nil {
		return out, err
	}

	local := localName(name)
	override, localFound, err := readLayer[T](local)
	if err != nil {
		return out, err
	}
	if localFound {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", local)
	}

	if !baseFound && !localFound {
		return out, os.ErrNotExist
	}
	return out, nil
}

// config.json5 -> config.local.json5
func localName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// reads and decodes one config layer, a missing or empty file is not
// an error, it just reports found=false
func readLayer[T any](path string) (out T, found bool, err error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, false, nil
		}
		return out, false, err
	}
	if len(contents) == 0 {
		return out, false, nil
	}

	err = json5.Unmarshal(contents, &out)
	if err != nil {
		return out, false, err
	}
	return out, true, nil
}

// ReadRecursively walks from the cwd up to the filesystem root and
// returns the first config matching `name`.
func ReadRecursively[T any](name string) (T, error) {
	var out T

	dir, err := os.Getwd()
	if err != nil {
		return out, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(dir, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return out, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return out, os.ErrNotExist
		}
		dir = parent
	}
}
