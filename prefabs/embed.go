package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed shaders/*.kage
var ShadersFS embed.FS

// Dir is the on-disk directory that overrides the embedded copies. Editing a
// file there and saving is enough for the watcher to pick it up.
var Dir = "prefabs"

// Load returns a prefab spec, preferring the on-disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript returns a tengo script from scripts/, preferring the on-disk copy.
func LoadScript(name string) ([]byte, error) {
	clean := cleanSubPath("scripts", name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// LoadShader returns Kage source from shaders/, preferring the on-disk copy.
func LoadShader(name string) ([]byte, error) {
	clean := cleanSubPath("shaders", name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ShadersFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPrefabPath(name)
	info, err := os.Stat(diskPrefabPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanSubPath(sub, path string) string {
	s := cleanPrefabPath(path)
	if s == "" {
		return ""
	}
	if after, ok := strings.CutPrefix(s, sub+"/"); ok {
		s = after
	}
	return sub + "/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
