package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Dir is the on-disk prefab directory watched for edits. Files found there
// shadow the copies built into the binary.
const Dir = "prefabs"

// ScriptsDir holds behaviour scripts, relative to Dir.
const ScriptsDir = "scripts"

//go:embed *.yaml scripts/*.tengo
var builtin embed.FS

// Load reads a prefab file by name ("world.yaml", "prefabs/world.yaml").
func Load(name string) ([]byte, error) {
	return read(relPrefab(name))
}

// LoadScript reads a behaviour script. Bare names resolve under scripts/.
func LoadScript(name string) ([]byte, error) {
	return read(relScript(name))
}

// ModTime reports when the disk copy of a prefab last changed. Built-in
// files without a disk copy report false.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(onDisk(relPrefab(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func read(rel string) ([]byte, error) {
	if rel == "" {
		return nil, fs.ErrNotExist
	}
	if data, err := os.ReadFile(onDisk(rel)); err == nil {
		return data, nil
	}
	return builtin.ReadFile(rel)
}

// relPrefab turns a caller's path into one relative to Dir, in slash form.
func relPrefab(name string) string {
	if name == "" {
		return ""
	}
	s := path.Clean(filepath.ToSlash(name))
	return strings.TrimPrefix(s, Dir+"/")
}

func relScript(name string) string {
	s := relPrefab(name)
	if s == "" {
		return ""
	}
	return path.Join(ScriptsDir, strings.TrimPrefix(s, ScriptsDir+"/"))
}

func onDisk(rel string) string {
	return filepath.Join(Dir, filepath.FromSlash(rel))
}
