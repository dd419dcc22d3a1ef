// Package keymap holds the table that turns integer property keys into
// JSON member names.
package keymap

import (
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// MaxKey bounds the keys accepted by Load. The table is indexed by key, so
// its size follows the largest key.
const MaxKey = 1 << 20

// KeyMap maps a key, used as index, to its candidate names. Each position in
// a candidate list is a naming variant, for example a full and a minimal
// name for the same field. An empty candidate means the key has no name in
// that variant.
//
// A KeyMap is read-only once built and may be shared by any number of
// documents.
type KeyMap [][]string

// Names returns the candidates for key, or nil if the key is unmapped.
func (m KeyMap) Names(key int) []string {
	if key < 0 || key >= len(m) {
		return nil
	}
	return m[key]
}

// Lookup returns the name of key in the given variant.
func (m KeyMap) Lookup(key, variant int) (string, bool) {
	names := m.Names(key)
	if variant < 0 || variant >= len(names) || names[variant] == "" {
		return "", false
	}
	return names[variant], true
}

// Resolve returns the member name for key in the given variant. It never
// fails: when the variant has no name the first non-empty candidate is
// used, and when there is none the decimal form of key. exact reports
// whether the name came from the requested variant.
func (m KeyMap) Resolve(key, variant int) (name string, exact bool) {
	if name, ok := m.Lookup(key, variant); ok {
		return name, true
	}
	for _, n := range m.Names(key) {
		if n != "" {
			return n, false
		}
	}
	return strconv.Itoa(key), false
}

// Variants returns the length of the longest candidate list.
func (m KeyMap) Variants() int {
	n := 0
	for _, names := range m {
		n = max(n, len(names))
	}
	return n
}

// Load reads a key table from YAML. The document is a mapping from key to
// the list of candidate names:
//
//	1: [ok]
//	7: [lat, latitude]
func Load(r io.Reader) (KeyMap, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading key map")
	}

	var raw map[int][]string
	if err := yaml.UnmarshalStrict(buf, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing key map")
	}

	size := 0
	for key := range raw {
		if key < 0 {
			return nil, errors.Errorf("invalid key %d: keys must not be negative", key)
		}
		if key >= MaxKey {
			return nil, errors.Errorf("invalid key %d: keys must be below %d", key, MaxKey)
		}
		size = max(size, key+1)
	}

	m := make(KeyMap, size)
	for key, names := range raw {
		m[key] = names
	}
	return m, nil
}

// LoadFile reads a key table from the YAML file at path.
func LoadFile(path string) (KeyMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening key map %s", path)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading key map %s", path)
	}
	return m, nil
}

// LoadFiles loads and merges the key tables at paths. Later files take
// precedence for keys present in more than one file.
func LoadFiles(paths ...string) (KeyMap, error) {
	ms := make([]KeyMap, 0, len(paths))
	for _, path := range paths {
		m, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return Merge(ms...), nil
}

// Merge returns a new table holding the keys of all ms. For a key mapped in
// several tables the candidates of the last one win.
func Merge(ms ...KeyMap) KeyMap {
	size := 0
	for _, m := range ms {
		size = max(size, len(m))
	}
	out := make(KeyMap, size)
	for _, m := range ms {
		for key, names := range m {
			if names != nil {
				out[key] = names
			}
		}
	}
	return out
}
