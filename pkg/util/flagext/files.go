package flagext

import (
	"strings"
)

// Files collects a repeatable file flag.
type Files []string

// String implements flag.Value
// Format: file1.yaml,file2.yaml
func (f *Files) String() string {
	return strings.Join(*f, ",")
}

// Set implements flag.Value. Each occurrence of the flag adds one file;
// a comma separated value adds several.
func (f *Files) Set(value string) error {
	for _, path := range strings.Split(value, ",") {
		if path = strings.TrimSpace(path); path != "" {
			*f = append(*f, path)
		}
	}
	return nil
}
