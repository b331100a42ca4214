package upload

import (
	"fmt"
	"strings"
)

// MaxRenameAttempts bounds the " (n)" suffixes probed for a free name
const MaxRenameAttempts = 999

// RenamedName inserts " (n)" before the extension of name:
// "photo.png" -> "photo (3).png", "README" -> "README (1)".
// Leading dots do not start an extension, so ".env" -> ".env (1)".
func RenamedName(name string, n int) string {
	base, ext := splitExt(name)
	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}

// splitExt splits at the final dot, ignoring dots that only lead the name
func splitExt(name string) (base, ext string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || strings.TrimLeft(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}
