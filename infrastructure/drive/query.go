package drive

import (
	"fmt"
	"strings"

	"drive-upload-services/domain/storage"
)

var queryEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// escapeQuery escapes a value for use inside a single-quoted Drive query string
func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

// folderQuery matches non-trashed folders named name directly under parentID
func folderQuery(parentID, name string) string {
	return fmt.Sprintf("mimeType='%s' and trashed=false and name='%s' and '%s' in parents",
		storage.MimeTypeFolder, escapeQuery(name), escapeQuery(parentID))
}

// fileByNameQuery matches non-trashed, non-folder files named name directly under folderID
func fileByNameQuery(folderID, name string) string {
	return fmt.Sprintf("mimeType!='%s' and trashed=false and name='%s' and '%s' in parents",
		storage.MimeTypeFolder, escapeQuery(name), escapeQuery(folderID))
}
