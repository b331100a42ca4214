package recording

import (
	"fmt"
	"time"
)

const fileNamePrefix = "landmarks_recording_"

// FileName returns the recording filename for t, e.g.
// landmarks_recording_2024-01-01T00-00-00-000Z.csv (UTC, millisecond precision)
func FileName(t time.Time) string {
	t = t.UTC()
	millis := t.Nanosecond() / int(time.Millisecond)
	return fmt.Sprintf("%s%s-%03dZ.csv", fileNamePrefix, t.Format("2006-01-02T15-04-05"), millis)
}

// Path composes the label-relative path reported back to clients
func Path(label, fileName string) string {
	return label + "/" + fileName
}
