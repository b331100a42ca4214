package recording

// Frame is one row of landmark coordinates, already rendered as text.
// Values are kept exactly as the client sent them.
type Frame []string

// Aligned reports whether the frame has one value per header column
func (f Frame) Aligned() bool {
	return len(f) == ColumnCount()
}
