package recording

import (
	"fmt"
	"slices"
)

// poseLandmarks are the pose landmark indices kept in a recording, in column order
var poseLandmarks = []int{0, 1, 4, 9, 10, 11, 12, 13, 14, 15, 16}

// handLandmarks is the number of landmarks tracked per hand
const handLandmarks = 21

var header = buildHeader()

func buildHeader() []string {
	cols := make([]string, 0, 2*(len(poseLandmarks)+2*handLandmarks))
	for _, i := range poseLandmarks {
		cols = append(cols, fmt.Sprintf("pose_%d_x", i), fmt.Sprintf("pose_%d_y", i))
	}
	for hand := 0; hand < 2; hand++ {
		for i := 0; i < handLandmarks; i++ {
			cols = append(cols, fmt.Sprintf("hand%d_%d_x", hand, i), fmt.Sprintf("hand%d_%d_y", hand, i))
		}
	}
	return cols
}

// Header returns the fixed column header of a landmarks recording.
// The order is part of the file format shared with existing recordings.
func Header() []string {
	return slices.Clone(header)
}

// ColumnCount returns the number of values a well-formed frame carries
func ColumnCount() int {
	return len(header)
}
