package recording

import "testing"

func TestHeader(t *testing.T) {
	h := Header()

	if len(h) != 106 {
		t.Fatalf("expected 106 columns, got %d", len(h))
	}
	if ColumnCount() != len(h) {
		t.Errorf("ColumnCount() = %d, want %d", ColumnCount(), len(h))
	}

	checks := map[int]string{
		0:   "pose_0_x",
		1:   "pose_0_y",
		4:   "pose_4_x",
		21:  "pose_16_y",
		22:  "hand0_0_x",
		63:  "hand0_20_y",
		64:  "hand1_0_x",
		105: "hand1_20_y",
	}
	for idx, want := range checks {
		if h[idx] != want {
			t.Errorf("Header()[%d] = %q, want %q", idx, h[idx], want)
		}
	}
}

func TestHeader_ReturnsCopy(t *testing.T) {
	h := Header()
	h[0] = "mutated"

	if Header()[0] != "pose_0_x" {
		t.Error("mutating the returned header changed the schema")
	}
}

func TestFrame_Aligned(t *testing.T) {
	if (Frame{"1", "2"}).Aligned() {
		t.Error("expected short frame to be misaligned")
	}
	if !make(Frame, ColumnCount()).Aligned() {
		t.Error("expected full frame to be aligned")
	}
}
