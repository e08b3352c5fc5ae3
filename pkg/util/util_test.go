package util

import "testing"

func TestReverseG(t *testing.T) {
	arr := []int64{1, 2, 3, 4}
	rev := ReverseG(arr)

	if rev[0] != 4 || rev[3] != 1 {
		t.Errorf("ReverseG wrong order: %v", rev)
	}
	if arr[0] != 1 {
		t.Errorf("ReverseG mutated its input: %v", arr)
	}
}
