package quadtree

import "testing"

func TestRound(t *testing.T) {
	var tests = []struct {
		in, out int
	}{
		{2, 2},
		{4, 4},
		{7, 8},
		{1920, 2048},
	}
	for _, tt := range tests {
		if ret := round(tt.in); ret != tt.out {
			t.Errorf("round(%d) = %d, want %d", tt.in, ret, tt.out)
		}
	}
}

func TestGetReturnsClaimingMonitor(t *testing.T) {
	q := New(3840)
	q.Set(Region{0, 0, 1920, 1080}, 0)
	q.Set(Region{1920, 0, 1920, 1080}, 1)

	var tests = []struct {
		x, y int
		want int
	}{
		{0, 0, 0},
		{1919, 1079, 0},
		{1920, 0, 1},
		{3839, 1079, 1},
	}
	for _, tt := range tests {
		if got := q.Get(tt.x, tt.y); got != tt.want {
			t.Errorf("q.Get(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestUnclaimedPointReturnsNegativeOne(t *testing.T) {
	q := New(1024)
	if got := q.Get(500, 500); got != -1 {
		t.Errorf("q.Get on unclaimed tree = %d, want -1", got)
	}
}

func TestLaterSetOverwritesOverlappingEarlierOne(t *testing.T) {
	q := New(1024)
	q.Set(Region{0, 0, 1024, 1024}, 0)
	q.Set(Region{512, 0, 512, 1024}, 1)

	if got := q.Get(0, 0); got != 0 {
		t.Errorf("q.Get(0, 0) = %d, want 0", got)
	}
	if got := q.Get(600, 0); got != 1 {
		t.Errorf("q.Get(600, 0) = %d, want 1", got)
	}
}
