package cursor

import "testing"

func TestNew(t *testing.T) {
	c := New(3)
	if c.Pos() != 0 {
		t.Errorf("New() pos = %d, want 0", c.Pos())
	}
	if c.Offset() != 0 {
		t.Errorf("New() offset = %d, want 0", c.Offset())
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		initial    int
		delta      int
		len        int
		height     int
		wantPos    int
		wantOffset int
	}{
		{
			name:       "move down within bounds no scroll",
			margin:     2,
			initial:    0,
			delta:      1,
			len:        10,
			height:     5,
			wantPos:    1,
			wantOffset: 0,
		},
		{
			name:       "move down triggers scroll with margin",
			margin:     2,
			initial:    0,
			delta:      3,
			len:        10,
			height:     5,
			wantPos:    3,
			wantOffset: 1,
		},
		{
			name:       "move up clamps to 0",
			margin:     2,
			initial:    2,
			delta:      -5,
			len:        10,
			height:     5,
			wantPos:    0,
			wantOffset: 0,
		},
		{
			name:       "move down clamps to len-1",
			margin:     2,
			initial:    8,
			delta:      5,
			len:        10,
			height:     5,
			wantPos:    9,
			wantOffset: 5,
		},
		{
			name:       "empty list is noop",
			margin:     2,
			initial:    0,
			delta:      1,
			len:        0,
			height:     5,
			wantPos:    0,
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.Jump(tt.initial, max(tt.len, 1), tt.height)
			c.Move(tt.delta, tt.len, tt.height)
			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestJumpStartEnd(t *testing.T) {
	c := New(2)
	c.JumpEnd(20, 5)
	if c.Pos() != 19 {
		t.Errorf("JumpEnd pos = %d, want 19", c.Pos())
	}
	if c.Offset() != 15 {
		t.Errorf("JumpEnd offset = %d, want 15", c.Offset())
	}

	c.JumpStart()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("JumpStart pos/offset = %d/%d, want 0/0", c.Pos(), c.Offset())
	}
}

func TestClampToBounds(t *testing.T) {
	c := New(2)
	c.Jump(9, 10, 5)

	if changed := c.ClampToBounds(4); !changed {
		t.Error("ClampToBounds should report change when list shrinks")
	}
	if c.Pos() != 3 {
		t.Errorf("pos = %d, want 3", c.Pos())
	}

	if changed := c.ClampToBounds(0); !changed {
		t.Error("ClampToBounds should report change on empty list")
	}
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("pos/offset = %d/%d, want 0/0", c.Pos(), c.Offset())
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(2)
	c.Jump(7, 20, 5)

	start, end := c.VisibleRange(20, 5)
	if end-start != 5 {
		t.Errorf("visible window = %d, want 5", end-start)
	}
	if c.Pos() < start || c.Pos() >= end {
		t.Errorf("cursor %d outside visible range [%d,%d)", c.Pos(), start, end)
	}

	start, end = c.VisibleRange(0, 5)
	if start != 0 || end != 0 {
		t.Errorf("empty list range = [%d,%d), want [0,0)", start, end)
	}
}

func TestHandleKey(t *testing.T) {
	c := New(2)

	if !c.HandleKey("j", 10, 5) {
		t.Error("j should be handled")
	}
	if c.Pos() != 1 {
		t.Errorf("pos after j = %d, want 1", c.Pos())
	}

	if !c.HandleKey("G", 10, 5) {
		t.Error("G should be handled")
	}
	if c.Pos() != 9 {
		t.Errorf("pos after G = %d, want 9", c.Pos())
	}

	if !c.HandleKey("g", 10, 5) {
		t.Error("g should be handled")
	}
	if c.Pos() != 0 {
		t.Errorf("pos after g = %d, want 0", c.Pos())
	}

	if c.HandleKey("x", 10, 5) {
		t.Error("x should not be handled")
	}
}
