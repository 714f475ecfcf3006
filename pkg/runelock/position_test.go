package runelock

import "testing"

type pair struct{ a, b int }

// testPairs checks a relation against an exhaustively enumerated truth
// table: every (a, b) in [0,12)^2 must match exactly the pass set.
func testPairs(t *testing.T, pass map[pair]bool, relation func(a, b Position) bool) {
	t.Helper()
	for a := 0; a < RingSize; a++ {
		for b := 0; b < RingSize; b++ {
			expected := pass[pair{a, b}]
			actual := relation(Position(a), Position(b))
			if actual != expected {
				t.Errorf("relation(%d, %d) = %v, want %v", a, b, actual, expected)
			}
		}
	}
}

func pairSet(pairs ...pair) map[pair]bool {
	set := make(map[pair]bool, len(pairs))
	for _, p := range pairs {
		set[p] = true
	}
	return set
}

func TestAntakianConjugateOf(t *testing.T) {
	testPairs(t, pairSet(
		pair{0, 3}, pair{1, 4}, pair{2, 5},
		pair{3, 0}, pair{4, 1}, pair{5, 2},
		pair{6, 9}, pair{7, 10}, pair{8, 11},
		pair{9, 6}, pair{10, 7}, pair{11, 8},
	), func(a, b Position) bool { return a.AntakianConjugateOf(b) })
}

func TestAntakianConjugatePartner(t *testing.T) {
	want := map[Position]Position{
		0: 3, 1: 4, 2: 5, 3: 0, 4: 1, 5: 2,
		6: 9, 7: 10, 8: 11, 9: 6, 10: 7, 11: 8,
	}
	for p, conjugate := range want {
		if got := p.AntakianConjugate(); got != conjugate {
			t.Errorf("AntakianConjugate(%d) = %d, want %d", p, got, conjugate)
		}
	}
}

func TestAlwaneseOf(t *testing.T) {
	testPairs(t, pairSet(
		pair{0, 1}, pair{0, 2}, pair{0, 7}, pair{0, 8},
		pair{6, 1}, pair{6, 2}, pair{6, 7}, pair{6, 8},
		pair{1, 2}, pair{1, 3}, pair{1, 8}, pair{1, 9},
		pair{7, 2}, pair{7, 3}, pair{7, 8}, pair{7, 9},
		pair{2, 3}, pair{2, 4}, pair{2, 9}, pair{2, 10},
		pair{8, 3}, pair{8, 4}, pair{8, 9}, pair{8, 10},
		pair{3, 4}, pair{3, 5}, pair{3, 10}, pair{3, 11},
		pair{9, 4}, pair{9, 5}, pair{9, 10}, pair{9, 11},
		pair{4, 5}, pair{4, 0}, pair{4, 11}, pair{4, 6},
		pair{10, 5}, pair{10, 0}, pair{10, 11}, pair{10, 6},
		pair{5, 0}, pair{5, 1}, pair{5, 6}, pair{5, 7},
		pair{11, 0}, pair{11, 1}, pair{11, 6}, pair{11, 7},
	), func(a, b Position) bool { return b.AlwaneseOf(a) })
}

func TestAlwaneseConjugateOf(t *testing.T) {
	testPairs(t, pairSet(
		pair{0, 3}, pair{0, 9},
		pair{1, 4}, pair{1, 10},
		pair{2, 5}, pair{2, 11},
		pair{3, 0}, pair{3, 6},
		pair{4, 1}, pair{4, 7},
		pair{5, 2}, pair{5, 8},
		pair{6, 9}, pair{6, 3},
		pair{7, 10}, pair{7, 4},
		pair{8, 11}, pair{8, 5},
		pair{9, 6}, pair{9, 0},
		pair{10, 7}, pair{10, 1},
		pair{11, 8}, pair{11, 2},
	), func(a, b Position) bool { return a.AlwaneseConjugateOf(b) })
}

func TestAntakianTwinOf(t *testing.T) {
	pass := make(map[pair]bool)
	for a := 0; a < halfSize; a++ {
		for b := 0; b < halfSize; b++ {
			pass[pair{a, b}] = true
			pass[pair{a + halfSize, b + halfSize}] = true
		}
	}
	testPairs(t, pass, func(a, b Position) bool { return a.AntakianTwinOf(b) })
}

func TestMax0ConductiveWith(t *testing.T) {
	pass := make(map[pair]bool)
	for n := 0; n < halfSize; n++ {
		// Neighbours along each ring, both directions.
		pass[pair{n, (n + 1) % halfSize}] = true
		pass[pair{(n + 1) % halfSize, n}] = true
		pass[pair{n + halfSize, (n+1)%halfSize + halfSize}] = true
		pass[pair{(n+1)%halfSize + halfSize, n + halfSize}] = true
	}
	for n := 0; n < RingSize; n++ {
		// The same angle across the two rings.
		pass[pair{n, (n + halfSize) % RingSize}] = true
	}
	testPairs(t, pass, func(a, b Position) bool { return a.Max0ConductiveWith(b) })
}

func TestSantorTable(t *testing.T) {
	if maxSantor != 7 {
		t.Errorf("maxSantor = %d, want 7", maxSantor)
	}
	if minSantor != 0 {
		t.Errorf("minSantor = %d, want 0", minSantor)
	}
	// The vertical sector outranks the side sectors on both rings.
	if !Position(3).IncreasesSantorTo(Position(2)) {
		t.Error("position 2 should carry more santor than position 3")
	}
	if Position(0).IncreasesSantorTo(Position(6)) {
		t.Error("position 0 carries the maximum santor")
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		wantErr bool
	}{
		{"first", 0, false},
		{"last", 11, false},
		{"negative", -1, true},
		{"too large", 12, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.index)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePosition(%d) error = %v, wantErr %v", tt.index, err, tt.wantErr)
			}
			if err == nil && got.Index() != tt.index {
				t.Errorf("ParsePosition(%d) = %d", tt.index, got)
			}
		})
	}
}

func TestRing(t *testing.T) {
	for p := 0; p < RingSize; p++ {
		want := 0
		if p >= halfSize {
			want = 1
		}
		if got := Position(p).Ring(); got != want {
			t.Errorf("Ring(%d) = %d, want %d", p, got, want)
		}
	}
}
