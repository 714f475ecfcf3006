package runelock

import (
	"strings"
	"testing"
)

const sampleConfig = `
runes: "ZSVCSV CSVZSV"
rules:
  - kind: alwanese
    first: 1
    second: 2
  - kind: antakian-conjugates
    first: 2
    second: 3
  - kind: rune-follows
    firstRune: Z
    secondRune: V
`

func TestParseLockConfig(t *testing.T) {
	lock, err := ParseLockConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseLockConfig: %v", err)
	}

	want := DefaultLock().Runes
	if lock.Runes != want {
		t.Errorf("runes = %v, want %v", lock.Runes, want)
	}

	if len(lock.Rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(lock.Rules))
	}
	if lock.Rules[0] != Alwanese(1, 2) {
		t.Errorf("rule 0 = %v", lock.Rules[0])
	}
	if lock.Rules[1] != AntakianConjugates(2, 3) {
		t.Errorf("rule 1 = %v", lock.Rules[1])
	}
	if lock.Rules[2] != RuneFollows(RuneZ, RuneV) {
		t.Errorf("rule 2 = %v", lock.Rules[2])
	}
}

func TestParseLockConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name:    "not yaml",
			config:  "runes: [unterminated",
			wantErr: "parse lock config",
		},
		{
			name:    "too few runes",
			config:  `runes: "ZSV"`,
			wantErr: "rune labels",
		},
		{
			name:    "unknown rune label",
			config:  `runes: "XSVCSVCSVZSV"`,
			wantErr: "unknown rune label",
		},
		{
			name: "unknown rule kind",
			config: `
runes: "ZSVCSV CSVZSV"
rules:
  - kind: sideways
    first: 1
    second: 2
`,
			wantErr: "unknown rule kind",
		},
		{
			name: "activation out of range",
			config: `
runes: "ZSVCSV CSVZSV"
rules:
  - kind: alwanese
    first: 0
    second: 13
`,
			wantErr: "activation",
		},
		{
			name: "rune-follows with bad label",
			config: `
runes: "ZSVCSV CSVZSV"
rules:
  - kind: rune-follows
    firstRune: Q
    secondRune: V
`,
			wantErr: "unknown rune label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLockConfig([]byte(tt.config))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadLockMissingFile(t *testing.T) {
	if _, err := LoadLock("testdata/does-not-exist.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
