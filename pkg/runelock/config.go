// Lock definitions can be loaded from YAML so alternative rule lists can
// be explored without recompiling. The format mirrors the Lock structure:
//
//	runes: "ZSVCSV CSVZSV"
//	rules:
//	  - kind: alwanese
//	    first: 1
//	    second: 2
//	  - kind: rune-follows
//	    firstRune: Z
//	    secondRune: V
package runelock

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LockConfig is the YAML representation of a Lock.
type LockConfig struct {
	// Runes lists the twelve labels, outer ring first; whitespace is
	// ignored so the two rings can be separated visually.
	Runes string       `yaml:"runes"`
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig is the YAML representation of one rule. Activation operands
// are one-based; rune operands are single letters of the lock alphabet.
type RuleConfig struct {
	Kind       string `yaml:"kind"`
	First      int    `yaml:"first,omitempty"`
	Second     int    `yaml:"second,omitempty"`
	FirstRune  string `yaml:"firstRune,omitempty"`
	SecondRune string `yaml:"secondRune,omitempty"`
}

var runeNames = map[string]Rune{
	"Z": RuneZ,
	"V": RuneV,
	"S": RuneS,
	"C": RuneC,
}

var ruleKindNames = map[string]RuleKind{
	"alwanese":            RuleAlwanese,
	"antakian-conjugates": RuleAntakianConjugates,
	"alwanese-conjugates": RuleAlwaneseConjugates,
	"different-runes":     RuleDifferentRunes,
	"antakian-twins":      RuleAntakianTwins,
	"increase-santor":     RuleIncreaseSantor,
	"max0-conductive":     RuleMax0Conductive,
	"rune-follows":        RuleRuneFollows,
}

// ParseLockConfig decodes a YAML lock definition.
func ParseLockConfig(data []byte) (*Lock, error) {
	var cfg LockConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse lock config: %w", err)
	}
	return cfg.Build()
}

// LoadLock reads and decodes a YAML lock definition from path.
func LoadLock(path string) (*Lock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lock config: %w", err)
	}
	return ParseLockConfig(data)
}

// Build validates the config and converts it into a Lock.
func (c *LockConfig) Build() (*Lock, error) {
	var letters []string
	for _, ch := range c.Runes {
		if ch == ' ' || ch == '\t' {
			continue
		}
		letters = append(letters, string(ch))
	}
	if len(letters) != RingSize {
		return nil, fmt.Errorf("lock config needs %d rune labels, got %d", RingSize, len(letters))
	}

	lock := &Lock{}
	for i, letter := range letters {
		r, ok := runeNames[letter]
		if !ok {
			return nil, fmt.Errorf("unknown rune label %q at position %d", letter, i)
		}
		lock.Runes[i] = r
	}

	for i, rc := range c.Rules {
		rule, err := rc.build()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		lock.Rules = append(lock.Rules, rule)
	}
	return lock, nil
}

func (c *RuleConfig) build() (Rule, error) {
	kind, ok := ruleKindNames[c.Kind]
	if !ok {
		return Rule{}, fmt.Errorf("unknown rule kind %q", c.Kind)
	}

	if kind == RuleRuneFollows {
		first, ok := runeNames[c.FirstRune]
		if !ok {
			return Rule{}, fmt.Errorf("unknown rune label %q", c.FirstRune)
		}
		second, ok := runeNames[c.SecondRune]
		if !ok {
			return Rule{}, fmt.Errorf("unknown rune label %q", c.SecondRune)
		}
		return RuneFollows(first, second), nil
	}

	first, err := ActivationFromHuman(c.First)
	if err != nil {
		return Rule{}, fmt.Errorf("first activation %d: %w", c.First, err)
	}
	second, err := ActivationFromHuman(c.Second)
	if err != nil {
		return Rule{}, fmt.Errorf("second activation %d: %w", c.Second, err)
	}
	return Rule{Kind: kind, First: first, Second: second}, nil
}
