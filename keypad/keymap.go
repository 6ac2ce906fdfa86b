package keypad

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DefaultLayout is the QWERTY block used for the keypad, read row by row.
const DefaultLayout = "1234qwerasdfzxcv"

// hex keypad layout, row by row
var padOrder = [Keys]byte{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// Keymap maps keyboard runes to keypad keys.
type Keymap map[rune]byte

// ParseKeymap builds a Keymap from 16 runes naming the keyboard keys that
// sit on the keypad positions 123C 456D 789E A0BF.
func ParseKeymap(layout string) (Keymap, error) {
	if n := utf8.RuneCountInString(layout); n != Keys {
		return nil, errors.Errorf("keymap %q has %d keys, want %d", layout, n, Keys)
	}

	km := make(Keymap, Keys)
	i := 0
	for _, r := range layout {
		r = unicode.ToLower(r)
		if _, ok := km[r]; ok {
			return nil, errors.Errorf("keymap %q maps %q twice", layout, r)
		}
		km[r] = padOrder[i]
		i++
	}
	return km, nil
}

// DefaultKeymap returns the map for DefaultLayout.
func DefaultKeymap() Keymap {
	km, _ := ParseKeymap(DefaultLayout)
	return km
}

// Lookup returns the keypad key for r. Upper case runes match their lower
// case mapping.
func (km Keymap) Lookup(r rune) (byte, bool) {
	key, ok := km[unicode.ToLower(r)]
	return key, ok
}

// Runes returns the keyboard rune for every keypad key.
func (km Keymap) Runes() map[byte]rune {
	out := make(map[byte]rune, len(km))
	for r, key := range km {
		out[key] = r
	}
	return out
}

// Legend lists the keypad rows next to the keyboard keys that press them,
// e.g. "123C:1234 456D:qwer 789E:asdf A0BF:zxcv".
func (km Keymap) Legend() string {
	runes := km.Runes()
	var sb strings.Builder
	for row := 0; row < Keys; row += 4 {
		if row > 0 {
			sb.WriteByte(' ')
		}
		keys := padOrder[row : row+4]
		for _, key := range keys {
			fmt.Fprintf(&sb, "%X", key)
		}
		sb.WriteByte(':')
		for _, key := range keys {
			r, ok := runes[key]
			if !ok {
				r = '?'
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
