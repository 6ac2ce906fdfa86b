package console

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSimple_WriteConsole(t *testing.T) {
	tests := []struct {
		name      string
		msg       string
		want      string
		wantLines int
	}{
		{"single line", "rom loaded", ". rom loaded\n", 1},
		{"skips empty lines", "halted\n\nat 0x200\n", ". halted\n. at 0x200\n", 2},
		{"empty", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewSimple(&buf)

			assert.NoError(t, c.WriteConsole(tt.msg))
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.wantLines, c.Lines())
		})
	}
}
