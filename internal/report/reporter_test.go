package report

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_SeverityRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(&out, &errOut, false)

	r.Info("creating %s", "feat-a")
	r.Success("done")
	r.Warning("no .env found")
	r.Error("boom: %v", io.ErrUnexpectedEOF)

	assert.Contains(t, out.String(), "[INFO] creating feat-a")
	assert.Contains(t, out.String(), "[SUCCESS] done")
	assert.Contains(t, out.String(), "[WARNING] no .env found")
	assert.NotContains(t, out.String(), "[ERROR]")
	assert.Contains(t, errOut.String(), "[ERROR] boom: unexpected EOF")
}

func TestReporter_PlainIsUntagged(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, io.Discard, false)

	r.Plain("  cd %s", "/tmp/worktrees/feat-a")

	assert.Equal(t, "  cd /tmp/worktrees/feat-a\n", out.String())
}

func TestReporter_NoColorHasNoEscapes(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, io.Discard, false)

	r.Info("hello")

	assert.NotContains(t, out.String(), "\x1b[")
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes short", "y\n", true},
		{"yes long", "yes\n", true},
		{"yes uppercase", "Y\n", true},
		{"no", "n\n", false},
		{"empty defaults to no", "\n", false},
		{"garbage", "sure\n", false},
		{"eof defaults to no", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)
			got, err := p.Confirm("Delete branch?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete branch? [y/N]: ")
		})
	}
}
