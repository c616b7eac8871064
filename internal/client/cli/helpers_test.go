package cli

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymkeeper/internal/client/iocli"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

const testExerciseID = "6f1d2a4e-8c3b-4d5e-9f10-2a3b4c5d6e7f"

// output собирает все, что команда напечатала через IOMock
type output struct {
	lines []string
}

func (o *output) String() string {
	return strings.Join(o.lines, "\n")
}

func newMockIO(out *output) *iocli.IOMock {
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			out.lines = append(out.lines, joinArgs(a))
		},
		PrintfFunc: func(format string, a ...any) {
			out.lines = append(out.lines, fmt.Sprintf(format, a...))
		},
		WriteFunc: func(p []byte) (int, error) {
			out.lines = append(out.lines, string(p))
			return len(p), nil
		},
		IsTerminalFunc: func() bool { return false },
	}
}

func joinArgs(args []any) string {
	str := ""
	for i, a := range args {
		if i > 0 {
			str += " "
		}
		str += fmt.Sprintf("%v", a)
	}
	return str
}

// changedFlags имитирует cmd.Flags().Changed для перечисленных флагов
func changedFlags(names ...string) flagChanged {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func fixedNow() time.Time { return testNow }

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "", want: testNow},
		{in: "now", want: testNow},
		{in: "2026-02-27T18:30:00+03:00", want: time.Date(2026, 2, 27, 15, 30, 0, 0, time.UTC)},
		{in: "2026-02-27 18:30", want: time.Date(2026, 2, 27, 18, 30, 0, 0, time.UTC)},
		{in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTime(tt.in, testNow)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "never", formatTime(time.Time{}))
	assert.Equal(t, "2026-03-01 10:00", formatTime(testNow))
	assert.Equal(t, "-", orDash(""))
}
