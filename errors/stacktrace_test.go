package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The module can be checked out anywhere, frames are matched by the
// package relative file name.
const thisFile = "errors/stacktrace_test.go"

func loadSwitch() error {
	return Wrapf(ErrNotFound, "switch %X", []byte{0xca, 0xfe})
}

func TestStackTrace(t *testing.T) {
	cases := map[string]struct {
		err       error
		wantError string
		wantFunc  string
	}{
		"registered error": {
			err:       Wrap(ErrDuplicate, "switch"),
			wantError: "switch: duplicate",
			wantFunc:  "TestStackTrace",
		},
		"standard library error": {
			err:       Wrap(fmt.Errorf("connection refused"), "abci socket"),
			wantError: "abci socket: connection refused",
			wantFunc:  "TestStackTrace",
		},
		"errors.New": {
			err:       Wrap(errors.New("bad seed"), "derive"),
			wantError: "derive: bad seed",
			wantFunc:  "TestStackTrace",
		},
		"created in a helper": {
			err:       loadSwitch(),
			wantError: "switch CAFE: not found",
			wantFunc:  "loadSwitch",
		},
		"wrapped twice keeps the inner frame": {
			err:       Wrap(loadSwitch(), "claim"),
			wantError: "claim: switch CAFE: not found",
			wantFunc:  "loadSwitch",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantError, tc.err.Error())

			st := trimInternal(stackTrace(tc.err))
			require.NotEmpty(t, st)
			if fn := funcName(st[0]); !strings.HasSuffix(fn, "."+tc.wantFunc) {
				t.Fatalf("want the trace to start in %s, got %s", tc.wantFunc, fn)
			}
			if file, _ := fileLine(st[0]); !strings.HasSuffix(file, thisFile) {
				t.Fatalf("want the trace to start in %s, got %s", thisFile, file)
			}
			for _, f := range st {
				fn := funcName(f)
				if strings.HasPrefix(fn, "runtime.") || strings.HasPrefix(fn, "testing.tRunner") {
					t.Fatalf("trace not trimmed: %s", fn)
				}
			}

			full := fmt.Sprintf("%+v", tc.err)
			assert.True(t, strings.Contains(full, thisFile), full)
			assert.True(t, strings.HasSuffix(full, tc.wantError), full)

			short := fmt.Sprintf("%v", tc.err)
			assert.True(t, strings.HasPrefix(short, tc.wantError+" ["), short)
			assert.False(t, strings.Contains(short, "\n"), "only one line is expected")
			assert.True(t, strings.Contains(short, thisFile+":"), short)
		})
	}
}

func TestFieldStackTrace(t *testing.T) {
	err := Field("Beneficiary", ErrEmpty, "required")
	st := trimInternal(stackTrace(err))
	require.NotEmpty(t, st)
	assert.True(t, strings.HasSuffix(funcName(st[0]), ".TestFieldStackTrace"), funcName(st[0]))

	// An error that carries a trace is not traced again.
	inner := Wrap(ErrEmpty, "beneficiary")
	assert.Equal(t, stackTrace(inner), stackTrace(Field("Beneficiary", inner, "")))
}
