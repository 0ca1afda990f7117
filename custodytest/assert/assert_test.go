package assert

import (
	"testing"

	"github.com/iov-one/custody/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
		"different root": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrAmount,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			if failed := mock.failcalls > 0; tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	cases := map[string]struct {
		Err      error
		Name     string
		WantErr  *errors.Error
		WantFail bool
	}{
		"ensure a single error exists and is found": {
			Err:     errors.Field("Owner", errors.ErrEmpty, "required"),
			Name:    "Owner",
			WantErr: errors.ErrEmpty,
		},
		"use nil to ensure no error was found": {
			Err:     errors.Field("Owner", errors.ErrEmpty, "required"),
			Name:    "Beneficiary",
			WantErr: nil,
		},
		"use nil to fail when an error was found but was not expected": {
			Err:      errors.Field("Owner", errors.ErrEmpty, "required"),
			Name:     "Owner",
			WantErr:  nil,
			WantFail: true,
		},
		"more than one error for a single field is not allowed": {
			Err: errors.Append(
				errors.Field("Owner", errors.ErrEmpty, "first"),
				errors.Field("Owner", errors.ErrEmpty, "second"),
			),
			Name:     "Owner",
			WantErr:  errors.ErrEmpty,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			FieldError(mock, tc.Err, tc.Name, tc.WantErr)
			if failed := mock.failcalls > 0; tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

// tmock mocks testing.TB and only counts failure calls. It ignores all other
// input.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Helper() {}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

func (t *tmock) Logf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
}
