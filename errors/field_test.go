package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Shared instances, so results can be compared with DeepEqual.
	var (
		noBeneficiary  = Field("Beneficiary", ErrEmpty, "required")
		pastDeadline   = Field("Deadline", ErrInput, "before %d", 1600000000)
		badWhole       = Field("Whole", ErrAmount, "negative")
		badAmount      = Field("Amount", Append(badWhole, Field("Ticker", ErrCurrency, "lowercase")), "")
		createMsg      = Append(noBeneficiary, pastDeadline, badAmount)
		outerDeadline  = Field("Deadline", pastDeadline, "check in")
		notBeneficiary = Field("Beneficiary", ErrUnauthorized, "")
	)

	cases := map[string]struct {
		err  error
		name string
		want []error
	}{
		"nil": {
			err:  nil,
			name: "Deadline",
		},
		"not a field error": {
			err:  ErrUnauthorized,
			name: "Deadline",
		},
		"another field": {
			err:  pastDeadline,
			name: "Beneficiary",
		},
		"single field": {
			err:  pastDeadline,
			name: "Deadline",
			want: []error{pastDeadline},
		},
		"one of many": {
			err:  createMsg,
			name: "Beneficiary",
			want: []error{noBeneficiary},
		},
		"nested field is found under its parent": {
			err:  createMsg,
			name: "Whole",
			want: []error{badWhole},
		},
		"parent with many children is returned whole": {
			err:  createMsg,
			name: "Amount",
			want: []error{badAmount},
		},
		"through wraps": {
			err:  Wrap(Wrap(createMsg, "load msg"), "deposit"),
			name: "Deadline",
			want: []error{pastDeadline},
		},
		"same name twice returns the outer one": {
			err:  outerDeadline,
			name: "Deadline",
			want: []error{outerDeadline},
		},
		"repeated in several branches": {
			err:  Append(Wrap(noBeneficiary, "create"), Wrap(notBeneficiary, "claim")),
			name: "Beneficiary",
			want: []error{noBeneficiary, notBeneficiary},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.name)
			if len(tc.want) != len(got) {
				t.Fatalf("want %d errors, got %d: %v", len(tc.want), len(got), got)
			}
			for i := range got {
				if !reflect.DeepEqual(tc.want[i], got[i]) {
					t.Fatalf("error %d: want %#v, got %#v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestFieldNames(t *testing.T) {
	cases := map[string]struct {
		err  error
		want []string
	}{
		"nil": {
			err: nil,
		},
		"no fields": {
			err: Wrap(ErrNotFound, "switch"),
		},
		"sorted and unique": {
			err: Append(
				Field("SwitchID", ErrInput, "length"),
				Field("Amount", ErrAmount, "zero"),
				Wrap(Field("Amount", ErrCurrency, "ticker"), "again"),
			),
			want: []string{"Amount", "SwitchID"},
		},
		"only the outermost name": {
			err:  Field("Amount", Field("Whole", ErrAmount, "negative"), ""),
			want: []string{"Amount"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := FieldNames(tc.err); !reflect.DeepEqual(tc.want, got) {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFieldMessage(t *testing.T) {
	err := Field("Deadline", ErrInput, "before %d", 42)
	if got, want := err.Error(), `field "Deadline": before 42: invalid input`; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	err = AppendField(nil, "Period", ErrInput)
	if got, want := err.Error(), `field "Period": invalid input`; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if err := AppendField(nil, "Period", nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !ErrInput.Is(Field("Memo", ErrInput, "")) {
		t.Fatal("field error must keep its cause")
	}
}
