package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	cases := map[string]struct {
		content string
		wantErr *errors.Error
	}{
		"valid": {
			content: `{"chain_id": "custody-test", "app_state": {"cash": []}}`,
		},
		"invalid chain id": {
			content: `{"chain_id": "x", "app_state": {}}`,
			wantErr: errors.ErrInput,
		},
		"not json": {
			content: `chain_id = "custody-test"`,
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".json")
			assert.Nil(t, ioutil.WriteFile(path, []byte(tc.content), 0600))
			gen, err := LoadGenesis(path)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, "custody-test", gen.ChainID)
			}
		})
	}

	if _, err := LoadGenesis(filepath.Join(dir, "missing.json")); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

// recordingInit remembers that it was called and fails if configured.
type recordingInit struct {
	called bool
	err    error
}

func (r *recordingInit) FromGenesis(custody.Options, custody.KVStore) error {
	r.called = true
	return r.err
}

func TestChainInitializers(t *testing.T) {
	first := &recordingInit{err: errors.ErrState}
	second := &recordingInit{}

	err := ChainInitializers(first, second).FromGenesis(custody.Options{}, store.MemStore())
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, true, first.called)
	assert.Equal(t, false, second.called)
}
