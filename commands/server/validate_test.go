package server

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/stretchr/testify/assert"
)

func TestValidateGenesis(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"valid": {
			genesis: `{
				"chain_id": "custody-test",
				"app_state": {"cash": [{
					"address": "b1ca7e78f74423ae01da3b51e676934d9105f282",
					"coins": [{"whole": 10, "ticker": "IOV"}]
				}]}
			}`,
		},
		"invalid chain id": {
			genesis: `{"chain_id": "!", "app_state": {}}`,
			wantErr: errors.ErrInput,
		},
		"invalid account": {
			genesis: `{
				"chain_id": "custody-test",
				"app_state": {"cash": [{"address": "", "coins": []}]}
			}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			home, cleanup := setupHome(t, tc.genesis)
			defer cleanup()
			err := ValidateGenesis(cash.Initializer{}, []string{GenesisFile(home)})
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}

func TestValidateGenesisNoFiles(t *testing.T) {
	err := ValidateGenesis(cash.Initializer{}, nil)
	assert.True(t, errors.ErrEmpty.Is(err))
}
