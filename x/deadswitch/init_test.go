package deadswitch

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	owner := custodytest.NewCondition().Address()
	beneficiary := custodytest.NewCondition().Address()
	confOwner := custodytest.NewCondition().Address()

	raw := fmt.Sprintf(`{
		"conf": {
			"deadswitch": {
				"metadata": {"schema": 1},
				"owner": %q,
				"deposit_policy": 2,
				"max_horizon": 86400
			}
		},
		"deadswitch": [
			{
				"owner": %q,
				"beneficiary": %q,
				"deadline": "2030-01-01T00:00:00Z",
				"last_activity": 1600000000,
				"seed": "czE=",
				"period": 3600,
				"memo": "imported",
				"amount": [{"whole": 12, "ticker": "IOV"}]
			}
		]
	}`, confOwner, owner, beneficiary)

	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	var conf Configuration
	require.NoError(t, gconf.Load(db, packageName, &conf))
	assert.Equal(t, confOwner, conf.Owner)
	assert.Equal(t, DepositPolicyOwnerOnly, conf.DepositPolicy)
	assert.Equal(t, int64(86400), conf.MaxHorizon)

	id, _, err := SwitchAddress(owner, []byte("s1"))
	require.NoError(t, err)
	_, sw, err := NewSwitchBucket().GetSwitch(db, id)
	require.NoError(t, err)
	assert.Equal(t, beneficiary, sw.Beneficiary)
	assert.Equal(t, StateActive, sw.State)
	assert.Equal(t, custody.UnixTime(1893456000), sw.Deadline)
	assert.Equal(t, custody.UnixTime(1600000000), sw.LastActivity)
	assert.Equal(t, int64(3600), sw.Period)
	assert.Equal(t, "imported", sw.Memo)

	held, err := cash.NewController(cash.NewBucket()).Balance(db, sw.Holding)
	require.NoError(t, err)
	assert.True(t, coin.Coins{coin.NewCoinp(12, 0, "IOV")}.Equals(held), "%s", held)
}

func TestGenesisEmpty(t *testing.T) {
	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(custody.Options{}, db))

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, DepositPolicyAnyone, conf.DepositPolicy)
}

func TestGenesisDuplicatedSwitch(t *testing.T) {
	owner := custodytest.NewCondition().Address()
	beneficiary := custodytest.NewCondition().Address()
	entry := fmt.Sprintf(`{"owner": %q, "beneficiary": %q, "deadline": 1900000000, "last_activity": 1600000000}`, owner, beneficiary)
	opts := custody.Options{"deadswitch": []byte("[" + entry + "," + entry + "]")}

	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrDuplicate.Is(err), "%+v", err)
}

func TestGenesisInvalidSwitch(t *testing.T) {
	owner := custodytest.NewCondition().Address()
	opts := custody.Options{"deadswitch": []byte(fmt.Sprintf(`[{"owner": %q, "deadline": 1900000000}]`, owner))}
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}

func TestGenesisBeneficiaryIsOwnHolding(t *testing.T) {
	owner := custodytest.NewCondition().Address()
	id, _, err := SwitchAddress(owner, []byte("s1"))
	require.NoError(t, err)
	holding := HoldingCondition(id).Address()

	entry := fmt.Sprintf(`{"owner": %q, "beneficiary": %q, "seed": %q, "deadline": 1900000000, "last_activity": 1600000000}`,
		owner, holding, base64.StdEncoding.EncodeToString([]byte("s1")))
	db := store.MemStore()
	err = Initializer{}.FromGenesis(custody.Options{"deadswitch": []byte("[" + entry + "]")}, db)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	obj, err := NewSwitchBucket().Get(db, id)
	require.NoError(t, err)
	assert.Nil(t, obj)
}
