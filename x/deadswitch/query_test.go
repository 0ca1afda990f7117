package deadswitch

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySwitches(t *testing.T) {
	alice := custodytest.NewCondition()
	bob := custodytest.NewCondition()
	carol := custodytest.NewCondition()

	e := newTestEnv(t)
	a1 := e.createSwitch(t0, alice, bob.Address(), t0+100, "1")
	a2 := e.createSwitch(t0, alice, carol.Address(), t0+100, "2")
	b1 := e.createSwitch(t0, bob, carol.Address(), t0+100, "1")

	qr := custody.NewQueryRouter()
	RegisterQuery(qr)

	query := func(path string, data []byte) []custody.Model {
		t.Helper()
		h := qr.Handler(path)
		require.NotNil(t, h, path)
		res, err := h.Query(e.db, custody.KeyQueryMod, data)
		require.NoError(t, err)
		return res
	}
	keys := func(models []custody.Model) [][]byte {
		var res [][]byte
		for _, m := range models {
			res = append(res, m.Key)
		}
		return res
	}
	bucket := NewSwitchBucket()

	byID := query("/switches", a2)
	require.Len(t, byID, 1)
	assert.Equal(t, bucket.DBKey(a2), byID[0].Key)
	var sw Switch
	require.NoError(t, sw.Unmarshal(byID[0].Value))
	assert.Equal(t, carol.Address(), sw.Beneficiary)

	owned := keys(query("/switches/owner", alice.Address()))
	assert.ElementsMatch(t, [][]byte{bucket.DBKey(a1), bucket.DBKey(a2)}, owned)

	inherited := keys(query("/switches/beneficiary", carol.Address()))
	assert.ElementsMatch(t, [][]byte{bucket.DBKey(a2), bucket.DBKey(b1)}, inherited)

	assert.Empty(t, query("/switches/owner", carol.Address()))

	objs, err := bucket.ByBeneficiary(e.db, bob.Address())
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, a1, objs[0].Key())
}
