package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestGenCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "testgen")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	examples := []Example{
		{Filename: "coin", Obj: coin.NewCoinp(3, 14, "IOV")},
		{Filename: "metadata", Obj: &custody.Metadata{Schema: 1}},
	}
	out := filepath.Join(dir, "out")
	require.NoError(t, TestGenCmd(examples, []string{out}))

	js, err := ioutil.ReadFile(filepath.Join(out, "coin.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"whole": 3, "fractional": 14, "ticker": "IOV"}`, string(js))

	raw, err := ioutil.ReadFile(filepath.Join(out, "coin.bin"))
	require.NoError(t, err)
	var c coin.Coin
	require.NoError(t, c.Unmarshal(raw))
	assert.Equal(t, coin.NewCoin(3, 14, "IOV"), c)

	_, err = os.Stat(filepath.Join(out, "metadata.bin"))
	assert.NoError(t, err)
}
