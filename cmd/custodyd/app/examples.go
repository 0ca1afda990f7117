package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/commands"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/deadswitch"
	"github.com/iov-one/custody/x/sigs"
)

// examplesChainID is the chain the example transaction is signed for.
const examplesChainID = "testchain-123"

// Examples returns fixed, deterministic encodings of the main objects so
// that clients can check their codecs against them.
func Examples() []commands.Example {
	ownerKey := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))
	owner := ownerKey.PublicKey().Address()
	heir := crypto.PrivKeyEd25519FromSeed(append(make([]byte, 31), 1)).PublicKey().Address()
	seed := []byte("vault")

	created := custody.UnixTime(1600000000)
	obj, err := deadswitch.NewSwitch(owner, heir, seed, created+86400, created, 3600, "family savings")
	if err != nil {
		panic(err)
	}
	sw := deadswitch.AsSwitch(obj)

	amount := coin.NewCoinp(50, 0, "IOV")
	create := &deadswitch.CreateMsg{
		Metadata:    &custody.Metadata{Schema: 1},
		Beneficiary: heir,
		Deadline:    sw.Deadline,
		Seed:        seed,
		Period:      sw.Period,
		Memo:        sw.Memo,
		Amount:      coin.Coins{amount},
	}
	claim := &deadswitch.ClaimMsg{
		Metadata:    &custody.Metadata{Schema: 1},
		SwitchID:    obj.Key(),
		Beneficiary: heir,
	}
	send := &cash.SendMsg{
		Metadata:    &custody.Metadata{Schema: 1},
		Source:      owner,
		Destination: heir,
		Amount:      amount,
		Memo:        "allowance",
	}

	tx, err := NewTx(create)
	if err != nil {
		panic(err)
	}
	sig, err := sigs.SignTx(ownerKey, tx, examplesChainID, 0)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "pubkey", Obj: ownerKey.PublicKey()},
		{Filename: "coin", Obj: amount},
		{Filename: "switch", Obj: sw},
		{Filename: "create_msg", Obj: create},
		{Filename: "claim_msg", Obj: claim},
		{Filename: "send_msg", Obj: send},
		{Filename: "signed_tx", Obj: tx},
	}
}
