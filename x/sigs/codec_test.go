package sigs

import (
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
)

func TestCodecMatchesProto(t *testing.T) {
	assert.ProtoLayout(t, "codec.proto", "UserData", &UserData{})
	assert.ProtoLayout(t, "codec.proto", "StdSignature", &StdSignature{})
	assert.ProtoLayout(t, "codec.proto", "BumpSequenceMsg", &BumpSequenceMsg{})
}
