package cash

import (
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
)

func TestCodecMatchesProto(t *testing.T) {
	assert.ProtoLayout(t, "codec.proto", "Set", &Set{})
	assert.ProtoLayout(t, "codec.proto", "SendMsg", &SendMsg{})
}
