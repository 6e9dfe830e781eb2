package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReply_InheritsRoutingNotPayload(t *testing.T) {
	req := Message{Kind: Get, SrcRank: 7, TableID: 2, Payload: []byte("read-spec")}
	reply := NewReply(req)

	assert.Equal(t, Reply, reply.Kind)
	assert.Equal(t, req.SrcRank, reply.SrcRank)
	assert.Equal(t, req.TableID, reply.TableID)
	assert.Empty(t, reply.Payload)
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		Get:         "Get",
		Add:         "Add",
		FinishTrain: "FinishTrain",
		Reply:       "Reply",
		Unknown:     "Unknown",
		Kind(99):    "Unknown",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}
