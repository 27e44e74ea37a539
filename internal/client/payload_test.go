package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

func TestPayload_Compact(t *testing.T) {
	t.Parallel()

	var nilSpeed *int

	payload := Payload{
		"name":           "",
		"flag":           false,
		"zero":           0,
		"speed":          nilSpeed,
		"set_speed":      twoindex.Int(0),
		"nothing":        nil,
		"links":          twoindex.LinksFromList(),
		"nested_payload": Payload{},
	}

	compacted := payload.Compact()

	assert.NotContains(t, compacted, "speed")
	assert.NotContains(t, compacted, "nothing")
	assert.Contains(t, compacted, "name")
	assert.Contains(t, compacted, "flag")
	assert.Contains(t, compacted, "zero")
	assert.Contains(t, compacted, "set_speed")
	assert.Contains(t, compacted, "links")
	assert.Contains(t, compacted, "nested_payload")
	assert.Len(t, payload, 8, "Compact must not modify the receiver")
}

func TestLinksAddSimplePayload_DefaultProject(t *testing.T) {
	t.Parallel()

	payload := linksAddSimplePayload(&twoindex.LinksAddSimpleRequest{}, "default")
	assert.Equal(t, "default", payload["project_name"])

	payload = linksAddSimplePayload(&twoindex.LinksAddSimpleRequest{ProjectName: "Blog"}, "default")
	assert.Equal(t, "Blog", payload["project_name"])
}
