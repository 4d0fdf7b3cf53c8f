package snmp

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestPDUAllowedForVersion(t *testing.T) {
	tests := []struct {
		name    string
		version int
		tag     byte
		want    bool
	}{
		{"getRequestV1", VersionV1, TagGetRequest, true},
		{"getRequestV2c", VersionV2c, TagGetRequest, true},
		{"trapV1OnV1", VersionV1, TagTrapV1, true},
		{"trapV1OnV2c", VersionV2c, TagTrapV1, false},
		{"getBulkOnV1", VersionV1, TagGetBulkRequest, false},
		{"getBulkOnV2c", VersionV2c, TagGetBulkRequest, true},
		{"informOnV1", VersionV1, TagInformRequest, false},
		{"informOnV2c", VersionV2c, TagInformRequest, true},
		{"v2TrapOnV2c", VersionV2c, TagSNMPv2Trap, true},
		{"unknownTag", VersionV2c, 0xFF, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pduAllowedForVersion(tt.version, tt.tag))
		})
	}
}

func TestIsPDUTag(t *testing.T) {
	assert.True(t, isPDUTag(TagGetRequest))
	assert.True(t, isPDUTag(TagSNMPv2Trap))
	assert.False(t, isPDUTag(TagInteger))
	assert.False(t, isPDUTag(0xFF))
}
