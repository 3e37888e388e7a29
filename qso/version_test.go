package qso

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVersion_Tombstone(t *testing.T) {
	contact := time.Date(2019, 8, 10, 13, 30, 0, 0, time.UTC)

	assert.True(t, Version{}.Tombstone(), "version without fields")
	assert.True(t, Version{Fields: &Fields{Call: "LA1K"}}.Tombstone(),
		"version missing contact time")
	assert.True(t, Version{Fields: &Fields{Time: contact}}.Tombstone(),
		"version missing callsign")
	assert.False(t, Version{Fields: &Fields{Time: contact, Call: "LA1K"}}.Tombstone(),
		"version with both key fields")
}
