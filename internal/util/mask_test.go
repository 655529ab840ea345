package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github/chapool/sol-explorer/internal/util"
)

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "abcd", util.MaskSecret("abcd", true))
	assert.Equal(t, "••••", util.MaskSecret("abcd", false))
	assert.Equal(t, "", util.MaskSecret("", false))
}

func TestShortenMiddle(t *testing.T) {
	assert.Equal(t, "12345678...abcdefgh", util.ShortenMiddle("12345678XXXXXXXXXXXXabcdefgh", 8))
	assert.Equal(t, "short", util.ShortenMiddle("short", 8))
	assert.Equal(t, "anything", util.ShortenMiddle("anything", 0))
}
