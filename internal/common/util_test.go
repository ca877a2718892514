package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInList(t *testing.T) {
	assert.True(t, IsInList("b", []string{"a", "b", "c"}))
	assert.False(t, IsInList("z", []string{"a", "b", "c"}))
	assert.False(t, IsInList("a", nil))
}

func TestCleanModMaskStripsLockAndNumLock(t *testing.T) {
	const numLockMask = uint16(1 << 4)
	const relevant = uint16(0xff)

	state := uint16(1<<0) | 1<<1 | numLockMask
	got := CleanModMask(state, numLockMask, relevant)
	assert.Equal(t, uint16(1<<0), got)
}

func TestCleanModMaskKeepsOnlyRelevantBits(t *testing.T) {
	state := uint16(1<<0 | 1<<8)
	got := CleanModMask(state, 0, 0xff)
	assert.Equal(t, uint16(1<<0), got)
}

func TestTrimTitleUnderLimitUnchanged(t *testing.T) {
	assert.Equal(t, "short title", TrimTitle("short title"))
}

func TestTrimTitleOverLimitIsBounded(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := TrimTitle(long)
	assert.LessOrEqual(t, len(got), 256)
}

func TestTagMaskCoversConfiguredTagCount(t *testing.T) {
	orig := Config.Tags
	defer func() { Config.Tags = orig }()

	Config.Tags = []string{"1", "2", "3"}
	assert.Equal(t, uint32(0b111), TagMask())
}
