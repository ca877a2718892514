package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextInStackWrapsForward(t *testing.T) {
	a, b, c := &Client{Window: 1}, &Client{Window: 2}, &Client{Window: 3}
	vis := []*Client{a, b, c}

	assert.Same(t, b, nextInStack(vis, a, 1))
	assert.Same(t, c, nextInStack(vis, b, 1))
	assert.Same(t, a, nextInStack(vis, c, 1))
}

func TestNextInStackWrapsBackward(t *testing.T) {
	a, b, c := &Client{Window: 1}, &Client{Window: 2}, &Client{Window: 3}
	vis := []*Client{a, b, c}

	assert.Same(t, a, nextInStack(vis, b, -1))
	assert.Same(t, c, nextInStack(vis, a, -1))
}

func TestNextInStackReturnsNilWhenCurNotFound(t *testing.T) {
	a, b := &Client{Window: 1}, &Client{Window: 2}
	stray := &Client{Window: 99}
	assert.Nil(t, nextInStack([]*Client{a, b}, stray, 1))
}

func TestNextInStackReturnsNilOnEmpty(t *testing.T) {
	assert.Nil(t, nextInStack(nil, &Client{}, 1))
}

func TestFirstTiledSkipsFloatingAndHidden(t *testing.T) {
	m := testMonitor()
	m.TagSet[m.SelTags] = 1

	floating := &Client{Mon: m, Tags: 1, IsFloating: true}
	hidden := &Client{Mon: m, Tags: 2}
	tiled := &Client{Mon: m, Tags: 1}

	floating.Next = hidden
	hidden.Next = tiled
	m.Clients = floating

	assert.Same(t, tiled, firstTiled(m))
}

func TestNextTiledSkipsFloatingAndHidden(t *testing.T) {
	m := testMonitor()
	m.TagSet[m.SelTags] = 1

	first := &Client{Mon: m, Tags: 1}
	floating := &Client{Mon: m, Tags: 1, IsFloating: true}
	next := &Client{Mon: m, Tags: 1}

	first.Next = floating
	floating.Next = next
	m.Clients = first

	assert.Same(t, next, nextTiled(first))
}

func TestFirstTiledReturnsNilWhenNoneVisible(t *testing.T) {
	m := testMonitor()
	m.TagSet[m.SelTags] = 1
	c := &Client{Mon: m, Tags: 2}
	m.Clients = c
	assert.Nil(t, firstTiled(m))
}
