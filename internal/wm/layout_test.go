package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tiledClients(n int) []*Client {
	out := make([]*Client, n)
	for i := range out {
		out[i] = &Client{BorderWidth: 0}
	}
	return out
}

func TestComputeTileLayoutAllMastersFullWidth(t *testing.T) {
	m := testMonitor()
	m.NMaster = 4
	m.Gap = 0

	geoms := computeTileLayout(m, tiledClients(2))
	for _, g := range geoms {
		assert.Equal(t, m.Work.Width, g.Width)
	}
}

func TestComputeTileLayoutSplitsMasterAndStack(t *testing.T) {
	m := testMonitor()
	m.NMaster = 1
	m.Mfact = 0.5
	m.Gap = 0

	geoms := computeTileLayout(m, tiledClients(3))
	assert.Equal(t, m.Work.Width/2, geoms[0].Width)
	assert.Equal(t, m.Work.Width-geoms[0].Width, geoms[1].Width)
	assert.Equal(t, geoms[1].Width, geoms[2].Width)
	assert.Equal(t, geoms[1].X, geoms[2].X)
}

func TestComputeTileLayoutZeroMasterGivesFullWidthStack(t *testing.T) {
	m := testMonitor()
	m.NMaster = 0
	m.Gap = 0

	geoms := computeTileLayout(m, tiledClients(2))
	for _, g := range geoms {
		assert.Equal(t, m.Work.Width, g.Width)
		assert.Equal(t, m.Work.X, g.X)
	}
}

func TestComputeTileLayoutStacksFillHeight(t *testing.T) {
	m := testMonitor()
	m.NMaster = 1
	m.Gap = 0

	geoms := computeTileLayout(m, tiledClients(3))
	totalStackHeight := geoms[1].Height + geoms[2].Height
	assert.Equal(t, m.Work.Height, totalStackHeight)
}

func TestComputeTileLayoutSingleClientFillsMonitor(t *testing.T) {
	m := testMonitor()
	m.NMaster = 1
	m.Gap = 0

	geoms := computeTileLayout(m, tiledClients(1))
	assert.Equal(t, m.Work.Width, geoms[0].Width)
	assert.Equal(t, m.Work.Height, geoms[0].Height)
}

func TestArrangeNilMonitorIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() { Arrange(nil, nil) })
}
