package system

import (
	"testing"

	"glyphcrawl/internal/gamemap"
)

func TestFOVOriginAlwaysVisible(t *testing.T) {
	m := openMap(20, 20)
	vis := ComputeFOV(m, gamemap.Point{X: 5, Y: 5}, 0)
	if !vis.Has(gamemap.Point{X: 5, Y: 5}) {
		t.Error("origin must always be visible")
	}
}

func TestFOVNearbyTilesVisible(t *testing.T) {
	m := openMap(20, 20)
	vis := ComputeFOV(m, gamemap.Point{X: 10, Y: 10}, 5)
	for _, p := range []gamemap.Point{{X: 10, Y: 7}, {X: 10, Y: 13}, {X: 7, Y: 10}, {X: 13, Y: 10}} {
		if !vis.Has(p) {
			t.Errorf("tile %v at distance 3 should be visible (radius=5)", p)
		}
	}
	if vis.Has(gamemap.Point{X: 10, Y: 16}) {
		t.Error("tile beyond the radius should not be visible")
	}
}

func TestFOVBlockedByWall(t *testing.T) {
	m := openMap(20, 20)
	for y := 1; y < 19; y++ {
		m.Set(12, y, gamemap.MakeWall())
	}
	vis := ComputeFOV(m, gamemap.Point{X: 10, Y: 10}, 8)
	if !vis.Has(gamemap.Point{X: 12, Y: 10}) {
		t.Error("the wall itself should be visible")
	}
	if vis.Has(gamemap.Point{X: 14, Y: 10}) {
		t.Error("tile behind the wall should be hidden")
	}
}

func TestFOVOutOfBoundsOrigin(t *testing.T) {
	m := openMap(5, 5)
	if vis := ComputeFOV(m, gamemap.Point{X: -1, Y: 0}, 3); vis.Size() != 0 {
		t.Errorf("out-of-bounds origin should see nothing, got %d cells", vis.Size())
	}
}
