package main

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/levels"
)

func TestEmbeddedArenaParses(t *testing.T) {
	lvl, err := ParseLevel(levels.Arena)
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if lvl.Name != "arena" {
		t.Fatalf("name = %q, want arena", lvl.Name)
	}
	if len(lvl.Platforms) == 0 {
		t.Fatalf("arena has no platforms")
	}
	if lvl.Spawn.X == 0 && lvl.Spawn.Y == 0 {
		t.Fatalf("arena has no spawn point")
	}
	if len(lvl.GravityBands) == 0 {
		t.Fatalf("arena should declare a gravity band")
	}
}

func TestLevelBuild(t *testing.T) {
	lvl, err := ParseLevel(levels.Arena)
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}

	space := cp.NewSpace()
	shapes := lvl.Build(space)
	if len(shapes) != len(lvl.Platforms) {
		t.Fatalf("built %d shapes for %d platforms", len(shapes), len(lvl.Platforms))
	}

	count := 0
	space.EachShape(func(*cp.Shape) { count++ })
	if count != len(lvl.Platforms) {
		t.Fatalf("space holds %d shapes, want %d", count, len(lvl.Platforms))
	}
}

func TestLevelGravityProvider(t *testing.T) {
	t.Run("no_bands_is_constant", func(t *testing.T) {
		lvl := &Level{}
		p := lvl.GravityProvider(900)
		if p.GravityAt(0) != 900 || p.GravityAt(10000) != 900 {
			t.Fatalf("bandless level should use the fallback everywhere")
		}
	})

	t.Run("bands_lerp_and_fall_back", func(t *testing.T) {
		lvl, err := ParseLevel(levels.Arena)
		if err != nil {
			t.Fatalf("ParseLevel: %v", err)
		}
		p := lvl.GravityProvider(1100)

		band := lvl.GravityBands[0]
		inside := (band.FromY + band.ToY) / 2
		got := p.GravityAt(inside)
		if got >= band.Base || got <= band.Upper {
			t.Fatalf("mid-band gravity %v should sit between %v and %v", got, band.Upper, band.Base)
		}
		if p.GravityAt(10000) != 1100 {
			t.Fatalf("outside all bands should use the fallback")
		}
	})
}
