package controller

import "github.com/milk9111/locomotion/common"

// GravityProvider yields gravity strength as a function of world height
// (screen Y, growing downward). Controllers without a provider fall back to
// their tuned constant.
type GravityProvider interface {
	GravityAt(height float64) float64
}

// ConstantGravity ignores height.
type ConstantGravity float64

func (c ConstantGravity) GravityAt(float64) float64 { return float64(c) }

// GravityBand interpolates gravity linearly across a height band, from Base
// at FromY to Upper at ToY. Heights outside the band clamp to the nearest
// endpoint rather than extrapolating.
type GravityBand struct {
	FromY float64 `yaml:"from_y"`
	ToY   float64 `yaml:"to_y"`
	Base  float64 `yaml:"base"`
	Upper float64 `yaml:"upper"`
}

func (b GravityBand) GravityAt(height float64) float64 {
	if b.FromY == b.ToY {
		return b.Base
	}
	t := common.Clamp((height-b.FromY)/(b.ToY-b.FromY), 0, 1)
	return common.Lerp(b.Base, b.Upper, t)
}

// contains reports whether height falls inside the band, regardless of the
// band's orientation.
func (b GravityBand) contains(height float64) bool {
	lo, hi := b.FromY, b.ToY
	if lo > hi {
		lo, hi = hi, lo
	}
	return height >= lo && height <= hi
}

// PlatformGravity looks gravity up from spatial platform regions: the first
// band containing the queried height wins, otherwise Fallback applies.
type PlatformGravity struct {
	Bands    []GravityBand
	Fallback float64
}

func (p PlatformGravity) GravityAt(height float64) float64 {
	for _, b := range p.Bands {
		if b.contains(height) {
			return b.GravityAt(height)
		}
	}
	return p.Fallback
}
