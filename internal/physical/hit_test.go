package physical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/JustinWhittecar/physcombat/internal/world"
)

func TestHitsMatchesRoll(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.IntRange(-4, 16).Draw(rt, "value")
		roll := rapid.IntRange(2, 12).Draw(rt, "roll")
		th := ToHit{Value: value}
		if Hits(th, roll) != (roll >= value) {
			rt.Fatalf("Hits(%d, %d) = %v", value, roll, Hits(th, roll))
		}
		if Hits(ToHit{Value: Impossible}, roll) {
			rt.Fatalf("impossible hit on %d", roll)
		}
		if !Hits(ToHit{Value: AutomaticSuccess}, roll) {
			rt.Fatalf("automatic missed on %d", roll)
		}
	})
}

func TestMargin(t *testing.T) {
	tests := []struct {
		th   ToHit
		roll int
		want int
	}{
		{ToHit{Value: 8}, 11, 3},
		{ToHit{Value: 8}, 6, -2},
		{ToHit{Value: 0}, 5, 3},
		{ToHit{Value: AutomaticSuccess}, 12, 0},
		{ToHit{Value: Impossible}, 12, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Margin(tt.th, tt.roll), "value %d roll %d", tt.th.Value, tt.roll)
	}
}

func TestShelterBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dmg := rapid.IntRange(0, 100).Draw(rt, "dmg")
		abs := rapid.IntRange(0, 60).Draw(rt, "absorption")
		scale := rapid.SampledFrom([]float64{0.5, 0.75, 1}).Draw(rt, "scale")
		got := Shelter(dmg, abs, scale)
		if got < 0 || got > dmg {
			rt.Fatalf("Shelter(%d, %d, %v) = %d", dmg, abs, scale, got)
		}
		if abs >= dmg && got != 0 {
			rt.Fatalf("fully absorbed blow leaked %d", got)
		}
	})
}

func TestSpikedNeverBelowOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(1, 60).Draw(rt, "dmg")
		got := Spiked(d)
		if got < 1 || got > d {
			rt.Fatalf("Spiked(%d) = %d", d, got)
		}
	})
}

func TestRetaliation(t *testing.T) {
	m := world.NewMech(1, "Centurion", 50, [world.NumMechLoc]int{}, [3]int{})

	assert.Equal(t, map[int]int{world.LocLA: 2}, Retaliation(m, []int{world.LocLA}))
	assert.Equal(t, map[int]int{world.LocLA: 1, world.LocRA: 1},
		Retaliation(m, []int{world.LocLA, world.LocRA}))

	m.Loc(world.LocRA).Spikes = true
	assert.Equal(t, map[int]int{world.LocLA: 1}, Retaliation(m, []int{world.LocLA, world.LocRA}))
}

func TestDamageFormulas(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"charge 50t 5 hexes", ChargeDamage(50, 5), 20},
		{"charge 50t standing", ChargeDamage(50, 0), 5},
		{"charge taken from 35t", ChargeDamageTaken(35), 4},
		{"dfa 50t", DFADamage(50), 15},
		{"dfa taken 50t", DFADamageTaken(50), 10},
		{"thrash 50t", ThrashDamage(50), 17},
		{"telemissile 25t", TeleMissileDamage(25), 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got, tt.name)
	}
}
