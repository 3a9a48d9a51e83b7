// Package ingestion reads MegaMek unit files into combatants.
package ingestion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ErrNotBiped is returned for unit files whose layout has no mapping onto
// the biped mech locations.
var ErrNotBiped = errors.New("only biped mechs are supported")

// parseArmorValue handles both standard "26" and patchwork "Reactive(Inner Sphere):26" formats
func parseArmorValue(val string) int {
	if n, err := strconv.Atoi(val); err == nil {
		return n
	}
	if idx := strings.LastIndex(val, ":"); idx >= 0 {
		if n, err := strconv.Atoi(val[idx+1:]); err == nil {
			return n
		}
	}
	return 0
}

// MTFData is the part of a .mtf file the combat engines need.
type MTFData struct {
	Chassis string
	Model   string
	Config  string

	Mass         int
	EngineRating int
	WalkMP       int
	JumpMP       int

	ArmorValues map[string]int // location code -> armor points

	Weapons []WeaponEntry

	// Critical slots per location, in file order.
	LocationEquipment map[string][]string
}

// WeaponEntry is a weapon from the Weapons:N summary block.
type WeaponEntry struct {
	Name     string
	Location string
}

// ParseMTFFile opens and parses a .mtf file.
func ParseMTFFile(path string) (*MTFData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtf: %w", err)
	}
	defer f.Close()
	return ParseMTF(f)
}

// ParseMTF reads a MegaMek unit file.
func ParseMTF(r io.Reader) (*MTFData, error) {
	data := &MTFData{
		ArmorValues:       make(map[string]int),
		LocationEquipment: make(map[string][]string),
	}

	scanner := bufio.NewScanner(r)
	// lore lines can be long
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentLocation string
	var inWeapons bool

	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lower := strings.ToLower(trimmed)

		if loc := matchLocationHeader(trimmed); loc != "" {
			currentLocation = loc
			inWeapons = false
			continue
		}
		if strings.HasPrefix(lower, "weapons:") {
			inWeapons = true
			currentLocation = ""
			continue
		}
		if currentLocation != "" && strings.Contains(trimmed, ":") {
			currentLocation = ""
		}
		if currentLocation != "" {
			if !strings.EqualFold(trimmed, "-Empty-") {
				data.LocationEquipment[currentLocation] = append(data.LocationEquipment[currentLocation], trimmed)
			}
			continue
		}
		if inWeapons {
			if parts := strings.SplitN(trimmed, ",", 2); len(parts) == 2 {
				data.Weapons = append(data.Weapons, WeaponEntry{
					Name:     strings.TrimSpace(parts[0]),
					Location: strings.TrimSpace(parts[1]),
				})
				continue
			}
			inWeapons = false
		}

		idx := strings.Index(trimmed, ":")
		if idx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
		val := strings.TrimSpace(trimmed[idx+1:])

		switch key {
		case "chassis":
			data.Chassis = val
		case "model":
			data.Model = val
		case "config":
			data.Config = val
		case "mass":
			data.Mass, _ = strconv.Atoi(val)
		case "engine":
			data.EngineRating = parseEngine(val)
		case "walk mp":
			data.WalkMP, _ = strconv.Atoi(val)
		case "jump mp":
			data.JumpMP, _ = strconv.Atoi(val)
		default:
			if code, ok := strings.CutSuffix(key, " armor"); ok {
				data.ArmorValues[strings.ToUpper(code)] = parseArmorValue(val)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtf: %w", err)
	}
	if data.Chassis == "" {
		return nil, fmt.Errorf("missing chassis field")
	}
	if data.Mass <= 0 {
		return nil, fmt.Errorf("%s: missing mass", data.FullName())
	}
	return data, nil
}

// locationHeaders maps slot block headers to biped location codes.
var locationHeaders = map[string]string{
	"Left Arm:":     "LA",
	"Right Arm:":    "RA",
	"Left Torso:":   "LT",
	"Right Torso:":  "RT",
	"Center Torso:": "CT",
	"Head:":         "HD",
	"Left Leg:":     "LL",
	"Right Leg:":    "RL",
	// quads
	"Front Left Leg:":  "FLL",
	"Front Right Leg:": "FRL",
	"Rear Left Leg:":   "RLL",
	"Rear Right Leg:":  "RRL",
}

func matchLocationHeader(line string) string {
	return locationHeaders[line]
}

// parseEngine parses "300 Fusion Engine(IS)" -> 300
func parseEngine(val string) int {
	rating, _ := strconv.Atoi(strings.SplitN(val, " ", 2)[0])
	return rating
}

// FullName returns "Chassis Model" or just "Chassis" if model is empty.
func (d *MTFData) FullName() string {
	if d.Model == "" {
		return d.Chassis
	}
	return d.Chassis + " " + d.Model
}

// TotalArmor returns the sum of all armor values.
func (d *MTFData) TotalArmor() int {
	total := 0
	for _, v := range d.ArmorValues {
		total += v
	}
	return total
}

// ─── Conversion ─────────────────────────────────────────────────────────────

var mechLocCodes = [world.NumMechLoc]string{"HD", "CT", "LT", "RT", "LA", "RA", "LL", "RL"}

// locIndex maps a location code or weapon location name to a mech location.
func locIndex(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, code := range mechLocCodes {
		if s == code {
			return i
		}
	}
	for header, code := range locationHeaders {
		if strings.EqualFold(strings.TrimSuffix(header, ":"), s) {
			return locIndex(code)
		}
	}
	return world.NoLocation
}

// physicalWeapons are slot names that make a usable club.
var physicalWeapons = []string{
	"hatchet", "sword", "mace", "flail", "wrecking ball", "retractable blade", "chain whip", "lance", "taser",
}

// Combatant builds a combat-ready mech from the parsed file.
func (d *MTFData) Combatant(id world.UnitID) (*world.Combatant, error) {
	if cfg := strings.ToLower(d.Config); cfg != "" && !strings.HasPrefix(cfg, "biped") {
		return nil, fmt.Errorf("%s (%s): %w", d.FullName(), d.Config, ErrNotBiped)
	}

	var armor [world.NumMechLoc]int
	for i, code := range mechLocCodes {
		armor[i] = d.ArmorValues[code]
	}
	rear := [3]int{d.ArmorValues["RTC"], d.ArmorValues["RTL"], d.ArmorValues["RTR"]}

	c := world.NewMech(id, d.FullName(), d.Mass, armor, rear)
	c.EngineRating = d.EngineRating
	c.WalkMP = d.WalkMP
	c.JumpMP = d.JumpMP

	for loc, code := range mechLocCodes {
		l := c.Loc(loc)
		for _, s := range d.LocationEquipment[code] {
			l.Slots = append(l.Slots, world.Slot{Name: s})
			lower := strings.ToLower(s)
			switch {
			case strings.Contains(lower, "case ii") || strings.HasSuffix(lower, "caseii"):
				l.CASEII = true
			case strings.HasSuffix(lower, "case"):
				l.CASE = true
			case strings.Contains(lower, "spikes"):
				l.Spikes = true
			case strings.Contains(lower, "a-pod") || strings.Contains(lower, "antipersonnelpod"):
				c.Pods = append(c.Pods, world.Pod{Kind: world.PodAntiPersonnel, Location: loc})
			case strings.Contains(lower, "b-pod") || strings.Contains(lower, "antibattlearmorpod"):
				c.Pods = append(c.Pods, world.Pod{Kind: world.PodAntiBattleArmor, Location: loc})
			case strings.Contains(lower, "anti-missile") || strings.Contains(lower, "antimissile"):
				c.AMS = true
			case strings.Contains(lower, "ammo"):
				c.Ammo[s] += shotsPerTon(lower)
			}
			for _, pw := range physicalWeapons {
				if strings.Contains(lower, pw) && c.Club == "" {
					c.Club = pw
				}
			}
		}
	}
	if c.AMS {
		for key, n := range c.Ammo {
			if strings.Contains(strings.ToLower(key), "ams") {
				c.AMSAmmo += n
			}
		}
	}

	for _, w := range d.Weapons {
		name := w.Name
		// "1 ISMediumLaser" style counts are dropped
		if f := strings.Fields(name); len(f) > 1 {
			if _, err := strconv.Atoi(f[0]); err == nil {
				name = strings.Join(f[1:], " ")
			}
		}
		c.Weapons = append(c.Weapons, world.Weapon{
			Name:       name,
			Location:   locIndex(w.Location),
			Autocannon: isAutocannon(name),
		})
	}
	return c, nil
}

// isAutocannon matches "AC/10", "ISAC10", "ISUltraAC5", "Autocannon/20" and
// the like.
func isAutocannon(name string) bool {
	n := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if strings.Contains(n, "autocannon") || strings.Contains(n, "ac/") {
		return true
	}
	for i := strings.Index(n, "ac"); i >= 0 && i+2 < len(n); {
		if c := n[i+2]; c >= '0' && c <= '9' {
			return true
		}
		j := strings.Index(n[i+2:], "ac")
		if j < 0 {
			break
		}
		i += 2 + j
	}
	return false
}

// shotsPerTon is the load of one ton of the named ammunition.
func shotsPerTon(slot string) int {
	n := strings.ReplaceAll(slot, " ", "")
	switch {
	case strings.Contains(n, "ams"):
		return 12
	case strings.Contains(n, "ac/20") || strings.Contains(n, "ac20"):
		return 5
	case strings.Contains(n, "ac/10") || strings.Contains(n, "ac10"):
		return 10
	case strings.Contains(n, "ac/5") || strings.Contains(n, "ac5"):
		return 20
	case strings.Contains(n, "ac/2") || strings.Contains(n, "ac2"):
		return 45
	case strings.Contains(n, "srm"):
		return 15
	case strings.Contains(n, "lrm"):
		return 8
	case strings.Contains(n, "machinegun") || strings.Contains(n, "mg"):
		return 200
	case strings.Contains(n, "gauss"):
		return 8
	}
	return 10
}
