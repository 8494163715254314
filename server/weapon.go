package main

// WeaponType identifies the player's active weapon
type WeaponType int

const (
	WeaponNormal WeaponType = iota
	WeaponLaser
	WeaponShotgun
	WeaponMissile
	WeaponSpread
)

// WeaponDef holds the stats for a weapon variant
type WeaponDef struct {
	Name       string
	FireRate   float64   // ms between shots
	Speed      float64   // units per tick
	Angles     []float64 // heading offsets, one bullet each
	Penetrates bool      // passes through obstacles
	Homing     bool      // steers toward the nearest enemy
	Color      string
	Particles  int // muzzle flash particle count
}

var Weapons = [...]WeaponDef{
	WeaponNormal: {
		Name: "normal", FireRate: 250, Speed: 10,
		Angles: []float64{0}, Color: "#ffff00", Particles: 3,
	},
	// Laser: fast, passes through obstacles
	WeaponLaser: {
		Name: "laser", FireRate: 100, Speed: 15,
		Angles: []float64{0}, Penetrates: true, Color: "#00ffff", Particles: 5,
	},
	// Shotgun: five-shot fan
	WeaponShotgun: {
		Name: "shotgun", FireRate: 400, Speed: 8,
		Angles: []float64{-0.3, -0.15, 0, 0.15, 0.3}, Color: "#ff6600", Particles: 8,
	},
	WeaponMissile: {
		Name: "missile", FireRate: 600, Speed: 6,
		Angles: []float64{0}, Homing: true, Color: "#ff0066", Particles: 4,
	},
	WeaponSpread: {
		Name: "spread", FireRate: 300, Speed: 10,
		Angles: []float64{0, -0.3, 0.3}, Color: "#9900ff", Particles: 6,
	},
}

// GetWeaponDef returns the definition for a weapon, normal for unknown values
func GetWeaponDef(w WeaponType) WeaponDef {
	if w < 0 || int(w) >= len(Weapons) {
		return Weapons[WeaponNormal]
	}
	return Weapons[w]
}

// ParseWeapon maps a weapon name to its type, normal for unknown names
func ParseWeapon(name string) WeaponType {
	for i, def := range Weapons {
		if def.Name == name {
			return WeaponType(i)
		}
	}
	return WeaponNormal
}

func (w WeaponType) String() string {
	return GetWeaponDef(w).Name
}
