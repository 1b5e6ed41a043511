package game

import (
	"errors"
	"fmt"
	"strings"
)

// WeaponType defines different types of weapons
type WeaponType int

const (
	WeaponTypePistol WeaponType = iota
	WeaponTypeRifle
	WeaponTypeShotgun
)

var ErrUnknownWeapon = errors.New("unknown weapon type")

// WeaponConfig holds configuration for each weapon type
type WeaponConfig struct {
	Type       WeaponType
	Damage     float64
	MaxAmmo    int
	FireRate   float64 // Seconds between shots
	ReloadTime float64 // Seconds
}

// GetWeaponConfig returns configuration for a weapon type
func GetWeaponConfig(weaponType WeaponType) WeaponConfig {
	switch weaponType {
	case WeaponTypePistol:
		return WeaponConfig{
			Type:       WeaponTypePistol,
			Damage:     10,
			MaxAmmo:    12,
			FireRate:   0.5,
			ReloadTime: 1.0,
		}
	case WeaponTypeRifle:
		return WeaponConfig{
			Type:       WeaponTypeRifle,
			Damage:     15,
			MaxAmmo:    30,
			FireRate:   0.1,
			ReloadTime: 2.0,
		}
	case WeaponTypeShotgun:
		return WeaponConfig{
			Type:       WeaponTypeShotgun,
			Damage:     25,
			MaxAmmo:    8,
			FireRate:   1.0,
			ReloadTime: 2.5,
		}
	default:
		return GetWeaponConfig(WeaponTypePistol)
	}
}

func (t WeaponType) String() string {
	switch t {
	case WeaponTypePistol:
		return "pistol"
	case WeaponTypeRifle:
		return "rifle"
	case WeaponTypeShotgun:
		return "shotgun"
	default:
		return "unknown"
	}
}

// ParseWeaponType maps a weapon name to its type
func ParseWeaponType(name string) (WeaponType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pistol", "":
		return WeaponTypePistol, nil
	case "rifle":
		return WeaponTypeRifle, nil
	case "shotgun":
		return WeaponTypeShotgun, nil
	default:
		return WeaponTypePistol, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
	}
}
