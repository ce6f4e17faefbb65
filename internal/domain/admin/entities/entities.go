// Package entities contains admin permission types
package entities

import (
	"fmt"
	"time"
)

// Capability is one privileged area of the bot. The set is closed.
type Capability int

const (
	CapabilityMovies Capability = iota + 1
	CapabilityChannels
	CapabilityBroadcast
	CapabilityStats
	CapabilityPremium
	CapabilityAdmins
	CapabilitySettings
)

var capabilityNames = map[Capability]string{
	CapabilityMovies:    "movies",
	CapabilityChannels:  "channels",
	CapabilityBroadcast: "broadcast",
	CapabilityStats:     "stats",
	CapabilityPremium:   "premium",
	CapabilityAdmins:    "admins",
	CapabilitySettings:  "settings",
}

// AllCapabilities lists every capability in display order
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityMovies,
		CapabilityChannels,
		CapabilityBroadcast,
		CapabilityStats,
		CapabilityPremium,
		CapabilityAdmins,
		CapabilitySettings,
	}
}

// Valid reports whether c is a member of the closed set
func (c Capability) Valid() bool {
	_, ok := capabilityNames[c]
	return ok
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("capability(%d)", int(c))
}

// ParseCapability resolves a capability by name
func ParseCapability(name string) (Capability, bool) {
	for c, n := range capabilityNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// Permissions holds one flag per capability
type Permissions struct {
	Movies    bool
	Channels  bool
	Broadcast bool
	Stats     bool
	Premium   bool
	Admins    bool
	Settings  bool
}

// DefaultPermissions are granted to a newly added admin
func DefaultPermissions() Permissions {
	return Permissions{
		Movies:    true,
		Channels:  true,
		Broadcast: true,
		Stats:     true,
		Premium:   true,
	}
}

// AllPermissions grants every capability
func AllPermissions() Permissions {
	return Permissions{
		Movies:    true,
		Channels:  true,
		Broadcast: true,
		Stats:     true,
		Premium:   true,
		Admins:    true,
		Settings:  true,
	}
}

// Has returns the flag for c. It panics on a capability outside the set.
func (p Permissions) Has(c Capability) bool {
	return *p.field(c)
}

// Set changes the flag for c. It panics on a capability outside the set.
func (p *Permissions) Set(c Capability, value bool) {
	*p.field(c) = value
}

func (p *Permissions) field(c Capability) *bool {
	switch c {
	case CapabilityMovies:
		return &p.Movies
	case CapabilityChannels:
		return &p.Channels
	case CapabilityBroadcast:
		return &p.Broadcast
	case CapabilityStats:
		return &p.Stats
	case CapabilityPremium:
		return &p.Premium
	case CapabilityAdmins:
		return &p.Admins
	case CapabilitySettings:
		return &p.Settings
	}
	panic(fmt.Sprintf("admin: unknown capability %d", int(c)))
}

// Admin is a stored or configured administrator
type Admin struct {
	UserID      int64
	Permissions Permissions
	// SuperAdmin is computed from configuration, never stored
	SuperAdmin bool
	CreatedAt  time.Time
}
