package config

import (
	"fmt"
)

// Permissions is the set of data access rights the host grants to the extension.
type Permissions int

const (
	ReadRecords Permissions = 1 << iota
	UpdateRecords
)

// DefaultPermissions allows reading but not writing.
const DefaultPermissions = ReadRecords

func Perms(perms ...string) (Permissions, error) {
	var p Permissions
	err := p.Add(perms...)
	return p, err
}

func (p *Permissions) Set(perms Permissions)           { *p |= perms }
func (p *Permissions) Clear(perms Permissions)         { *p &= ^perms }
func (p Permissions) IsAllowed(perms Permissions) bool { return p&perms == perms }

func (p *Permissions) Add(perms ...string) error {
	for _, perm := range perms {
		switch perm {
		case "ReadRecords":
			p.Set(ReadRecords)
		case "UpdateRecords":
			p.Set(UpdateRecords)
		default:
			return fmt.Errorf("invalid permission: %s", perm)
		}
	}
	return nil
}

func (p Permissions) String() string {
	names := ""
	if p.IsAllowed(ReadRecords) {
		names += ",ReadRecords"
	}
	if p.IsAllowed(UpdateRecords) {
		names += ",UpdateRecords"
	}
	if names == "" {
		return "None"
	}
	return names[1:]
}
