package constants

import "strings"

// Privileges is the server-assigned permission flag set.
type Privileges int32

const (
	PrivilegeRestricted Privileges = 0
	PrivilegeNormal     Privileges = 1 << 0
	PrivilegeBAT        Privileges = 1 << 1
	PrivilegeSupporter  Privileges = 1 << 2
	PrivilegePeppy      Privileges = 1 << 3
	PrivilegeAdmin      Privileges = 1 << 4
	PrivilegeTournament Privileges = 1 << 5
)

// Has reports whether every bit of p is active.
func (p Privileges) Has(priv Privileges) bool {
	return p&priv == priv
}

func (p Privileges) String() string {
	if p == PrivilegeRestricted {
		return "Restricted"
	}
	names := []struct {
		priv Privileges
		name string
	}{
		{PrivilegeNormal, "Normal"},
		{PrivilegeBAT, "BAT"},
		{PrivilegeSupporter, "Supporter"},
		{PrivilegePeppy, "Peppy"},
		{PrivilegeAdmin, "Admin"},
		{PrivilegeTournament, "Tournament"},
	}
	var out []string
	for _, entry := range names {
		if p&entry.priv != 0 {
			out = append(out, entry.name)
		}
	}
	return strings.Join(out, "|")
}
