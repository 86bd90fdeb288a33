package models

// ReportsToKind tags the reporting relationship of a user. The hierarchy is
// fixed-depth (manager -> supervisor -> member); this type makes that an
// explicit invariant instead of an emergent property of two nullable columns.
type ReportsToKind int

const (
	ReportsToNone ReportsToKind = iota
	ReportsToSupervisor
	ReportsToManager
)

// ReportsTo identifies the direct superior of a user, if any.
type ReportsTo struct {
	Kind ReportsToKind
	ID   uint64
}

// ReportsTo resolves the user's direct superior. Members report to their
// supervisor when one is set, otherwise directly to their manager.
// Supervisors report to their manager. Managers and super admins report to
// nobody.
func (u *User) ReportsTo() ReportsTo {
	switch u.Role {
	case RoleMember:
		if u.SupervisorID != nil {
			return ReportsTo{Kind: ReportsToSupervisor, ID: *u.SupervisorID}
		}
		if u.ManagerID != nil {
			return ReportsTo{Kind: ReportsToManager, ID: *u.ManagerID}
		}
	case RoleSupervisor:
		if u.ManagerID != nil {
			return ReportsTo{Kind: ReportsToManager, ID: *u.ManagerID}
		}
	}
	return ReportsTo{Kind: ReportsToNone}
}
