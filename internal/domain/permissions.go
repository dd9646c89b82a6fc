package domain

// Permission is a capability a role grants. Routes are gated on
// permissions rather than raw role comparisons so that role changes
// stay local to this table.
type Permission string

const (
	PermAttendanceSelf  Permission = "attendance:self"
	PermAttendanceAdmin Permission = "attendance:admin"
	PermCustomerLookup  Permission = "customers:lookup"
	PermServiceWrite    Permission = "services:write"
	PermBillingWrite    Permission = "billing:write"
	PermReceiptRead     Permission = "receipts:read"
	PermSalesRead       Permission = "sales:read"
	PermMemberAdmin     Permission = "members:admin"
	PermBenefitAdmin    Permission = "benefits:admin"
)

var rolePermissions = map[UserRole][]Permission{
	RoleCustomer: {},
	RoleEmployee: {
		PermAttendanceSelf,
		PermCustomerLookup,
		PermServiceWrite,
		PermBillingWrite,
		PermReceiptRead,
	},
	RoleManager: {
		PermAttendanceSelf,
		PermAttendanceAdmin,
		PermSalesRead,
		PermMemberAdmin,
		PermBenefitAdmin,
	},
}

// Can reports whether the role grants the permission.
func (r UserRole) Can(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}
