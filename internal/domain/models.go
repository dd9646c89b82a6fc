package domain

import "time"

// Enumerations
const (
	RoleCustomer UserRole = "customer"
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "manager"

	BenefitDiscount BenefitType = "discount"
	BenefitLoyalty  BenefitType = "loyalty"
)

type UserRole string
type BenefitType string

type Money struct {
	Amount   int64
	Currency string
}

type User struct {
	ID                int64
	Name              string
	Email             string
	Phone             string
	Role              UserRole
	IsMember          bool
	MembershipPending bool
	LoginCount        int
	PasswordHash      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// Attendance is one clock-in session for a staff user on a calendar day.
// ClockOut stays nil while the session is open.
type Attendance struct {
	ID        int64
	UserID    int64
	UserName  string
	Date      time.Time
	ClockIn   time.Time
	ClockOut  *time.Time
	CreatedAt time.Time
}

// MemberBenefit is a discount or loyalty rule attached to a member.
// Value is a percentage (0-100) and only set for discount benefits;
// Threshold is a visit count and only set for loyalty benefits.
type MemberBenefit struct {
	ID        int64
	UserID    int64
	UserName  string
	Type      BenefitType
	Value     *float64
	Threshold *int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceType is a catalog entry with a fixed base price.
type ServiceType struct {
	ID    int64
	Name  string
	Label string
	Price Money
}

type Service struct {
	ID          int64
	UserID      int64
	EmployeeID  int64
	ServiceType string
	Notes       string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Transaction records what was actually charged for one service.
// TotalPrice is base price minus DiscountApplied, or zero on a free visit.
type Transaction struct {
	ID              int64
	CustomerID      int64
	ServiceID       int64
	TotalPrice      Money
	DiscountApplied Money
	FreeVisit       bool
	ServiceDate     time.Time
	CreatedAt       time.Time
}
