package model

import "time"

// Role names used by the authorization middleware.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// User represents an application user as stored in the `users` table.
// Profile fields are edited through the versioned update path only;
// Version is bumped on every write and checked by concurrent editors.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – CUSTOMER or ADMIN.
//  FirstName    – given name (may be empty).
//  LastName     – family name (may be empty).
//  Phone        – contact phone number (may be empty).
//  DateOfBirth  – optional date of birth.
//  IsActive     – whether the account is active.
//  Version      – optimistic-concurrency version token.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64     // users.id
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	Role         string     // users.role
	FirstName    string     // users.first_name
	LastName     string     // users.last_name
	Phone        string     // users.phone
	DateOfBirth  *time.Time // users.date_of_birth (nullable)
	IsActive     bool       // users.is_active
	Version      uint64     // users.version
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}
