package entities

import (
	"fmt"
	"time"

	"lifex.health/application/utils"
)

type UserRole string

const (
	RoleAdmin        UserRole = "ADMIN"
	RoleReceptionist UserRole = "RECEPTIONIST"
	RoleNurse        UserRole = "NURSE"
	RoleDoctor       UserRole = "DOCTOR"
	RolePatient      UserRole = "PATIENT"
)

type AccountStatus string

const (
	AccountPending  AccountStatus = "PENDING"
	AccountApproved AccountStatus = "APPROVED"
	AccountRejected AccountStatus = "REJECTED"
)

// This represents a user of the hospital records system. Passwords and the
// rest of the credential surface live with the authentication collaborator;
// only the fields the biometric flows read are modelled here.
type User struct {
	Email         string        `bson:"email" json:"email"`
	FirstName     string        `bson:"firstName" json:"firstName"`
	LastName      string        `bson:"lastName" json:"lastName"`
	Role          UserRole      `bson:"role" json:"role"`
	AccountStatus AccountStatus `bson:"accountStatus" json:"accountStatus"`
	Department    *string       `bson:"department" json:"department,omitempty"`
	Deactivated   bool          `bson:"deactivated" json:"-"`
	LastLogin     *time.Time    `bson:"lastLogin" json:"lastLogin"`

	ID        string     `bson:"_id" json:"id"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt" json:"-"`
}

func (model User) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}

func (model User) FullName() string {
	return fmt.Sprintf("%s %s", model.FirstName, model.LastName)
}
