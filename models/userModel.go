package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Fullname       string             `bson:"fullname" json:"fullname"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"`
	Contact        string             `bson:"contact" json:"contact"`
	Address        string             `bson:"address" json:"address"`
	City           string             `bson:"city" json:"city"`
	Country        string             `bson:"country" json:"country"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
	Admin          bool               `bson:"admin" json:"admin"`
	LastLogin      time.Time          `bson:"lastLogin" json:"lastLogin"`
	IsVerified     bool               `bson:"isVerified" json:"isVerified"`

	ResetPasswordToken          string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `bson:"resetPasswordTokenExpiresAt,omitempty" json:"-"`
	VerificationToken           string     `bson:"verificationToken,omitempty" json:"-"`
	VerificationTokenExpiresAt  *time.Time `bson:"verificationTokenExpiresAt,omitempty" json:"-"`

	Created_at time.Time `bson:"createdAt" json:"createdAt"`
	Updated_at time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewUser fills the profile placeholders a freshly signed up user starts with.
func NewUser(fullname, email, passwordHash, contact string, now time.Time) *User {
	return &User{
		ID:         primitive.NewObjectID(),
		Fullname:   fullname,
		Email:      email,
		Password:   passwordHash,
		Contact:    contact,
		Address:    "Update your address",
		City:       "Update your city",
		Country:    "Update your country",
		LastLogin:  now,
		Created_at: now,
		Updated_at: now,
	}
}

// ProfileUpdate is the set of fields a user may change on their own profile.
// Empty fields keep their current value.
type ProfileUpdate struct {
	Fullname       string `json:"fullname" validate:"omitempty,max=100"`
	Email          string `json:"email" validate:"omitempty,email"`
	Address        string `json:"address" validate:"omitempty,max=200"`
	City           string `json:"city" validate:"omitempty,max=100"`
	Country        string `json:"country" validate:"omitempty,max=100"`
	ProfilePicture string `json:"profilePicture"`
}

// Apply copies the non-empty fields onto u. The picture is set by the caller
// once it has been uploaded.
func (p ProfileUpdate) Apply(u *User) {
	if p.Fullname != "" {
		u.Fullname = p.Fullname
	}
	if p.Email != "" {
		u.Email = p.Email
	}
	if p.Address != "" {
		u.Address = p.Address
	}
	if p.City != "" {
		u.City = p.City
	}
	if p.Country != "" {
		u.Country = p.Country
	}
}
