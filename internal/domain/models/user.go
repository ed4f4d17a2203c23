// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff roles. Admins and moderators manage the center; teachers are
// referenced by students and groups but carry no elevated permissions.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleTeacher   = "teacher"
)

// User is a staff account (admin, moderator, or teacher).
// Students are not users; they are enrollment records (see Student).
type User struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Status       string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
