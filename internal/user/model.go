package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Phone     string             `bson:"phone,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Profile is the wire representation of a user: what the API returns
// and what the client session caches. The password hash never leaves
// the user package.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}
