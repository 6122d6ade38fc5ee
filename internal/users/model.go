// Package users is the PostgreSQL backed users CRUD API.
package users

import (
	"strconv"
	"strings"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"
)

type User struct {
	ID    int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null" json:"email"`
	Age   int    `gorm:"not null" json:"age"`
}

func (User) TableName() string {
	return "users"
}

func (u User) Key() string {
	return strconv.Itoa(u.ID)
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Age   *int   `json:"age" binding:"required,gte=0"`
}

func (r CreateUserRequest) ToUser() User {
	user := User{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
	}
	if r.Age != nil {
		user.Age = *r.Age
	}
	return user
}

// UserPatch is a partial update. Absent fields keep their stored value.
type UserPatch struct {
	Name  utilities.Optional[string] `json:"name" swaggertype:"string"`
	Email utilities.Optional[string] `json:"email" swaggertype:"string"`
	Age   utilities.Optional[int]    `json:"age" swaggertype:"integer"`
}

// Values returns the present fields keyed by column name.
func (p UserPatch) Values() map[string]any {
	values := map[string]any{}
	if p.Name.Present() {
		values["name"] = strings.TrimSpace(p.Name.Value)
	}
	if p.Email.Present() {
		values["email"] = strings.TrimSpace(p.Email.Value)
	}
	if p.Age.Present() {
		values["age"] = p.Age.Value
	}
	return values
}
