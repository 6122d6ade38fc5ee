package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/database"
	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"

	"gorm.io/gorm"
)

const (
	listUsersQuery  = "SELECT id, name, email, age FROM users ORDER BY id"
	getUserQuery    = "SELECT id, name, email, age FROM users WHERE id = $1"
	createUserQuery = "INSERT INTO users (name, email, age) VALUES ($1, $2, $3) RETURNING id, name, email, age"
	deleteUserQuery = "DELETE FROM users WHERE id = $1"
)

var userUpdate = database.PartialUpdate{
	Table:     "users",
	Key:       "id",
	Columns:   []string{"name", "email", "age"},
	Returning: []string{"id", "name", "email", "age"},
}

// BuildUpdateStatement turns a patch into an UPDATE touching only its present fields.
func BuildUpdateStatement(id int, patch UserPatch) (database.Statement, error) {
	stmt, err := userUpdate.Build(id, patch.Values())
	if errors.Is(err, reasoncodes.ErrNoFields) {
		return stmt, reasoncodes.NoFieldsProvided(noFieldsMessage)
	}
	return stmt, err
}

type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id int, patch UserPatch) (User, error)
	Delete(ctx context.Context, id int) error
}

type sqlRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) List(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := r.db.WithContext(ctx).Raw(listUsersQuery).Scan(&users).Error; err != nil {
		return nil, reasoncodes.Store("An error occurred while fetching the users.", err)
	}
	return users, nil
}

func (r *sqlRepository) GetByID(ctx context.Context, id int) (User, error) {
	var user User
	result := r.db.WithContext(ctx).Raw(getUserQuery, id).Scan(&user)
	if result.Error != nil {
		return User{}, reasoncodes.Store("An error occurred while fetching the user.", result.Error)
	}
	if result.RowsAffected == 0 {
		return User{}, notFound(id)
	}
	return user, nil
}

func (r *sqlRepository) Create(ctx context.Context, user User) (User, error) {
	var created User
	result := r.db.WithContext(ctx).Raw(createUserQuery, user.Name, user.Email, user.Age).Scan(&created)
	if result.Error != nil {
		return User{}, reasoncodes.Store("An error occurred while adding the user.", result.Error)
	}
	return created, nil
}

func (r *sqlRepository) Update(ctx context.Context, id int, patch UserPatch) (User, error) {
	stmt, err := BuildUpdateStatement(id, patch)
	if err != nil {
		return User{}, err
	}

	var updated User
	result := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&updated)
	if result.Error != nil {
		return User{}, reasoncodes.Store("An error occurred while updating the user.", result.Error)
	}
	if result.RowsAffected == 0 {
		return User{}, notFound(id)
	}
	return updated, nil
}

func (r *sqlRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Exec(deleteUserQuery, id)
	if result.Error != nil {
		return reasoncodes.Store("An error occurred while deleting the user.", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}

func notFound(id int) error {
	return reasoncodes.NotFound(fmt.Sprintf("User with ID %d not found", id))
}
