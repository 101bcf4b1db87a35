package repositories

import (
	"context"
	"errors"
	"luminaops/internal/database"
	. "luminaops/internal/models"
	"strings"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id uuid.UUID, fn func(user *User) error) (*User, error)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	unlock := r.db.Locks.Lock("user-email:" + strings.ToLower(user.Email))
	defer unlock()

	if existing, _ := r.GetByEmail(ctx, user.Email); existing != nil {
		return Invalid("email %s is already registered", user.Email)
	}

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "userID", user.ID)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("user", id)
		}
		return nil, r.log.Function("GetByID").Err("failed to get user by id", err, "userID", id)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("user with email", email)
		}
		return nil, r.log.Function("GetByEmail").Err("failed to get user by email", err, "email", email)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := r.db.SQLWithContext(ctx).Order("rowid").Find(&users).Error; err != nil {
		return nil, r.log.Function("List").Err("failed to list users", err)
	}
	return users, nil
}

func (r *userRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	fn func(user *User) error,
) (*User, error) {
	var user User
	err := r.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&user); err != nil {
			return err
		}
		return tx.Save(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
