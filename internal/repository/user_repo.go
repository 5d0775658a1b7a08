package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"chargemap/internal/models"
)

const usersCollection = "users"

var (
	// ErrUserNotFound represents missing user documents.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken surfaces the unique email index violation.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository handles CRUD for the users collection.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns repository instance.
func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{col: database.Collection(usersCollection)}
}

// Create inserts a new user, relying on the unique email index for
// duplicate detection.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = time.Now().UTC()

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := r.col.FindOne(ctx, query).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
