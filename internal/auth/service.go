package auth

import (
	"errors"

	"github.com/google/uuid"
	"github.com/inkwellhq/blog-backend/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	// Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken is returned when the username uniqueness constraint
	// rejects a registration, whether found by the pre-check or by losing a
	// concurrent-registration race at insert time.
	ErrUsernameTaken = errors.New("username already taken")
)

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Verify   string `json:"verify"`
	Email    string `json:"email"`
}

// RegisterUser validates the input, hashes the password, and creates the
// account. Field errors come back together so the caller can re-render the
// whole form. Uniqueness is ultimately enforced by the unique index on
// username: the pre-check gives the friendly common-case answer, the index
// closes the check-then-act race.
func RegisterUser(input RegisterInput) (*User, FieldErrors, error) {
	if errs := ValidateRegistration(input.Username, input.Password, input.Verify, input.Email); errs != nil {
		return nil, errs, nil
	}

	var existing User
	err := db.DB.First(&existing, "username = ?", input.Username).Error
	if err == nil {
		return nil, nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hashed, err := HashPassword(input.Username, input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := User{
		UserID:         uuid.NewString(),
		Username:       input.Username,
		HashedPassword: hashed,
		Email:          input.Email,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}

	return &user, nil, nil
}

// LoginUser checks the credentials and returns the account on success. Both
// failure paths collapse into ErrInvalidCredentials.
func LoginUser(username, password string) (*User, error) {
	var user User
	if err := db.DB.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(username, password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// UpdatePassword re-derives the stored digest after confirming the current
// password. The new password goes through the same length rule as signup.
func UpdatePassword(userID, currentPassword, newPassword string) error {
	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return err
	}

	if !VerifyPassword(user.Username, currentPassword, user.HashedPassword) {
		return ErrInvalidCredentials
	}

	if len(newPassword) < 3 || len(newPassword) > 20 {
		return FieldErrors{{Field: "new_password", Reason: "Invalid Password"}}
	}

	hashed, err := HashPassword(user.Username, newPassword)
	if err != nil {
		return err
	}

	return db.DB.Model(&user).Update("hashed_password", hashed).Error
}
