package services

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserInput is the request body for creating or replacing a user.
type UserInput struct {
	Email    string            `json:"email" validate:"required,email,max=255"`
	Username string            `json:"username" validate:"required,min=3,max=64"`
	Password string            `json:"password" validate:"omitempty,min=6,max=72"`
	Name     models.Name       `json:"name"`
	Address  models.Address    `json:"address"`
	Phone    string            `json:"phone" validate:"max=32"`
	Status   models.UserStatus `json:"status" validate:"omitempty,oneof=Active Inactive Suspended"`
	Role     models.UserRole   `json:"role" validate:"omitempty,oneof=Customer Manager Admin"`
}

type UserService struct {
	Users     UserStore
	RequestID string
}

func (s UserService) List(ctx context.Context, p domain.ListParams) (domain.Page[models.User], error) {
	p = p.Normalize()
	users, total, err := userStore(s.Users).List(ctx, p)
	if err != nil {
		return domain.Page[models.User]{}, err
	}
	return domain.NewPage(users, total, p), nil
}

func (s UserService) Get(ctx context.Context, id int64) (models.User, error) {
	return userStore(s.Users).GetByID(ctx, id)
}

func (s UserService) Create(ctx context.Context, in UserInput) (models.User, error) {
	in = normalizeUserInput(in)
	if err := validateStruct(in); err != nil {
		return models.User{}, err
	}
	if in.Password == "" {
		return models.User{}, domain.ValidationError{Field: "Password", Msg: "is required"}
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	now := utils.NowUTC()
	u := applyUserInput(models.User{CreatedAt: now}, in)
	u.PasswordHash = hash
	u.UpdatedAt = now

	u, err = userStore(s.Users).Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "user", "created", fmt.Sprintf("user_id=%d", u.ID))
	return u, nil
}

// Update replaces the user's fields; an empty password keeps the current one.
func (s UserService) Update(ctx context.Context, id int64, in UserInput) (models.User, error) {
	in = normalizeUserInput(in)
	if err := validateStruct(in); err != nil {
		return models.User{}, err
	}
	store := userStore(s.Users)
	current, err := store.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	u := applyUserInput(current, in)
	if in.Password != "" {
		if u.PasswordHash, err = hashPassword(in.Password); err != nil {
			return models.User{}, err
		}
	}
	u.UpdatedAt = utils.NowUTC()

	u, err = store.Update(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "user", "modified", fmt.Sprintf("user_id=%d", u.ID))
	return u, nil
}

func (s UserService) Delete(ctx context.Context, id int64) error {
	if err := userStore(s.Users).Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "user", "deleted", fmt.Sprintf("user_id=%d", id))
	return nil
}

func normalizeUserInput(in UserInput) UserInput {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Name.Firstname = utils.NormalizeSpace(in.Name.Firstname)
	in.Name.Lastname = utils.NormalizeSpace(in.Name.Lastname)
	if in.Status == "" {
		in.Status = models.UserActive
	}
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	return in
}

func applyUserInput(u models.User, in UserInput) models.User {
	u.Email = in.Email
	u.Username = in.Username
	u.Name = in.Name
	u.Address = in.Address
	u.Phone = in.Phone
	u.Status = in.Status
	u.Role = in.Role
	return u
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.InternalError{Msg: "hash password", Err: err}
	}
	return string(b), nil
}
