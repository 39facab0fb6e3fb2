package dto

import (
	"strings"
	"time"

	"tourbook/internal/domains/user/model"
	"tourbook/shared"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	gModel "tourbook/shared/model"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin manager"`
}

func (r *CreateUserRequest) ToModel(user, hashedPassword string, now time.Time) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleManager
	}

	return model.User{
		ID:       uuid.NewString(),
		Username: strings.TrimSpace(r.Username),
		Email:    NormalizeEmail(r.Email),
		Password: hashedPassword,
		Role:     role,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Role     string `json:"role"     validate:"required,oneof=admin manager"`
}

func (r *UpdateUserRequest) ToUpdateMap(user string) map[string]any {
	return shared.WithModified(map[string]any{
		model.FieldUsername: strings.TrimSpace(r.Username),
		model.FieldEmail:    NormalizeEmail(r.Email),
		model.FieldRole:     r.Role,
	}, user)
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Username = user.Username
	r.Email = user.Email
	r.Role = user.Role
	r.Metadata.FromModel(user.Metadata)
}

func FromModels(users []model.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, user := range users {
		res[i].FromModel(user)
	}

	return res
}

// NormalizeEmail is the stored form of an email, used for both writes and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
