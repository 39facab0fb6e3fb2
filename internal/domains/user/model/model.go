package model

import (
	"tourbook/shared/constant"
	"tourbook/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
)

// PublicColumns is every column except the password hash.
var PublicColumns = []string{
	FieldID,
	FieldUsername,
	FieldEmail,
	FieldRole,
	constant.FieldCreatedAt,
	constant.FieldModifiedAt,
	constant.FieldCreatedBy,
	constant.FieldModifiedBy,
}

type User struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
	Password string `db:"password"`
	Role     string `db:"role"`
	model.Metadata
}
