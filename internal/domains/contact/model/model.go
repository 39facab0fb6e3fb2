package model

import (
	"time"

	"tourbook/shared/model"
)

const (
	TableName  = "contact_messages"
	EntityName = "contact"

	FieldID           = "id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldSubject      = "subject"
	FieldMessage      = "message"
	FieldStatus       = "status"
	FieldReplyMessage = "reply_message"
	FieldRepliedAt    = "replied_at"
)

const (
	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
)

var Statuses = []string{StatusNew, StatusRead, StatusReplied}

type Contact struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	Subject      string     `db:"subject"`
	Message      string     `db:"message"`
	Status       string     `db:"status"`
	ReplyMessage *string    `db:"reply_message"`
	RepliedAt    *time.Time `db:"replied_at"`
	model.Metadata
}
