package dto

import (
	"strings"
	"time"

	"tourbook/internal/domains/contact/model"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	gModel "tourbook/shared/model"
	"tourbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (r *CreateContactRequest) ToModel(user string, now time.Time) model.Contact {
	return model.Contact{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.TrimSpace(r.Email),
		Subject:  strings.TrimSpace(r.Subject),
		Message:  r.Message,
		Status:   model.StatusNew,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied"`
}

type ReplyRequest struct {
	ReplyMessage string `json:"replyMessage" validate:"required,max=5000"`
}

type ContactResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Subject      string  `json:"subject"`
	Message      string  `json:"message"`
	Status       string  `json:"status"`
	ReplyMessage *string `json:"reply_message"`
	RepliedAt    *string `json:"replied_at"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(contact model.Contact) {
	r.ID = contact.ID
	r.Name = contact.Name
	r.Email = contact.Email
	r.Subject = contact.Subject
	r.Message = contact.Message
	r.Status = contact.Status
	r.ReplyMessage = contact.ReplyMessage

	if contact.RepliedAt != nil {
		repliedAt := timezone.Format(*contact.RepliedAt, constant.DateTimeFormat)
		r.RepliedAt = &repliedAt
	}

	r.Metadata.FromModel(contact.Metadata)
}

func FromModels(contacts []model.Contact) []ContactResponse {
	res := make([]ContactResponse, len(contacts))
	for i, contact := range contacts {
		res[i].FromModel(contact)
	}

	return res
}
