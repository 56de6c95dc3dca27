package models

import (
	"strings"
	"time"
)

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateContactInput struct {
	Name    string `json:"name" validate:"required,max=80"`
	Email   string `json:"email" validate:"required,email,max=120"`
	Message string `json:"message" validate:"required"`
}

func (in *CreateContactInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Message = strings.TrimSpace(in.Message)
}

type ContactPatch struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=80"`
	Email   *string `json:"email" validate:"omitempty,email,max=120"`
	Message *string `json:"message" validate:"omitempty,min=1"`
}

func (p *ContactPatch) Normalize() {
	trimPtr(p.Name)
	trimPtr(p.Message)
	if p.Email != nil {
		*p.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
}

func (p ContactPatch) Apply(m *ContactMessage) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Message != nil {
		m.Message = *p.Message
	}
}
