package models

import (
	"strings"
	"time"
)

type Admin struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	IDNumber    string    `json:"id_number"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateAdminInput struct {
	FullName    string `json:"full_name" validate:"required,max=80"`
	IDNumber    string `json:"id_number" validate:"required,max=20"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
}

func (in *CreateAdminInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.IDNumber = strings.TrimSpace(in.IDNumber)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
}

func (in CreateAdminInput) Admin() Admin {
	return Admin{FullName: in.FullName, IDNumber: in.IDNumber, PhoneNumber: in.PhoneNumber}
}

type AdminPatch struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=1,max=80"`
	IDNumber    *string `json:"id_number" validate:"omitempty,min=1,max=20"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=1,max=20"`
}

func (p *AdminPatch) Normalize() {
	trimPtr(p.FullName)
	trimPtr(p.IDNumber)
	trimPtr(p.PhoneNumber)
}

func (p AdminPatch) Apply(a *Admin) {
	if p.FullName != nil {
		a.FullName = *p.FullName
	}
	if p.IDNumber != nil {
		a.IDNumber = *p.IDNumber
	}
	if p.PhoneNumber != nil {
		a.PhoneNumber = *p.PhoneNumber
	}
}
