package models

import (
	"strings"
	"time"
)

type Driver struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	IDNumber       string    `json:"id_number"`
	DrivingLicense string    `json:"driving_license"`
	PhoneNumber    string    `json:"phone_number"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateDriverInput struct {
	FullName       string `json:"full_name" validate:"required,max=80"`
	IDNumber       string `json:"id_number" validate:"required,max=20"`
	DrivingLicense string `json:"driving_license" validate:"required,max=20"`
	PhoneNumber    string `json:"phone_number" validate:"required,max=20"`
}

func (in *CreateDriverInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.IDNumber = strings.TrimSpace(in.IDNumber)
	in.DrivingLicense = strings.TrimSpace(in.DrivingLicense)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
}

func (in CreateDriverInput) Driver() Driver {
	return Driver{
		FullName:       in.FullName,
		IDNumber:       in.IDNumber,
		DrivingLicense: in.DrivingLicense,
		PhoneNumber:    in.PhoneNumber,
	}
}

type DriverPatch struct {
	FullName       *string `json:"full_name" validate:"omitempty,min=1,max=80"`
	IDNumber       *string `json:"id_number" validate:"omitempty,min=1,max=20"`
	DrivingLicense *string `json:"driving_license" validate:"omitempty,min=1,max=20"`
	PhoneNumber    *string `json:"phone_number" validate:"omitempty,min=1,max=20"`
}

func (p *DriverPatch) Normalize() {
	trimPtr(p.FullName)
	trimPtr(p.IDNumber)
	trimPtr(p.DrivingLicense)
	trimPtr(p.PhoneNumber)
}

func (p DriverPatch) Apply(d *Driver) {
	if p.FullName != nil {
		d.FullName = *p.FullName
	}
	if p.IDNumber != nil {
		d.IDNumber = *p.IDNumber
	}
	if p.DrivingLicense != nil {
		d.DrivingLicense = *p.DrivingLicense
	}
	if p.PhoneNumber != nil {
		d.PhoneNumber = *p.PhoneNumber
	}
}
