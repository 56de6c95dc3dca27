package models

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

type Route struct {
	ID          int64     `json:"id"`
	RouteName   string    `json:"route_name"`
	Slug        string    `json:"slug"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateRouteInput struct {
	RouteName   string `json:"route_name" validate:"required,max=100"`
	Origin      string `json:"origin" validate:"max=50"`
	Destination string `json:"destination" validate:"max=50"`
}

func (in *CreateRouteInput) Normalize() {
	in.RouteName = strings.TrimSpace(in.RouteName)
	in.Origin = strings.TrimSpace(in.Origin)
	in.Destination = strings.TrimSpace(in.Destination)
}

func (in CreateRouteInput) Route() Route {
	return Route{
		RouteName:   in.RouteName,
		Slug:        RouteSlug(in.RouteName),
		Origin:      in.Origin,
		Destination: in.Destination,
	}
}

type RoutePatch struct {
	RouteName   *string `json:"route_name" validate:"omitempty,min=1,max=100"`
	Origin      *string `json:"origin" validate:"omitempty,max=50"`
	Destination *string `json:"destination" validate:"omitempty,max=50"`
}

func (p *RoutePatch) Normalize() {
	trimPtr(p.RouteName)
	trimPtr(p.Origin)
	trimPtr(p.Destination)
}

func (p RoutePatch) Apply(r *Route) {
	if p.RouteName != nil {
		r.RouteName = *p.RouteName
		r.Slug = RouteSlug(*p.RouteName)
	}
	if p.Origin != nil {
		r.Origin = *p.Origin
	}
	if p.Destination != nil {
		r.Destination = *p.Destination
	}
}

// RouteSlug derives the URL-safe lookup key for a route name.
func RouteSlug(name string) string {
	return slug.Make(name)
}
