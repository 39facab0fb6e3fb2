package router

import (
	"tourbook/internal/handlers/announcement"
	"tourbook/internal/handlers/auth"
	"tourbook/internal/handlers/booking"
	"tourbook/internal/handlers/contact"
	"tourbook/internal/handlers/gallery"
	"tourbook/internal/handlers/setting"
	"tourbook/internal/handlers/tour"
	"tourbook/internal/handlers/upload"
	"tourbook/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Tour         tour.Handler
	Booking      booking.Handler
	Contact      contact.Handler
	Gallery      gallery.Handler
	Upload       upload.Handler
	Announcement announcement.Handler
	Setting      setting.Handler
	Auth         auth.Handler
	User         user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes registers every domain route on the /api group.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Tour.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Contact.Router(router)
	r.DomainHandlers.Gallery.Router(router)
	r.DomainHandlers.Upload.Router(router)
	r.DomainHandlers.Announcement.Router(router)
	r.DomainHandlers.Setting.Router(router)

	router.Route("/auth", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
