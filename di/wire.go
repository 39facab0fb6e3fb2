//go:build wireinject
// +build wireinject

package di

import (
	"tourbook/config"
	"tourbook/infras/jwt"
	"tourbook/infras/kafka"
	"tourbook/infras/mail"
	"tourbook/infras/otel"
	"tourbook/infras/postgres"
	"tourbook/infras/redis"
	"tourbook/infras/s3"
	"tourbook/permissions"
	"tourbook/shared/cache"
	"tourbook/shared/worker"
	"tourbook/transport/event"
	"tourbook/transport/http"
	"tourbook/transport/http/middleware"
	"tourbook/transport/http/router"

	announcementRepository "tourbook/internal/domains/announcement/repository"
	announcementService "tourbook/internal/domains/announcement/service"
	authService "tourbook/internal/domains/auth/service"
	bookingRepository "tourbook/internal/domains/booking/repository"
	bookingService "tourbook/internal/domains/booking/service"
	contactRepository "tourbook/internal/domains/contact/repository"
	contactService "tourbook/internal/domains/contact/service"
	galleryRepository "tourbook/internal/domains/gallery/repository"
	galleryService "tourbook/internal/domains/gallery/service"
	notificationService "tourbook/internal/domains/notification/service"
	settingRepository "tourbook/internal/domains/setting/repository"
	settingService "tourbook/internal/domains/setting/service"
	tourRepository "tourbook/internal/domains/tour/repository"
	tourService "tourbook/internal/domains/tour/service"
	userRepository "tourbook/internal/domains/user/repository"
	userService "tourbook/internal/domains/user/service"

	announcementHandler "tourbook/internal/handlers/announcement"
	authHandler "tourbook/internal/handlers/auth"
	bookingHandler "tourbook/internal/handlers/booking"
	contactHandler "tourbook/internal/handlers/contact"
	galleryHandler "tourbook/internal/handlers/gallery"
	settingHandler "tourbook/internal/handlers/setting"
	tourHandler "tourbook/internal/handlers/tour"
	uploadHandler "tourbook/internal/handlers/upload"
	userHandler "tourbook/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	mail.New,
	worker.New,
	wire.Bind(new(worker.Submitter), new(*worker.Pool)),
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

var tourDomain = wire.NewSet(
	tourRepository.New,
	tourService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var announcementDomain = wire.NewSet(
	announcementRepository.New,
	announcementService.New,
)

var settingDomain = wire.NewSet(
	settingRepository.New,
	settingService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	tourDomain,
	bookingDomain,
	contactDomain,
	galleryDomain,
	announcementDomain,
	settingDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	tourHandler.New,
	bookingHandler.New,
	contactHandler.New,
	galleryHandler.New,
	uploadHandler.New,
	announcementHandler.New,
	settingHandler.New,
	authHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		wire.Struct(new(http.Resources), "*"),
		http.New,
	)

	return &http.HTTP{}
}

func InitializeConsumer() *event.Consumer {
	wire.Build(
		configurations,
		otel.New,
		kafka.New,
		mail.New,
		worker.New,
		wire.Bind(new(worker.Submitter), new(*worker.Pool)),
		notificationDomain,
		event.New,
	)

	return &event.Consumer{}
}

func InitializeUserService() userService.User {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		redis.New,
		sharedHelpers,
		userDomain,
	)

	return nil
}
