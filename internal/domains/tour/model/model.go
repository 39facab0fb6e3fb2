package model

import "tourbook/shared/model"

const (
	TableName  = "tours"
	EntityName = "tour"

	FieldID                    = "id"
	FieldTitle                 = "title"
	FieldDescription           = "description"
	FieldPrice                 = "price"
	FieldPriceUSD              = "price_usd"
	FieldOriginalPrice         = "original_price"
	FieldOriginalPriceUSD      = "original_price_usd"
	FieldDiscountPercentage    = "discount_percentage"
	FieldDuration              = "duration"
	FieldHighlights            = "highlights"
	FieldIncludes              = "includes"
	FieldImageURL              = "image_url"
	FieldGalleryImages         = "gallery_images"
	FieldGetYourGuideURL       = "getyourguide_url"
	FieldCategory              = "category"
	FieldFreeCancellation      = "free_cancellation"
	FieldReserveNowPayLater    = "reserve_now_pay_later"
	FieldPickupIncluded        = "pickup_included"
	FieldPrivateGroupAvailable = "private_group_available"
	FieldCancellationHours     = "cancellation_hours"
	FieldMinParticipants       = "min_participants"
	FieldMaxParticipants       = "max_participants"
	FieldAdultAgeMin           = "adult_age_min"
	FieldAdultAgeMax           = "adult_age_max"
	FieldChildAgeMin           = "child_age_min"
	FieldChildAgeMax           = "child_age_max"
	FieldInfantAgeMax          = "infant_age_max"
	FieldLanguages             = "languages"
	FieldStartingTimes         = "starting_times"
	FieldPickupDetails         = "pickup_details"
	FieldTransportRating       = "transport_rating"
	FieldIsActive              = "is_active"
)

const (
	DefaultCancellationHours = 24
	DefaultMinParticipants   = 1
	DefaultMaxParticipants   = 50
	DefaultAdultAgeMin       = 12
	DefaultAdultAgeMax       = 99
	DefaultChildAgeMin       = 3
	DefaultChildAgeMax       = 11
	DefaultInfantAgeMax      = 2
	DefaultPickupDetails     = "Pickup from your hotel or accommodation in Doha"
)

var (
	DefaultLanguages     = []string{"English"}
	DefaultStartingTimes = []string{"09:00", "14:00", "18:00"}
)

type Tour struct {
	ID                    string           `db:"id"`
	Title                 string           `db:"title"`
	Description           string           `db:"description"`
	Price                 float64          `db:"price"`
	PriceUSD              *float64         `db:"price_usd"`
	OriginalPrice         *float64         `db:"original_price"`
	OriginalPriceUSD      *float64         `db:"original_price_usd"`
	DiscountPercentage    int              `db:"discount_percentage"`
	Duration              string           `db:"duration"`
	Highlights            model.StringList `db:"highlights"`
	Includes              model.StringList `db:"includes"`
	ImageURL              string           `db:"image_url"`
	GalleryImages         model.StringList `db:"gallery_images"`
	GetYourGuideURL       *string          `db:"getyourguide_url"`
	Category              string           `db:"category"`
	FreeCancellation      bool             `db:"free_cancellation"`
	ReserveNowPayLater    bool             `db:"reserve_now_pay_later"`
	PickupIncluded        bool             `db:"pickup_included"`
	PrivateGroupAvailable bool             `db:"private_group_available"`
	CancellationHours     int              `db:"cancellation_hours"`
	MinParticipants       int              `db:"min_participants"`
	MaxParticipants       int              `db:"max_participants"`
	AdultAgeMin           int              `db:"adult_age_min"`
	AdultAgeMax           int              `db:"adult_age_max"`
	ChildAgeMin           int              `db:"child_age_min"`
	ChildAgeMax           int              `db:"child_age_max"`
	InfantAgeMax          int              `db:"infant_age_max"`
	Languages             model.StringList `db:"languages"`
	StartingTimes         model.StringList `db:"starting_times"`
	PickupDetails         string           `db:"pickup_details"`
	TransportRating       *float64         `db:"transport_rating"`
	IsActive              bool             `db:"is_active"`
	model.Metadata
}
