package dto

import (
	"errors"
	"strings"
	"time"

	"tourbook/internal/domains/tour/model"
	"tourbook/shared"
	gDto "tourbook/shared/dto"
	gModel "tourbook/shared/model"

	"github.com/google/uuid"
)

var ErrParticipantsRange = errors.New("min_participants must be less than or equal to max_participants")

// TourRequest is the body of both create and update. Optional fields left out
// of the body take their defaults, update is a full overwrite.
type TourRequest struct {
	Title                 string            `json:"title"                   validate:"required,max=255"`
	Description           string            `json:"description"             validate:"required"`
	Price                 float64           `json:"price"                   validate:"gte=0"`
	PriceUSD              *float64          `json:"price_usd"               validate:"omitempty,gte=0"`
	OriginalPrice         *float64          `json:"original_price"          validate:"omitempty,gte=0"`
	OriginalPriceUSD      *float64          `json:"original_price_usd"      validate:"omitempty,gte=0"`
	DiscountPercentage    *int              `json:"discount_percentage"     validate:"omitempty,gte=0,lte=100"`
	Duration              string            `json:"duration"                validate:"required,max=100"`
	Highlights            gModel.StringList `json:"highlights"`
	Includes              gModel.StringList `json:"includes"`
	ImageURL              string            `json:"image_url"               validate:"max=500"`
	GalleryImages         gModel.StringList `json:"gallery_images"`
	GetYourGuideURL       *string           `json:"getyourguide_url"        validate:"omitempty,max=500"`
	Category              string            `json:"category"                validate:"max=100"`
	FreeCancellation      *bool             `json:"free_cancellation"`
	ReserveNowPayLater    *bool             `json:"reserve_now_pay_later"`
	PickupIncluded        *bool             `json:"pickup_included"`
	PrivateGroupAvailable *bool             `json:"private_group_available"`
	CancellationHours     *int              `json:"cancellation_hours"      validate:"omitempty,gte=0"`
	MinParticipants       *int              `json:"min_participants"        validate:"omitempty,gte=1"`
	MaxParticipants       *int              `json:"max_participants"        validate:"omitempty,gte=1"`
	AdultAgeMin           *int              `json:"adult_age_min"           validate:"omitempty,gte=0"`
	AdultAgeMax           *int              `json:"adult_age_max"           validate:"omitempty,gte=0"`
	ChildAgeMin           *int              `json:"child_age_min"           validate:"omitempty,gte=0"`
	ChildAgeMax           *int              `json:"child_age_max"           validate:"omitempty,gte=0"`
	InfantAgeMax          *int              `json:"infant_age_max"          validate:"omitempty,gte=0"`
	Languages             gModel.StringList `json:"languages"`
	StartingTimes         gModel.StringList `json:"starting_times"          validate:"dive,clock"`
	PickupDetails         *string           `json:"pickup_details"`
	TransportRating       *float64          `json:"transport_rating"        validate:"omitempty,gte=0,lte=5"`
	IsActive              *gModel.Flag      `json:"is_active"`
}

// Validate checks the rules that span more than one field.
func (r *TourRequest) Validate() error {
	minimum := valueOr(r.MinParticipants, model.DefaultMinParticipants)
	maximum := valueOr(r.MaxParticipants, model.DefaultMaxParticipants)

	if minimum > maximum {
		return ErrParticipantsRange
	}

	return nil
}

func valueOr[T any](value *T, def T) T {
	if value == nil {
		return def
	}

	return *value
}

func emptyToNil(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}

	return value
}

func roundPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}

	rounded := shared.RoundMoney(*value)

	return &rounded
}

// apply copies the request onto tour with every default filled in.
func (r *TourRequest) apply(tour *model.Tour) {
	tour.Title = strings.TrimSpace(r.Title)
	tour.Description = r.Description
	tour.Price = shared.RoundMoney(r.Price)
	tour.PriceUSD = roundPtr(r.PriceUSD)
	tour.OriginalPrice = roundPtr(r.OriginalPrice)
	tour.OriginalPriceUSD = roundPtr(r.OriginalPriceUSD)
	tour.DiscountPercentage = valueOr(r.DiscountPercentage, 0)
	tour.Duration = r.Duration
	tour.Highlights = r.Highlights.OrDefault()
	tour.Includes = r.Includes.OrDefault()
	tour.ImageURL = r.ImageURL
	tour.GalleryImages = r.GalleryImages.OrDefault()
	tour.GetYourGuideURL = emptyToNil(r.GetYourGuideURL)
	tour.Category = r.Category
	tour.FreeCancellation = valueOr(r.FreeCancellation, true)
	tour.ReserveNowPayLater = valueOr(r.ReserveNowPayLater, true)
	tour.PickupIncluded = valueOr(r.PickupIncluded, false)
	tour.PrivateGroupAvailable = valueOr(r.PrivateGroupAvailable, false)
	tour.CancellationHours = valueOr(r.CancellationHours, model.DefaultCancellationHours)
	tour.MinParticipants = valueOr(r.MinParticipants, model.DefaultMinParticipants)
	tour.MaxParticipants = valueOr(r.MaxParticipants, model.DefaultMaxParticipants)
	tour.AdultAgeMin = valueOr(r.AdultAgeMin, model.DefaultAdultAgeMin)
	tour.AdultAgeMax = valueOr(r.AdultAgeMax, model.DefaultAdultAgeMax)
	tour.ChildAgeMin = valueOr(r.ChildAgeMin, model.DefaultChildAgeMin)
	tour.ChildAgeMax = valueOr(r.ChildAgeMax, model.DefaultChildAgeMax)
	tour.InfantAgeMax = valueOr(r.InfantAgeMax, model.DefaultInfantAgeMax)
	tour.Languages = r.Languages.OrDefault(model.DefaultLanguages...)
	tour.StartingTimes = r.StartingTimes.OrDefault(model.DefaultStartingTimes...)
	tour.PickupDetails = valueOr(emptyToNil(r.PickupDetails), model.DefaultPickupDetails)
	tour.TransportRating = r.TransportRating
	tour.IsActive = gModel.FlagOr(r.IsActive, true)
}

func (r *TourRequest) ToModel(user string, now time.Time) model.Tour {
	tour := model.Tour{
		ID:       uuid.NewString(),
		Metadata: gModel.NewMetadata(user, now),
	}

	r.apply(&tour)

	return tour
}

// ToUpdateMap lists every column so an update overwrites the whole row.
// is_active is only written when the body sets it, a soft deleted tour stays
// hidden otherwise.
func (r *TourRequest) ToUpdateMap(user string) map[string]any {
	var tour model.Tour

	r.apply(&tour)

	fields := map[string]any{
		model.FieldTitle:                 tour.Title,
		model.FieldDescription:           tour.Description,
		model.FieldPrice:                 tour.Price,
		model.FieldPriceUSD:              tour.PriceUSD,
		model.FieldOriginalPrice:         tour.OriginalPrice,
		model.FieldOriginalPriceUSD:      tour.OriginalPriceUSD,
		model.FieldDiscountPercentage:    tour.DiscountPercentage,
		model.FieldDuration:              tour.Duration,
		model.FieldHighlights:            tour.Highlights,
		model.FieldIncludes:              tour.Includes,
		model.FieldImageURL:              tour.ImageURL,
		model.FieldGalleryImages:         tour.GalleryImages,
		model.FieldGetYourGuideURL:       tour.GetYourGuideURL,
		model.FieldCategory:              tour.Category,
		model.FieldFreeCancellation:      tour.FreeCancellation,
		model.FieldReserveNowPayLater:    tour.ReserveNowPayLater,
		model.FieldPickupIncluded:        tour.PickupIncluded,
		model.FieldPrivateGroupAvailable: tour.PrivateGroupAvailable,
		model.FieldCancellationHours:     tour.CancellationHours,
		model.FieldMinParticipants:       tour.MinParticipants,
		model.FieldMaxParticipants:       tour.MaxParticipants,
		model.FieldAdultAgeMin:           tour.AdultAgeMin,
		model.FieldAdultAgeMax:           tour.AdultAgeMax,
		model.FieldChildAgeMin:           tour.ChildAgeMin,
		model.FieldChildAgeMax:           tour.ChildAgeMax,
		model.FieldInfantAgeMax:          tour.InfantAgeMax,
		model.FieldLanguages:             tour.Languages,
		model.FieldStartingTimes:         tour.StartingTimes,
		model.FieldPickupDetails:         tour.PickupDetails,
		model.FieldTransportRating:       tour.TransportRating,
	}

	if r.IsActive != nil {
		fields[model.FieldIsActive] = tour.IsActive
	}

	return shared.WithModified(fields, user)
}

type TourResponse struct {
	ID                    string            `json:"id"`
	Title                 string            `json:"title"`
	Description           string            `json:"description"`
	Price                 float64           `json:"price"`
	PriceUSD              *float64          `json:"price_usd"`
	OriginalPrice         *float64          `json:"original_price"`
	OriginalPriceUSD      *float64          `json:"original_price_usd"`
	DiscountPercentage    int               `json:"discount_percentage"`
	Duration              string            `json:"duration"`
	Highlights            gModel.StringList `json:"highlights"`
	Includes              gModel.StringList `json:"includes"`
	ImageURL              string            `json:"image_url"`
	GalleryImages         gModel.StringList `json:"gallery_images"`
	GetYourGuideURL       *string           `json:"getyourguide_url"`
	Category              string            `json:"category"`
	FreeCancellation      bool              `json:"free_cancellation"`
	ReserveNowPayLater    bool              `json:"reserve_now_pay_later"`
	PickupIncluded        bool              `json:"pickup_included"`
	PrivateGroupAvailable bool              `json:"private_group_available"`
	CancellationHours     int               `json:"cancellation_hours"`
	MinParticipants       int               `json:"min_participants"`
	MaxParticipants       int               `json:"max_participants"`
	AdultAgeMin           int               `json:"adult_age_min"`
	AdultAgeMax           int               `json:"adult_age_max"`
	ChildAgeMin           int               `json:"child_age_min"`
	ChildAgeMax           int               `json:"child_age_max"`
	InfantAgeMax          int               `json:"infant_age_max"`
	Languages             gModel.StringList `json:"languages"`
	StartingTimes         gModel.StringList `json:"starting_times"`
	PickupDetails         string            `json:"pickup_details"`
	TransportRating       *float64          `json:"transport_rating"`
	IsActive              bool              `json:"is_active"`
	gDto.Metadata
}

func (r *TourResponse) FromModel(tour model.Tour) {
	r.ID = tour.ID
	r.Title = tour.Title
	r.Description = tour.Description
	r.Price = tour.Price
	r.PriceUSD = tour.PriceUSD
	r.OriginalPrice = tour.OriginalPrice
	r.OriginalPriceUSD = tour.OriginalPriceUSD
	r.DiscountPercentage = tour.DiscountPercentage
	r.Duration = tour.Duration
	r.Highlights = tour.Highlights.OrDefault()
	r.Includes = tour.Includes.OrDefault()
	r.ImageURL = tour.ImageURL
	r.GalleryImages = tour.GalleryImages.OrDefault()
	r.GetYourGuideURL = tour.GetYourGuideURL
	r.Category = tour.Category
	r.FreeCancellation = tour.FreeCancellation
	r.ReserveNowPayLater = tour.ReserveNowPayLater
	r.PickupIncluded = tour.PickupIncluded
	r.PrivateGroupAvailable = tour.PrivateGroupAvailable
	r.CancellationHours = tour.CancellationHours
	r.MinParticipants = tour.MinParticipants
	r.MaxParticipants = tour.MaxParticipants
	r.AdultAgeMin = tour.AdultAgeMin
	r.AdultAgeMax = tour.AdultAgeMax
	r.ChildAgeMin = tour.ChildAgeMin
	r.ChildAgeMax = tour.ChildAgeMax
	r.InfantAgeMax = tour.InfantAgeMax
	r.Languages = tour.Languages.OrDefault()
	r.StartingTimes = tour.StartingTimes.OrDefault()
	r.PickupDetails = tour.PickupDetails
	r.TransportRating = tour.TransportRating
	r.IsActive = tour.IsActive
	r.Metadata.FromModel(tour.Metadata)
}

func FromModels(tours []model.Tour) []TourResponse {
	res := make([]TourResponse, len(tours))
	for i, tour := range tours {
		res[i].FromModel(tour)
	}

	return res
}

type ListToursResponse = gDto.Paginated[TourResponse]
