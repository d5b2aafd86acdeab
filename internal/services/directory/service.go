package directory

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/jkwan-hk/eatery/internal/dependencies/clock"
	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/storage"
)

// Fields is the optional-field set a restaurant record is built from.
// Empty strings mean "not supplied" and are omitted from the stored
// record entirely. Lat and Lng are kept as strings until both are
// present; they are then converted to numeric coordinates.
type Fields struct {
	Name     string
	Borough  string
	Cuisine  string
	Street   string
	Building string
	Zipcode  string
	Lat      string
	Lng      string

	// Photo handling. A nil Photo means "no new upload". DeletePhoto
	// clears an existing photo on update; it is ignored on create.
	Photo         []byte
	PhotoMimetype string
	DeletePhoto   bool
}

// Service implements the restaurant directory operations and the
// ownership guard over them
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new directory service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Create builds a restaurant record from the supplied fields and stores it.
// The owner is always the authenticated identity; any owner value in raw
// input is ignored.
func (s *Service) Create(ctx context.Context, fields Fields, owner string) (model.RestaurantID, error) {
	doc, err := buildRestaurant(fields)
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	doc.Owner = owner
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if len(fields.Photo) > 0 {
		doc.Photo = fields.Photo
		doc.PhotoMimetype = fields.PhotoMimetype
	}

	id, err := s.storage.CreateRestaurant(ctx, doc)
	if err != nil {
		return "", err
	}

	s.logger.Info("restaurant created",
		slog.String("id", string(id)),
		slog.String("owner", owner),
	)
	return id, nil
}

// List returns restaurants matching the filter in listing projection
// (no photo bytes, no grades). An empty filter returns all records.
func (s *Service) List(ctx context.Context, filter model.RestaurantFilter) ([]*model.Restaurant, error) {
	return s.storage.ListRestaurants(ctx, filter)
}

// Show returns the full record for one restaurant
func (s *Service) Show(ctx context.Context, id model.RestaurantID) (*model.Restaurant, error) {
	return s.storage.GetRestaurant(ctx, id)
}

// GetImage returns the photo bytes and mimetype for a restaurant
func (s *Service) GetImage(ctx context.Context, id model.RestaurantID) ([]byte, string, error) {
	r, err := s.storage.GetRestaurant(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if len(r.Photo) == 0 {
		return nil, "", model.ErrNoPhoto
	}
	return r.Photo, r.PhotoMimetype, nil
}

// Update replaces the optional-field set of a restaurant with the one
// built from fields: anything omitted from the submission is unset on the
// stored record. The photo is the exception: it is carried over unless a
// new upload replaces it or DeletePhoto clears it. Owner, creation time
// and grades are preserved.
func (s *Service) Update(ctx context.Context, id model.RestaurantID, fields Fields, requester string) error {
	if err := s.RequireOwner(ctx, id, requester); err != nil {
		return err
	}

	existing, err := s.storage.GetRestaurant(ctx, id)
	if err != nil {
		return err
	}

	doc, err := buildRestaurant(fields)
	if err != nil {
		return err
	}

	doc.ID = id
	doc.Owner = existing.Owner
	doc.CreatedAt = existing.CreatedAt
	doc.UpdatedAt = s.clock.Now()

	switch {
	case fields.DeletePhoto:
		// photo explicitly removed
	case len(fields.Photo) > 0:
		doc.Photo = fields.Photo
		doc.PhotoMimetype = fields.PhotoMimetype
	default:
		doc.Photo = existing.Photo
		doc.PhotoMimetype = existing.PhotoMimetype
	}

	if err := s.storage.ReplaceRestaurant(ctx, doc); err != nil {
		return err
	}

	s.logger.Info("restaurant updated", slog.String("id", string(id)))
	return nil
}

// Delete removes a restaurant. Deleting an id that is already gone is
// not an error.
func (s *Service) Delete(ctx context.Context, id model.RestaurantID, requester string) error {
	if err := s.RequireOwner(ctx, id, requester); err != nil {
		return err
	}

	if err := s.storage.DeleteRestaurant(ctx, id); err != nil {
		return err
	}

	s.logger.Info("restaurant deleted", slog.String("id", string(id)))
	return nil
}

// Rate records a grade for the restaurant. Each user gets at most one
// grade per restaurant; the append is atomic with respect to concurrent
// raters.
func (s *Service) Rate(ctx context.Context, id model.RestaurantID, rater string, score int) error {
	if score < 1 || score > 5 {
		return model.ErrInvalidScore
	}
	return s.storage.AddGrade(ctx, id, model.Grade{User: rater, Score: score})
}

// RequireOwner fails with model.ErrNotOwner unless the identity owns the
// restaurant. A missing record passes through: deletion races are
// tolerated and the subsequent operation reports not-found or no-ops.
func (s *Service) RequireOwner(ctx context.Context, id model.RestaurantID, identity string) error {
	r, err := s.storage.GetRestaurant(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrRestaurantNotFound) {
			return nil
		}
		return err
	}
	if r.Owner != identity {
		return model.ErrNotOwner
	}
	return nil
}

// buildRestaurant applies the optional-field rule: only non-empty fields
// are copied, the address sub-record exists only when at least one address
// field was supplied, and coordinates exist only when both lat and lng are
// present and numeric.
func buildRestaurant(fields Fields) (*model.Restaurant, error) {
	r := &model.Restaurant{
		Name:    fields.Name,
		Borough: fields.Borough,
		Cuisine: fields.Cuisine,
	}

	hasAddressField := fields.Street != "" || fields.Building != "" ||
		fields.Zipcode != "" || fields.Lat != "" || fields.Lng != ""
	if !hasAddressField {
		return r, nil
	}

	addr := &model.Address{
		Street:   fields.Street,
		Building: fields.Building,
		Zipcode:  fields.Zipcode,
	}

	if fields.Lat != "" || fields.Lng != "" {
		if fields.Lat == "" || fields.Lng == "" {
			return nil, model.ErrInvalidCoordinate
		}
		lat, latErr := strconv.ParseFloat(fields.Lat, 64)
		lng, lngErr := strconv.ParseFloat(fields.Lng, 64)
		if latErr != nil || lngErr != nil {
			return nil, model.ErrInvalidCoordinate
		}
		addr.Coord = &model.Coord{Lat: lat, Lng: lng}
	}

	r.Address = addr
	return r, nil
}
