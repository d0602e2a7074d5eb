package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nerrad567/smarthome-core/internal/house"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
	"github.com/nerrad567/smarthome-core/internal/zipcode"
)

// LocationInput is a raw house location.
type LocationInput struct {
	Street     string
	DoorNumber string
	ZipCode    string
	City       string
	Country    string
	Latitude   float64
	Longitude  float64
}

// HouseService manages the single house of the deployment.
type HouseService struct {
	repo    house.Repository
	zips    zipcode.Resolver
	houseID vo.HouseID
	logger  Logger
}

// NewHouseService creates a service for the house identified by houseID.
func NewHouseService(repo house.Repository, zips zipcode.Resolver, houseID vo.HouseID) *HouseService {
	return &HouseService{repo: repo, zips: zips, houseID: houseID, logger: noopLogger{}}
}

// SetLogger sets the logger for the service.
func (s *HouseService) SetLogger(logger Logger) {
	s.logger = logger
}

// HouseID returns the configured house id.
func (s *HouseService) HouseID() vo.HouseID {
	return s.houseID
}

// EnsureHouse loads the configured house, creating it without a location
// on first start.
func (s *HouseService) EnsureHouse(ctx context.Context) (*house.House, error) {
	h, err := s.repo.Get(ctx, s.houseID)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, house.ErrHouseNotFound) {
		return nil, err
	}

	h, err = house.New(s.houseID, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	s.logger.Info("house created", "id", s.houseID.String())
	return h, nil
}

// Get returns the configured house.
func (s *HouseService) Get(ctx context.Context) (*house.House, error) {
	return s.repo.Get(ctx, s.houseID)
}

// ConfigureLocation validates the address against the enabled zip code
// rules and replaces the house location.
func (s *HouseService) ConfigureLocation(ctx context.Context, in LocationInput) (*vo.Location, error) {
	addr, err := vo.NewAddress(in.Street, in.DoorNumber, in.ZipCode, in.City, in.Country, s.zips)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	gps, err := vo.NewGPSCode(in.Latitude, in.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	h, err := s.repo.Get(ctx, s.houseID)
	if err != nil {
		return nil, err
	}
	loc := h.EditLocation(addr, gps)
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}

	s.logger.Info("house location configured", "id", s.houseID.String(), "city", in.City, "country", in.Country)
	return loc, nil
}
