package service

import (
	"context"
	"fmt"

	"car-catalog-api/internal/constants"
	apperrors "car-catalog-api/internal/errors"
	"car-catalog-api/internal/metrics"
	"car-catalog-api/internal/models"
	"car-catalog-api/internal/repository"

	"go.uber.org/zap"
)

const (
	CarNotFoundMessage = "Car not found"
	CarCreatedMessage  = "Car created successfully"
)

// CarService maps requests onto the record store and shapes the responses
type CarService struct {
	repo   repository.CarRepository
	logger *zap.Logger
}

func NewCarService(repo repository.CarRepository, logger *zap.Logger) *CarService {
	return &CarService{
		repo:   repo,
		logger: logger,
	}
}

func (s *CarService) ListCars(ctx context.Context) (*models.CarListResponse, error) {
	cars, err := s.repo.FindAll(ctx)
	metrics.ObserveOperation("list", err)
	if err != nil {
		s.logger.Error(fmt.Sprintf("%s Failed to list cars", constants.APIName()), zap.Error(err))
		return nil, apperrors.NewDatabaseError(err)
	}

	return &models.CarListResponse{Cars: cars}, nil
}

// GetCar returns a 404 AppError when the id is unknown
func (s *CarService) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	metrics.ObserveOperation("get", err)
	if err != nil {
		s.logger.Error(fmt.Sprintf("%s Failed to get car", constants.APIName()), zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.NewDatabaseError(err)
	}

	if car == nil {
		s.logger.Debug(fmt.Sprintf("%s Car not found", constants.APIName()), zap.Int64("id", id))
		return nil, apperrors.NewNotFoundError(CarNotFoundMessage)
	}

	return car, nil
}

func (s *CarService) CarsByYear(ctx context.Context, year int) (*models.CarFilterResponse, error) {
	cars, err := s.repo.FindByYear(ctx, year)
	metrics.ObserveOperation("filter_year", err)
	if err != nil {
		s.logger.Error(fmt.Sprintf("%s Failed to filter cars by year", constants.APIName()), zap.Int("year", year), zap.Error(err))
		return nil, apperrors.NewDatabaseError(err)
	}

	return models.NewCarFilterResponse(cars), nil
}

func (s *CarService) CarsByMaxPrice(ctx context.Context, price int) (*models.CarFilterResponse, error) {
	cars, err := s.repo.FindByMaxPrice(ctx, price)
	metrics.ObserveOperation("filter_price", err)
	if err != nil {
		s.logger.Error(fmt.Sprintf("%s Failed to filter cars by price", constants.APIName()), zap.Int("price", price), zap.Error(err))
		return nil, apperrors.NewDatabaseError(err)
	}

	return models.NewCarFilterResponse(cars), nil
}

// CreateCar validates req and stores it. The store assigns the id.
func (s *CarService) CreateCar(ctx context.Context, req *models.CreateCarRequest) (*models.CreateCarResponse, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	car := req.ToCar()
	err := s.repo.Create(ctx, car)
	metrics.ObserveOperation("create", err)
	if err != nil {
		s.logger.Error(fmt.Sprintf("%s Failed to create car", constants.APIName()), zap.Error(err))
		return nil, apperrors.NewDatabaseError(err)
	}

	s.logger.Info(fmt.Sprintf("%s Car created", constants.APIName()),
		zap.Int64("id", car.ID),
		zap.String("brand", car.Brand),
		zap.String("model", car.Model),
	)

	return &models.CreateCarResponse{
		Message: CarCreatedMessage,
		Car:     *car,
	}, nil
}
