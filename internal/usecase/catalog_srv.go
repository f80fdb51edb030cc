package usecase

import (
	"context"
	"fmt"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/dto/request"
	"tasktakr/internal/dto/response"
	"tasktakr/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	// Public browse endpoints
	ListServices(ctx context.Context, req *request.ListServicesRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	GetProvider(ctx context.Context, providerID string) (*response.ProviderResponse, error)

	// Provider-owned endpoints
	CreateProviderProfile(ctx context.Context, userID string, req *request.CreateProviderProfileRequest) (*response.ProviderResponse, error)
	UpdateProviderProfile(ctx context.Context, userID string, req *request.UpdateProviderProfileRequest) (*response.ProviderResponse, error)
	CreateService(ctx context.Context, userID string, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, userID, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	GetOwnServices(ctx context.Context, userID string) ([]response.ServiceResponse, error)
	SetAvailability(ctx context.Context, userID string, req *request.UpdateAvailabilityRequest) (*response.ProviderResponse, error)
	GetDashboard(ctx context.Context, userID string) (*response.DashboardResponse, error)
	GetEarnings(ctx context.Context, userID, rangeName string) (*response.EarningsResponse, error)

	// Admin
	SetApprovalStatus(ctx context.Context, providerID string, status entity.ApprovalStatus) (*response.ProviderResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context, req *request.ListServicesRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	services, err := s.repo.Service.FindActive(ctx, req.Category, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find services: %w", err)
	}

	total, err := s.repo.Service.CountActive(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("count services: %w", err)
	}

	items := make([]response.ServiceResponse, len(services))
	for i, service := range services {
		items[i] = response.ServiceToResponse(service)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceUUID)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) GetProvider(ctx context.Context, providerID string) (*response.ProviderResponse, error) {
	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, fmt.Errorf("invalid provider ID format %s: %w", providerID, err)
	}

	provider, err := s.repo.Provider.FindByID(ctx, providerUUID)
	if err != nil {
		return nil, fmt.Errorf("find provider: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("provider %s not found", providerID)
	}

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *catalogService) CreateProviderProfile(ctx context.Context, userID string, req *request.CreateProviderProfileRequest) (*response.ProviderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create provider profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	existing, err := s.repo.Provider.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("check existing provider profile: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("provider profile already exists")
	}

	provider := &entity.Provider{
		UserID:         userUUID,
		Category:       req.Category,
		City:           req.City,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		ApprovalStatus: entity.ApprovalPending,
		Availability:   entity.AvailabilityOffline,
		MaxDailyJobs:   req.MaxDailyJobs,
	}
	provider.ID = utils.GenerateUUID()
	provider.CreatedAt = time.Now()
	provider.UpdatedAt = provider.CreatedAt

	if err := s.repo.Provider.Create(ctx, provider); err != nil {
		return nil, fmt.Errorf("create provider profile: %w", err)
	}

	s.log.Info("Provider profile created",
		zap.String("provider_id", provider.ID.String()),
		zap.String("user_id", userID),
	)

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *catalogService) UpdateProviderProfile(ctx context.Context, userID string, req *request.UpdateProviderProfileRequest) (*response.ProviderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	provider, err := s.findOwnProvider(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		provider.Category = *req.Category
	}
	if req.City != nil {
		provider.City = *req.City
	}
	if req.Latitude != nil {
		provider.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		provider.Longitude = req.Longitude
	}
	if req.MaxDailyJobs != nil {
		provider.MaxDailyJobs = *req.MaxDailyJobs
	}
	provider.UpdatedAt = time.Now()

	if err := s.repo.Provider.Update(ctx, provider); err != nil {
		return nil, fmt.Errorf("update provider profile: %w", err)
	}

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *catalogService) CreateService(ctx context.Context, userID string, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create service validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	provider, err := s.findOwnProvider(ctx, userID)
	if err != nil {
		return nil, err
	}

	if provider.ApprovalStatus != entity.ApprovalApproved {
		return nil, fmt.Errorf("provider is not approved")
	}

	service := &entity.Service{
		ProviderID:      provider.UserID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	service.ID = utils.GenerateUUID()
	service.CreatedAt = time.Now()
	service.UpdatedAt = service.CreatedAt

	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, userID, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceUUID)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}
	if service.ProviderID != userUUID {
		return nil, fmt.Errorf("service %s is not owned by caller", serviceID)
	}

	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) GetOwnServices(ctx context.Context, userID string) ([]response.ServiceResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	services, err := s.repo.Service.FindByProvider(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("find own services: %w", err)
	}

	items := make([]response.ServiceResponse, len(services))
	for i, service := range services {
		items[i] = response.ServiceToResponse(service)
	}

	return items, nil
}

func (s *catalogService) SetAvailability(ctx context.Context, userID string, req *request.UpdateAvailabilityRequest) (*response.ProviderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	provider, err := s.findOwnProvider(ctx, userID)
	if err != nil {
		return nil, err
	}

	provider.Availability = entity.AvailabilityStatus(req.Status)
	provider.UpdatedAt = time.Now()

	if err := s.repo.Provider.UpdateAvailability(ctx, provider.UserID, provider.Availability); err != nil {
		return nil, fmt.Errorf("update availability: %w", err)
	}

	s.log.Info("Provider availability changed",
		zap.String("provider_id", provider.ID.String()),
		zap.String("availability", req.Status),
	)

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *catalogService) GetDashboard(ctx context.Context, userID string) (*response.DashboardResponse, error) {
	provider, err := s.findOwnProvider(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	earnings, jobs, err := s.repo.Booking.EarningsByProviderSince(ctx, provider.UserID, monthStart)
	if err != nil {
		return nil, fmt.Errorf("monthly earnings: %w", err)
	}

	upcoming, err := s.repo.Booking.FindUpcomingByProvider(ctx, provider.UserID, now, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("upcoming bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(upcoming))
	for i, booking := range upcoming {
		items[i] = response.BookingToResponse(booking)
	}

	return &response.DashboardResponse{
		MonthlyEarnings:  earnings,
		CompletedJobs:    jobs,
		AverageRating:    provider.AverageRating,
		TotalReviews:     provider.TotalReviews,
		Availability:     string(provider.Availability),
		UpcomingBookings: items,
	}, nil
}

func (s *catalogService) GetEarnings(ctx context.Context, userID, rangeName string) (*response.EarningsResponse, error) {
	provider, err := s.findOwnProvider(ctx, userID)
	if err != nil {
		return nil, err
	}

	since, normalized := earningsSince(rangeName, time.Now())

	total, jobs, err := s.repo.Booking.EarningsByProviderSince(ctx, provider.UserID, since)
	if err != nil {
		return nil, fmt.Errorf("earnings since %s: %w", since.Format("2006-01-02"), err)
	}

	return &response.EarningsResponse{
		Range:         normalized,
		TotalEarnings: total,
		CompletedJobs: jobs,
	}, nil
}

// earningsSince maps a range keyword onto its window start. Unknown values
// fall back to monthly.
func earningsSince(rangeName string, now time.Time) (time.Time, string) {
	switch rangeName {
	case "daily":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), "daily"
	case "weekly":
		return now.AddDate(0, 0, -7), "weekly"
	case "yearly":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), "yearly"
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), "monthly"
	}
}

func (s *catalogService) SetApprovalStatus(ctx context.Context, providerID string, status entity.ApprovalStatus) (*response.ProviderResponse, error) {
	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, fmt.Errorf("invalid provider ID format %s: %w", providerID, err)
	}

	provider, err := s.repo.Provider.FindByID(ctx, providerUUID)
	if err != nil {
		return nil, fmt.Errorf("find provider: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("provider %s not found", providerID)
	}

	provider.ApprovalStatus = status
	provider.UpdatedAt = time.Now()

	if err := s.repo.Provider.Update(ctx, provider); err != nil {
		return nil, fmt.Errorf("update approval status: %w", err)
	}

	s.log.Info("Provider approval status changed",
		zap.String("provider_id", providerID),
		zap.String("status", string(status)),
	)

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *catalogService) findOwnProvider(ctx context.Context, userID string) (*entity.Provider, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	provider, err := s.repo.Provider.FindByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("find provider profile: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("provider profile not found")
	}

	return provider, nil
}
