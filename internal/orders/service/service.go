package service

import (
	"context"
	"fmt"

	"cerrajeria_backend/internal/orders/domain"
	"cerrajeria_backend/internal/orders/repository"
	"cerrajeria_backend/internal/orders/transport"
	"cerrajeria_backend/platform/apperr"
	"cerrajeria_backend/platform/config"
	"cerrajeria_backend/platform/events"
	"cerrajeria_backend/platform/logger"
)

const defaultPageSize = 20

// Service provides business logic for service requests, customers and dispatchers.
type Service struct {
	repo        repository.Repository
	bus         events.Bus
	log         *logger.Logger
	loc         timeSource
	phoneRegion string
}

// New creates a new orders service. The business timezone controls the date
// and time stamped on committed requests; the phone region controls how
// sender identities without a country code are parsed.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger, cfg config.BusinessConfig) (*Service, error) {
	loc, err := newTimeSource(cfg.GetBusinessTimezone())
	if err != nil {
		return nil, fmt.Errorf("load business timezone: %w", err)
	}
	return &Service{
		repo:        repo,
		bus:         bus,
		log:         log,
		loc:         loc,
		phoneRegion: cfg.GetDefaultPhoneRegion(),
	}, nil
}

// GetRequest returns a single service request.
func (s *Service) GetRequest(ctx context.Context, id int64) (transport.RequestResponse, error) {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return transport.RequestResponse{}, err
	}
	return toRequestResponse(req), nil
}

// ListRequests returns a filtered, paginated page of service requests.
func (s *Service) ListRequests(ctx context.Context, q transport.ListRequestsQuery) (transport.RequestListResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	params := repository.ListRequestsParams{
		City:         q.City,
		DispatcherID: q.DispatcherID,
		DateFrom:     q.DateFrom,
		DateTo:       q.DateTo,
		Offset:       (page - 1) * pageSize,
		Limit:        pageSize,
	}
	if q.Status != "" {
		st := domain.Status(q.Status)
		if !st.Valid() {
			return transport.RequestListResponse{}, apperr.Validation("invalid status filter")
		}
		params.Status = &st
	}

	reqs, total, err := s.repo.ListRequests(ctx, params)
	if err != nil {
		return transport.RequestListResponse{}, err
	}

	items := make([]transport.RequestResponse, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, toRequestResponse(r))
	}
	return transport.RequestListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// UpdateRequestStatus moves a request through its lifecycle and publishes
// a status-change event on success.
func (s *Service) UpdateRequestStatus(ctx context.Context, id int64, req transport.UpdateStatusRequest) (transport.RequestResponse, error) {
	next := domain.Status(req.Status)
	if !next.Valid() {
		return transport.RequestResponse{}, apperr.Validation("invalid status")
	}

	previous, err := s.repo.UpdateRequestStatus(ctx, id, next)
	if err != nil {
		return transport.RequestResponse{}, err
	}

	updated, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return transport.RequestResponse{}, err
	}

	s.bus.Publish(ctx, events.RequestStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		RequestID: id,
		OldStatus: string(previous),
		NewStatus: string(next),
	})
	return toRequestResponse(updated), nil
}

// AssignDispatcher reassigns a request to a dispatcher.
func (s *Service) AssignDispatcher(ctx context.Context, id int64, req transport.AssignDispatcherRequest) (transport.RequestResponse, error) {
	if err := s.repo.AssignDispatcher(ctx, id, req.DispatcherID); err != nil {
		return transport.RequestResponse{}, err
	}
	updated, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return transport.RequestResponse{}, err
	}
	return toRequestResponse(updated), nil
}

// RecordPayment stores the collected amount and method on a request.
func (s *Service) RecordPayment(ctx context.Context, id int64, req transport.RecordPaymentRequest) (transport.RequestResponse, error) {
	if err := s.repo.RecordPayment(ctx, id, req.Amount, req.Method); err != nil {
		return transport.RequestResponse{}, err
	}
	updated, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return transport.RequestResponse{}, err
	}
	return toRequestResponse(updated), nil
}

// DeleteRequest removes a cancelled request.
func (s *Service) DeleteRequest(ctx context.Context, id int64) error {
	return s.repo.DeleteRequest(ctx, id)
}

// GetCustomer returns a customer together with their request history.
func (s *Service) GetCustomer(ctx context.Context, id int64) (transport.CustomerDetailResponse, error) {
	cust, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return transport.CustomerDetailResponse{}, err
	}
	reqs, err := s.repo.ListCustomerRequests(ctx, id)
	if err != nil {
		return transport.CustomerDetailResponse{}, err
	}
	history := make([]transport.RequestResponse, 0, len(reqs))
	for _, r := range reqs {
		history = append(history, toRequestResponse(r))
	}
	return transport.CustomerDetailResponse{
		CustomerResponse: toCustomerResponse(cust),
		Requests:         history,
	}, nil
}

// ListCustomers returns a paginated, optionally searched customer list.
func (s *Service) ListCustomers(ctx context.Context, q transport.ListCustomersQuery) (transport.CustomerListResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	custs, total, err := s.repo.ListCustomers(ctx, q.Search, (page-1)*pageSize, pageSize)
	if err != nil {
		return transport.CustomerListResponse{}, err
	}
	items := make([]transport.CustomerResponse, 0, len(custs))
	for _, c := range custs {
		items = append(items, toCustomerResponse(c))
	}
	return transport.CustomerListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// UpdateCustomer applies a partial edit to a customer.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, req transport.UpdateCustomerRequest) (transport.CustomerResponse, error) {
	if req.Name == nil && req.Address == nil && req.City == nil {
		return transport.CustomerResponse{}, apperr.Validation("no fields to update")
	}
	cust, err := s.repo.UpdateCustomer(ctx, repository.UpdateCustomerParams{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
	})
	if err != nil {
		return transport.CustomerResponse{}, err
	}
	return toCustomerResponse(cust), nil
}

// DeleteCustomer removes a customer with no requests on file.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}

// GetDispatcher returns a single dispatcher.
func (s *Service) GetDispatcher(ctx context.Context, id int64) (transport.DispatcherResponse, error) {
	d, err := s.repo.GetDispatcher(ctx, id)
	if err != nil {
		return transport.DispatcherResponse{}, err
	}
	return toDispatcherResponse(d), nil
}

// ListDispatchers returns all dispatchers, the unassigned sentinel first.
func (s *Service) ListDispatchers(ctx context.Context) (transport.DispatcherListResponse, error) {
	ds, err := s.repo.ListDispatchers(ctx)
	if err != nil {
		return transport.DispatcherListResponse{}, err
	}
	items := make([]transport.DispatcherResponse, 0, len(ds))
	for _, d := range ds {
		items = append(items, toDispatcherResponse(d))
	}
	return transport.DispatcherListResponse{Items: items, Total: len(items)}, nil
}

// CreateDispatcher registers a new dispatcher.
func (s *Service) CreateDispatcher(ctx context.Context, req transport.DispatcherRequest) (transport.DispatcherResponse, error) {
	if req.Name == domain.UnassignedDispatcherName {
		return transport.DispatcherResponse{}, apperr.Conflict("dispatcher name is reserved")
	}
	d, err := s.repo.CreateDispatcher(ctx, repository.DispatcherParams{Name: req.Name, Phone: req.Phone})
	if err != nil {
		return transport.DispatcherResponse{}, err
	}
	return toDispatcherResponse(d), nil
}

// UpdateDispatcher edits a dispatcher's name and phone.
func (s *Service) UpdateDispatcher(ctx context.Context, id int64, req transport.DispatcherRequest) (transport.DispatcherResponse, error) {
	d, err := s.repo.UpdateDispatcher(ctx, id, repository.DispatcherParams{Name: req.Name, Phone: req.Phone})
	if err != nil {
		return transport.DispatcherResponse{}, err
	}
	return toDispatcherResponse(d), nil
}

// SetDispatcherAvailability toggles a dispatcher's availability.
func (s *Service) SetDispatcherAvailability(ctx context.Context, id int64, available bool) (transport.DispatcherResponse, error) {
	if err := s.repo.SetDispatcherAvailable(ctx, id, available); err != nil {
		return transport.DispatcherResponse{}, err
	}
	return s.GetDispatcher(ctx, id)
}

// DeleteDispatcher removes a dispatcher with no requests on file.
func (s *Service) DeleteDispatcher(ctx context.Context, id int64) error {
	return s.repo.DeleteDispatcher(ctx, id)
}

func toRequestResponse(r repository.ServiceRequest) transport.RequestResponse {
	return transport.RequestResponse{
		ID:             r.ID,
		RequestedDate:  r.RequestedDate,
		RequestedTime:  r.RequestedTime,
		ServiceType:    r.ServiceType,
		Status:         string(r.Status),
		PaymentAmount:  r.PaymentAmount,
		PaymentMethod:  r.PaymentMethod,
		PaymentDetail:  r.PaymentDetail,
		CustomerID:     r.CustomerID,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		DispatcherID:   r.DispatcherID,
		DispatcherName: r.DispatcherName,
		CreatedAt:      r.CreatedAt,
	}
}

func toCustomerResponse(c repository.Customer) transport.CustomerResponse {
	return transport.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toDispatcherResponse(d repository.Dispatcher) transport.DispatcherResponse {
	return transport.DispatcherResponse{
		ID:        d.ID,
		Name:      d.Name,
		Phone:     d.Phone,
		Available: d.Available,
		CreatedAt: d.CreatedAt,
	}
}
