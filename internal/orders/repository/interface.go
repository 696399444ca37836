package repository

import (
	"context"

	"cerrajeria_backend/internal/orders/domain"
)

// Customer is a person who has submitted at least one request.
type Customer struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Phone     string `db:"phone"`
	Address   string `db:"address"`
	City      string `db:"city"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// Dispatcher is a field technician requests get assigned to.
type Dispatcher struct {
	ID        int64   `db:"id"`
	Name      string  `db:"name"`
	Phone     *string `db:"phone"`
	Available bool    `db:"available"`
	CreatedAt string  `db:"created_at"`
}

// ServiceRequest is one committed order. Immutable except for status,
// assignment, and payment fields managed through the dashboard.
type ServiceRequest struct {
	ID             int64         `db:"id"`
	RequestedDate  string        `db:"requested_date"`
	RequestedTime  string        `db:"requested_time"`
	ServiceType    string        `db:"service_type"`
	Status         domain.Status `db:"status"`
	PaymentAmount  float64       `db:"payment_amount"`
	PaymentMethod  *string       `db:"payment_method"`
	PaymentDetail  *string       `db:"payment_detail"`
	CustomerID     int64         `db:"customer_id"`
	DispatcherID   int64         `db:"dispatcher_id"`
	CustomerName   string        `db:"customer_name"`
	CustomerPhone  string        `db:"customer_phone"`
	DispatcherName string        `db:"dispatcher_name"`
	CreatedAt      string        `db:"created_at"`
}

// CommitParams is the input for the atomic conversation commit.
type CommitParams struct {
	Phone         string
	Name          string
	Address       string
	City          string
	RequestedDate string
	RequestedTime string
	ServiceType   string
	PaymentMethod string
	PaymentDetail *string
}

// CommitResult reports what the commit transaction created.
type CommitResult struct {
	RequestID       int64
	CustomerID      int64
	CustomerCreated bool
}

// ListRequestsParams filters and paginates the dashboard request list.
type ListRequestsParams struct {
	Status       *domain.Status
	City         string
	DispatcherID *int64
	DateFrom     string
	DateTo       string
	Offset       int
	Limit        int
}

// UpdateCustomerParams carries a dashboard customer edit.
type UpdateCustomerParams struct {
	ID      int64
	Name    *string
	Address *string
	City    *string
}

// DispatcherParams carries a dashboard dispatcher create or edit.
type DispatcherParams struct {
	Name  string
	Phone *string
}

// Committer runs the atomic order commit.
type Committer interface {
	CommitOrder(ctx context.Context, params CommitParams) (CommitResult, error)
}

// RequestReader provides read operations for service requests.
type RequestReader interface {
	GetRequest(ctx context.Context, id int64) (ServiceRequest, error)
	ListRequests(ctx context.Context, params ListRequestsParams) ([]ServiceRequest, int, error)
}

// RequestWriter provides dashboard mutations on service requests.
type RequestWriter interface {
	UpdateRequestStatus(ctx context.Context, id int64, next domain.Status) (domain.Status, error)
	AssignDispatcher(ctx context.Context, id, dispatcherID int64) error
	RecordPayment(ctx context.Context, id int64, amount float64, method string) error
	DeleteRequest(ctx context.Context, id int64) error
}

// CustomerStore provides dashboard operations on customers.
type CustomerStore interface {
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	ListCustomers(ctx context.Context, search string, offset, limit int) ([]Customer, int, error)
	ListCustomerRequests(ctx context.Context, customerID int64) ([]ServiceRequest, error)
	UpdateCustomer(ctx context.Context, params UpdateCustomerParams) (Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// DispatcherStore provides dashboard operations on dispatchers.
type DispatcherStore interface {
	GetDispatcher(ctx context.Context, id int64) (Dispatcher, error)
	ListDispatchers(ctx context.Context) ([]Dispatcher, error)
	CreateDispatcher(ctx context.Context, params DispatcherParams) (Dispatcher, error)
	UpdateDispatcher(ctx context.Context, id int64, params DispatcherParams) (Dispatcher, error)
	SetDispatcherAvailable(ctx context.Context, id int64, available bool) error
	DeleteDispatcher(ctx context.Context, id int64) error
}

// Repository combines all order repository operations.
type Repository interface {
	Committer
	RequestReader
	RequestWriter
	CustomerStore
	DispatcherStore
}
