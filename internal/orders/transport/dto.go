package transport

// ListRequestsQuery filters the dashboard request list.
type ListRequestsQuery struct {
	Status       string `form:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	City         string `form:"city" validate:"omitempty,max=100"`
	DispatcherID *int64 `form:"dispatcherId" validate:"omitempty,min=1"`
	DateFrom     string `form:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo       string `form:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	Page         int    `form:"page" validate:"omitempty,min=1"`
	PageSize     int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// UpdateStatusRequest moves a request through its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress completed cancelled"`
}

// AssignDispatcherRequest reassigns a request.
type AssignDispatcherRequest struct {
	DispatcherID int64 `json:"dispatcherId" validate:"required,min=1"`
}

// RecordPaymentRequest stores the collected payment.
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Method string  `json:"method" validate:"required,oneof=efectivo nequi"`
}

// RequestResponse represents a service request in API responses.
type RequestResponse struct {
	ID             int64   `json:"id"`
	RequestedDate  string  `json:"requestedDate"`
	RequestedTime  string  `json:"requestedTime"`
	ServiceType    string  `json:"serviceType"`
	Status         string  `json:"status"`
	PaymentAmount  float64 `json:"paymentAmount"`
	PaymentMethod  *string `json:"paymentMethod,omitempty"`
	PaymentDetail  *string `json:"paymentDetail,omitempty"`
	CustomerID     int64   `json:"customerId"`
	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	DispatcherID   int64   `json:"dispatcherId"`
	DispatcherName string  `json:"dispatcherName"`
	CreatedAt      string  `json:"createdAt"`
}

// RequestListResponse wraps a paginated request list.
type RequestListResponse struct {
	Items    []RequestResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// ListCustomersQuery filters the customer list.
type ListCustomersQuery struct {
	Search   string `form:"search" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// UpdateCustomerRequest carries a partial customer edit.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City    *string `json:"city,omitempty" validate:"omitempty,max=100"`
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CustomerDetailResponse adds the customer's request history.
type CustomerDetailResponse struct {
	CustomerResponse
	Requests []RequestResponse `json:"requests"`
}

// CustomerListResponse wraps a paginated customer list.
type CustomerListResponse struct {
	Items    []CustomerResponse `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// DispatcherRequest carries a dispatcher create or edit.
type DispatcherRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=255"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// SetAvailabilityRequest toggles a dispatcher's availability.
type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// DispatcherResponse represents a dispatcher in API responses.
type DispatcherResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	Available bool    `json:"available"`
	CreatedAt string  `json:"createdAt"`
}

// DispatcherListResponse wraps the dispatcher list.
type DispatcherListResponse struct {
	Items []DispatcherResponse `json:"items"`
	Total int                  `json:"total"`
}
