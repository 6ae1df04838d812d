package constants

// Date layouts
const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

// DefaultMaxStayDays bounds a single reservation.
const DefaultMaxStayDays = 365

// Availability event types
const (
	EventReservationCreated = "reservation.created"
	EventReservationUpdated = "reservation.updated"
	EventReservationDeleted = "reservation.deleted"
	EventPropertyDeleted    = "property.deleted"
)

// Cache keys
const (
	AvailabilityCacheKeyPrefix   = "availability:property:"
	AvailabilityVersionKeyPrefix = "availability:ver:"
	BookingLockKeyPrefix         = "lock:booking:property:"
)

// Context keys set by middleware
const (
	ContextCustomerID = "customerID"
	ContextRequestID  = "requestID"
)

// Image storage backends
const (
	ImageStorageLocal      = "local"
	ImageStorageCloudinary = "cloudinary"
)
