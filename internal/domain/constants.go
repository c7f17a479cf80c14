package domain

// Scheduling constants
const (
	SlotDurationMinutes  = 30
	OneOffHorizonDays    = 7
	RecurringHorizonDays = 28
	MinDayOfWeek         = 0 // Monday
	MaxDayOfWeek         = 6 // Sunday
)

// Billing defaults
const (
	DefaultCurrency            = "INR"
	DefaultMinimumChargeMinor  = 5000 // 50.00
	SecondsPerHour             = 3600
	DefaultReminderLeadMinutes = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveAppointmentStatuses are statuses that hold a slot.
// At most one appointment per slot may be in one of them.
var ActiveAppointmentStatuses = []AppointmentStatus{
	AppointmentScheduled,
	AppointmentCompleted,
}
