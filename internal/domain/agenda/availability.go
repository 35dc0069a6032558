package agenda

// Wire shapes for the public availability endpoints.

type CheckInput struct {
	BusinessID  string
	DaysToQuery int
}

type Slot struct {
	Time         string `json:"time"`
	ISOTimestamp string `json:"iso_timestamp"`
}

type DayAvailability struct {
	Date        string `json:"date"`
	WeekdayName string `json:"weekday_name"`
	Slots       []Slot `json:"slots"`
}

type TypeAvailability struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	DurationMinutes int               `json:"duration_minutes"`
	AvailableDays   []DayAvailability `json:"available_days"`
}

type OfferAvailability struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	AppointmentTypes []TypeAvailability `json:"appointment_types"`
}

type BusinessRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CheckResult struct {
	Business BusinessRef         `json:"business"`
	Offers   []OfferAvailability `json:"offers"`
}

type ParseAndCheckInput struct {
	BusinessID        string
	AppointmentTypeID string
	FreeText          string
}

type ParseAndCheckResult struct {
	Available    bool   `json:"available"`
	Message      string `json:"message"`
	ISOTimestamp string `json:"iso_timestamp,omitempty"`
}
