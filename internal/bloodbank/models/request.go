package models

type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusFulfilled, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus accepts only one of the three status strings, exact case.
func ParseStatus(v any) (Status, bool) {
	str, ok := v.(string)
	if !ok {
		return "", false
	}
	s := Status(str)
	return s, s.Valid()
}

// Request represents the requests table in the database. CreatedAt holds
// whatever the column stores, SQLite keeps it as "YYYY-MM-DD HH:MM:SS" text.
type Request struct {
	ID          int64   `json:"id"`
	PatientName *string `json:"patient_name"`
	BloodGroup  *string `json:"blood_group"`
	Units       any     `json:"units"`
	Hospital    *string `json:"hospital"`
	City        *string `json:"city"`
	Contact     *string `json:"contact"`
	Status      Status  `json:"status"`
	CreatedAt   any     `json:"created_at"`
}

// RequestForm carries the submitted request fields. Status is not part of
// it, new requests always start as pending.
type RequestForm struct {
	PatientName any `json:"patient_name"`
	BloodGroup  any `json:"blood_group"`
	Units       any `json:"units"`
	Hospital    any `json:"hospital"`
	City        any `json:"city"`
	Contact     any `json:"contact"`
}

type StatusChange struct {
	ID     int64  `json:"id"`
	Status Status `json:"status"`
}
