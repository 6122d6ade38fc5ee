package reasoncodes

type ReasonCode string

const (
	ErrValidation        ReasonCode = "ValidationError"
	ErrNotFound          ReasonCode = "NotFound"
	ErrNoFieldsProvided  ReasonCode = "NoFieldsProvided"
	ErrStore             ReasonCode = "StoreError"
	ErrConnectionAborted ReasonCode = "ConnectionAborted"
	ErrUnavailable       ReasonCode = "Unavailable"
)
