package config

const (
	// Storage errors
	ErrInitializeStorageFmt = "Failed to initialize storage: %v"
	ErrOpenCollectionFmt    = "Failed to open collection %s: %v"

	// Request errors
	ErrInvalidDraft        = "Required fields are missing"
	ErrItemNotFound        = "Item not found"
	ErrInternalServerError = "Internal server error"
	ErrUploadRequired      = "An image file is required"

	// Config errors
	ErrWriteConfigContentFmt = "Failed to write config content: %v"
)
