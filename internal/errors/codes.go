package errors

// Error codes returned in the "error" field of every failure response.
// Format: CATEGORY_SPECIFIC_DETAIL

const (
	// auth
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthPhoneExists        = "AUTH_PHONE_EXISTS"
	AuthAdminOnly          = "AUTH_ADMIN_ONLY"

	// validation
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"
	ValidationInvalidQuantity = "VALIDATION_INVALID_QUANTITY"
	ValidationRequired        = "VALIDATION_REQUIRED"
	ValidationTooShort        = "VALIDATION_TOO_SHORT"

	// resources
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// catalog
	ProductNotFound   = "PRODUCT_NOT_FOUND"
	ProductURLExists  = "PRODUCT_URL_EXISTS"
	CategoryExists    = "CATEGORY_EXISTS"
	ImportInvalidFile = "IMPORT_INVALID_FILE"

	// cart
	CartNotFound     = "CART_NOT_FOUND"
	CartItemNotFound = "CART_ITEM_NOT_FOUND"

	// upload
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// internal
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
