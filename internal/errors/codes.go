package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The storefront maps these codes to display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthSessionInvalid     = "AUTH_SESSION_INVALID" // admin session missing or revoked

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound    = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogVariantNotFound    = "CATALOG_VARIANT_NOT_FOUND"
	CatalogCollectionNotFound = "CATALOG_COLLECTION_NOT_FOUND"
	CatalogCategoryNotFound   = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogSlugExists         = "CATALOG_SLUG_EXISTS"
	CatalogSKUExists          = "CATALOG_SKU_EXISTS"

	// ==================== Cart (CART_) ====================
	CartItemNotFound      = "CART_ITEM_NOT_FOUND"
	CartInsufficientStock = "CART_INSUFFICIENT_STOCK"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderEmpty         = "ORDER_EMPTY"
	OrderOutOfStock    = "ORDER_OUT_OF_STOCK"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"

	// ==================== Content (CONTENT_) ====================
	ContentNotFound     = "CONTENT_NOT_FOUND"
	ContentInvalidShape = "CONTENT_INVALID_SHAPE" // JSON payload failed registry validation
	ContentInvalidType  = "CONTENT_INVALID_TYPE"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Subscribers (SUBSCRIBER_) ====================
	SubscriberInvalidEmail = "SUBSCRIBER_INVALID_EMAIL"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
