package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres error classes we care about (class 23: integrity constraint violation)
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ErrorInfo pairs an error code with a user-safe message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw database or transport error into a code and a
// message safe to surface. Backend internals never reach the client verbatim.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return parseUniqueViolation(pqErr, context)
		case pgForeignKeyViolation:
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "This record is referenced by other data and cannot be changed",
			}
		case pgNotNullViolation:
			return ErrorInfo{
				Code:    ValidationRequired,
				Message: "A required field is missing",
			}
		case pgCheckViolation:
			return ErrorInfo{
				Code:    ValidationInvalidInput,
				Message: "A field value is out of range",
			}
		}
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An external service is unavailable. Please try again later",
		}
	}

	// SQLite in tests reports constraint errors as plain strings
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "duplicate key") {
		return parseUniqueViolationText(errStr, context)
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultMessage(context),
	}
}

// ParseAndRespond parses the error and writes the response in one step.
// Controllers use it for the fallthrough branch after sentinel checks.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, statusCode, info.Code, info.Message)
}

func parseUniqueViolation(pqErr *pq.Error, context string) ErrorInfo {
	return parseUniqueViolationText(strings.ToLower(pqErr.Constraint+" "+pqErr.Detail), context)
}

func parseUniqueViolationText(detail string, context string) ErrorInfo {
	switch {
	case strings.Contains(detail, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "This email is already in use"}
	case strings.Contains(detail, "sku"):
		return ErrorInfo{Code: CatalogSKUExists, Message: "This SKU is already in use"}
	case strings.Contains(detail, "slug"):
		return ErrorInfo{Code: CatalogSlugExists, Message: "This slug is already in use"}
	case strings.Contains(detail, "key"):
		if context == "content" {
			return ErrorInfo{Code: ResourceAlreadyExists, Message: "This content key already exists"}
		}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists"}
}

func notFoundMessage(context string) string {
	switch context {
	case "product":
		return "Product not found"
	case "variant":
		return "Product variant not found"
	case "collection":
		return "Collection not found"
	case "category":
		return "Category not found"
	case "order":
		return "Order not found"
	case "blog":
		return "Post not found"
	case "content":
		return "Content block not found"
	case "address":
		return "Address not found"
	default:
		return "The requested record was not found"
	}
}

func defaultMessage(context string) string {
	switch context {
	case "order":
		return "Failed to process the order. Please try again"
	case "cart":
		return "Failed to update the cart. Please try again"
	default:
		return "An internal error occurred. Please try again later"
	}
}
