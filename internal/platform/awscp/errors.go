package awscp

import (
	"errors"

	"github.com/aws/smithy-go"
)

// API error code groups. The SDK exposes typed errors for some services and
// bare codes for others, so classification goes through smithy.APIError.

var notFoundCodes = []string{
	"InvalidGroup.NotFound",
	"NoSuchBucket",
	"NotFound",
	"404",
	"ResourceNotFound",
	"ResourceNotFoundException",
}

var duplicateCodes = []string{
	"InvalidPermission.Duplicate",
	"InvalidGroup.Duplicate",
	"BucketAlreadyOwnedByYou",
	"BucketAlreadyExists",
}

var authCodes = []string{
	"AccessDenied",
	"AccessDeniedException",
	"AuthFailure",
	"UnauthorizedOperation",
	"ExpiredToken",
	"InvalidClientTokenId",
	"SignatureDoesNotMatch",
}

var throttleCodes = []string{
	"Throttling",
	"ThrottlingException",
	"RequestLimitExceeded",
	"SlowDown",
}

// IsNotFound reports whether the error indicates an absent resource.
func IsNotFound(err error) bool {
	return hasAPIErrorCode(err, notFoundCodes...)
}

// IsDuplicate reports whether the error indicates the resource or permission
// already exists. Duplicates are swallowed by the idempotent write paths.
func IsDuplicate(err error) bool {
	return hasAPIErrorCode(err, duplicateCodes...)
}

// IsAuthError reports whether the error is an authentication or
// authorization failure. These are always fatal for the pipeline.
func IsAuthError(err error) bool {
	return hasAPIErrorCode(err, authCodes...)
}

// IsThrottled reports whether the error is rate limiting and worth a retry.
func IsThrottled(err error) bool {
	return hasAPIErrorCode(err, throttleCodes...)
}

func hasAPIErrorCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}
