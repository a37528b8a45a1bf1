// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeDeviceQueryFailed,
//	    "failed to read device clock",
//	    cause,
//	    map[string]interface{}{
//	        "index": 1,
//	        "field": "clock.graphics",
//	    },
//	)
package errors
