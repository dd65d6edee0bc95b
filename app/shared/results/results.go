// Package results defines the operation result envelope returned by service
// operations. Business-rule rejections travel as Failure payloads so callers
// can publish them as events; Error is reserved for infrastructure problems.
package results

// OperationResult carries exactly one of Success or Failure for a completed
// operation, plus Error when the operation could not run at all.
type OperationResult struct {
	Success any
	Failure any
	Error   error
}

// Successful wraps a success payload.
func Successful(payload any) OperationResult {
	return OperationResult{Success: payload}
}

// Failed wraps a business failure payload.
func Failed(payload any) OperationResult {
	return OperationResult{Failure: payload}
}
