package internal

import "github.com/pkg/errors"

// Operators that can fail cleanly report it through their return value. Misuse
// that the caller promised never to commit (stale handles, degenerate triangles
// handed to constructions) panics instead, and the public API recovers to
// convert to an error.

// ContractError wraps the error a contract violation panics with, so that the
// recover handler can tell it apart from runtime panics.
type ContractError struct {
	error
}

// Panic with a ContractError.
func fatalf(format string, args ...interface{}) {
	panic(ContractError{errors.Errorf(format, args...)})
}

func HandleContractPanicRecover(r interface{}) error {
	if r != nil {
		if contractError, ok := r.(ContractError); ok {
			return contractError
		}
		panic(r)
	}
	return nil
}
