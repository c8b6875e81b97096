// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shared

import (
	"errors"
	"fmt"
	"io"
	"os"

	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
)

// Exit codes for dadata commands
const (
	ExitSuccess          = 0
	ExitFailed           = 1
	ExitConfigError      = 2
	ExitAPIError         = 3
	ExitConnectionFailed = 4
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUsageError creates an error for invalid command arguments.
func NewUsageError(msg string, cause error) *ExitError {
	return &ExitError{Code: ExitFailed, Message: msg, Cause: cause}
}

// NewCallError wraps a failed API call, picking the exit code from the
// error taxonomy.
func NewCallError(operation string, err error) *ExitError {
	return &ExitError{
		Code:    ExitCodeFor(err),
		Message: operation + " failed",
		Cause:   err,
	}
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != ExitFailed {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, dderrors.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, dderrors.ErrAPI):
		return ExitAPIError
	case errors.Is(err, dderrors.ErrConnection):
		return ExitConnectionFailed
	}
	return ExitFailed
}

// HandleExitError prints err with any suggestion and exits with the
// matching code.
func HandleExitError(err error) {
	if err == nil {
		return
	}
	os.Exit(ReportError(os.Stderr, err))
}

// ReportError writes err to w and returns the exit code HandleExitError
// would use.
func ReportError(w io.Writer, err error) int {
	return reportError(w, NewStyles(w), err)
}

func reportError(w io.Writer, styles *Styles, err error) int {
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(w, styles.Error.Render("Error:"), msg)
	}
	printUserVisibleSuggestion(w, styles, err)
	return ExitCodeFor(err)
}

// printUserVisibleSuggestion checks if an error implements UserVisibleError
// and prints the suggestion if available.
func printUserVisibleSuggestion(w io.Writer, styles *Styles, err error) {
	for err != nil {
		if userErr, ok := err.(dderrors.UserVisibleError); ok {
			if userErr.IsUserVisible() {
				if suggestion := userErr.Suggestion(); suggestion != "" {
					fmt.Fprintf(w, "\n%s %s\n", styles.Info.Render("Suggestion:"), suggestion)
				}
			}
			return
		}
		err = errors.Unwrap(err)
	}
}
