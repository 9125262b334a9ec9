package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrTrackNotFound      = fmt.Errorf("track not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// ValidationKind classifies operator input that failed a pipeline gate.
type ValidationKind int

const (
	InvalidCredentialLength ValidationKind = iota + 1
	InvalidSourceURL
	SourceUnavailable
	NoPlaylistChosen
	NoPlaylistSelected
	UnknownPlaylist
	MissingRequiredField
)

func (k ValidationKind) String() string {
	switch k {
	case InvalidCredentialLength:
		return "invalid_credential_length"
	case InvalidSourceURL:
		return "invalid_source_url"
	case SourceUnavailable:
		return "source_unavailable"
	case NoPlaylistChosen:
		return "no_playlist_chosen"
	case NoPlaylistSelected:
		return "no_playlist_selected"
	case UnknownPlaylist:
		return "unknown_playlist"
	case MissingRequiredField:
		return "missing_required_field"
	default:
		return "unknown"
	}
}

// Message is the operator-facing text for the kind.
func (k ValidationKind) Message() string {
	switch k {
	case InvalidCredentialLength:
		return "Invalid client ID or secret"
	case InvalidSourceURL:
		return "Invalid playlist URL"
	case SourceUnavailable:
		return "Playlist could not be read"
	case NoPlaylistChosen:
		return "Choose to add to a playlist or create a new one"
	case NoPlaylistSelected:
		return "Select a playlist"
	case UnknownPlaylist:
		return "Selected playlist is not in the list"
	case MissingRequiredField:
		return "Enter the required information"
	default:
		return "Invalid input"
	}
}

// sentinel maps each kind onto the broader error family callers already check for.
func (k ValidationKind) sentinel() error {
	switch k {
	case InvalidCredentialLength:
		return ErrInvalidCredentials
	case SourceUnavailable:
		return ErrServiceUnavailable
	case NoPlaylistChosen, NoPlaylistSelected, MissingRequiredField:
		return ErrMissingArgument
	case UnknownPlaylist:
		return ErrPlaylistNotFound
	default:
		return ErrInvalidInput
	}
}

// ValidationError is returned when a pipeline gate rejects operator input.
//
// It is always recoverable: the operator corrects the input and submits again.
type ValidationError struct {
	Kind ValidationKind
	Err  error // underlying cause, if any
}

// NewValidationError creates a [ValidationError] of the given kind wrapping cause (which may be nil).
func NewValidationError(kind ValidationKind, cause error) *ValidationError {
	return &ValidationError{Kind: kind, Err: cause}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Message(), e.Err)
	}
	return e.Kind.Message()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ValidationError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// ValidationKindOf extracts the [ValidationKind] from err, if err is or wraps a [ValidationError].
func ValidationKindOf(err error) (ValidationKind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return 0, false
}
