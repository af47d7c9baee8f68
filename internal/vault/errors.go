package vault

import "errors"

// Outcomes a CredentialVault reports through its errors.
var (
	// ErrNoCredential is returned by Get when nothing is stored under the name.
	ErrNoCredential = errors.New("no stored credential")

	// ErrUserCancelled is returned when the user dismissed the prompt.
	ErrUserCancelled = errors.New("user cancelled authentication")

	// ErrUnavailable is returned when biometrics are not supported, not
	// enrolled, or locked out.
	ErrUnavailable = errors.New("credential vault unavailable")
)
