// Package vault describes the platform credential vault the application
// consumes: a single-credential store gated by a biometric or passcode
// prompt (secure enclave, OS keychain).
//
// Core code depends only on [CredentialVault]; per-platform implementations
// live behind native bindings. [MemoryVault] is a process-local
// implementation used by tests and by hosts without a secure enclave.
package vault
