// Package auth is the auth (credentials and signing) library of the
// runtime. It depends on, and initializes, the HTTP library.
package auth

import (
	"github.com/joeycumines/go-crt/allocator"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/http"
	"github.com/joeycumines/go-crt/internal/library"
	"github.com/joeycumines/go-crt/logging"
)

const (
	ErrorProfileParseRecoverable = errcode.Code(errcode.PackageAuth)*errcode.PackageSize + iota
	ErrorProfileParseFatal
	ErrorUnsupportedSigningAlgorithm
	ErrorSigningUnsupportedSignatureType
	ErrorSigningMissingPreviousSignature
	ErrorSigningInvalidCredentials
	ErrorCanonicalRequestMismatch
	ErrorSigV4aSignatureValidationFailure
	ErrorCredentialsProviderCognitoSourceFailure
	ErrorDelegateCredentialsProviderInitializationFailed
	ErrorSigningExpirationTooLong
	ErrorInvalidDateString
)

const (
	SubjectGeneral = logging.Subject(errcode.PackageAuth)*errcode.PackageSize + iota
	SubjectProfile
	SubjectCredentialsProvider
	SubjectSigning
	SubjectIMDSClient
)

var (
	Errors = &errcode.List{
		Library: `crt-auth`,
		Infos: []errcode.Info{
			{Code: ErrorProfileParseRecoverable, Name: `AUTH_PROFILE_PARSE_RECOVERABLE_ERROR`, Message: `Recoverable error while parsing an aws profile file.`},
			{Code: ErrorProfileParseFatal, Name: `AUTH_PROFILE_PARSE_FATAL_ERROR`, Message: `Fatal error while parsing an aws profile file.`},
			{Code: ErrorUnsupportedSigningAlgorithm, Name: `AUTH_SIGNING_UNSUPPORTED_ALGORITHM`, Message: `Attempt to sign an http request with an unsupported version of the signing algorithm.`},
			{Code: ErrorSigningUnsupportedSignatureType, Name: `AUTH_SIGNING_UNSUPPORTED_SIGNATURE_TYPE`, Message: `Attempt to sign an http request with a signature type that is not supported.`},
			{Code: ErrorSigningMissingPreviousSignature, Name: `AUTH_SIGNING_MISSING_PREVIOUS_SIGNATURE`, Message: `Attempt to sign a streaming item without supplying a previous signature.`},
			{Code: ErrorSigningInvalidCredentials, Name: `AUTH_SIGNING_INVALID_CREDENTIALS`, Message: `Attempt to perform a signing operation with invalid credentials.`},
			{Code: ErrorCanonicalRequestMismatch, Name: `AUTH_CANONICAL_REQUEST_MISMATCH`, Message: `Expected canonical request did not match the computed canonical request.`},
			{Code: ErrorSigV4aSignatureValidationFailure, Name: `AUTH_SIGV4A_SIGNATURE_VALIDATION_FAILURE`, Message: `The supplied sigv4a signature was not a valid signature for the hashed string to sign.`},
			{Code: ErrorCredentialsProviderCognitoSourceFailure, Name: `AUTH_CREDENTIALS_PROVIDER_COGNITO_SOURCE_FAILURE`, Message: `Valid credentials could not be sourced by the cognito provider.`},
			{Code: ErrorDelegateCredentialsProviderInitializationFailed, Name: `AUTH_CREDENTIALS_PROVIDER_DELEGATE_FAILURE`, Message: `Valid credentials could not be sourced by the delegate provider.`},
			{Code: ErrorSigningExpirationTooLong, Name: `AUTH_SIGNING_EXPIRATION_TOO_LONG`, Message: `The expiration period for the signing is too long.`},
			{Code: ErrorInvalidDateString, Name: `AUTH_INVALID_DATE_STRING`, Message: `The date string could not be parsed.`},
		},
	}

	Subjects = &logging.SubjectList{
		Infos: []logging.SubjectInfo{
			{Subject: SubjectGeneral, Name: `auth`, Description: `Subject for aws-c-auth logging that doesn't belong to any particular category`},
			{Subject: SubjectProfile, Name: `auth-profile`, Description: `Subject for config profile related logging.`},
			{Subject: SubjectCredentialsProvider, Name: `auth-credentials-provider`, Description: `Subject for credentials provider related logging.`},
			{Subject: SubjectSigning, Name: `auth-signing`, Description: `Subject for AWS request signing logging.`},
			{Subject: SubjectIMDSClient, Name: `imds-client`, Description: `Subject for IMDS client logging.`},
		},
	}

	lib = library.New(library.Config{
		Name:     `crt-auth`,
		Errors:   Errors,
		Subjects: Subjects,
		Depends:  http.LibraryInit,
		Release:  http.LibraryCleanUp,
	})
)

// LibraryInit initializes the auth library using alloc, or the process
// allocator, if nil. Each successful call must be paired with
// LibraryCleanUp.
func LibraryInit(alloc allocator.Allocator) error { return lib.Init(alloc) }

// LibraryCleanUp releases a reference obtained by LibraryInit.
func LibraryCleanUp() { lib.CleanUp() }

func LibraryAllocator() allocator.Allocator { return lib.Allocator() }
