// Package somfyprotect provides a Go client library for the Somfy Protect
// (Myfox) home-alarm cloud API.
//
// The client lists sites and devices, changes a site's security level and
// updates device settings. It authenticates with the OAuth2 password grant
// and refreshes the token transparently.
//
// # Authentication
//
// A client is created from the account credentials. The first API call
// performs the password grant:
//
//	client, err := somfyprotect.NewClient("user@example.com", "password")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every token the client obtains is passed to an optional TokenUpdater, so
// the application can persist it and resume later without the password
// grant:
//
//	client, err := somfyprotect.NewClient(user, pass,
//	    somfyprotect.WithToken(saved),
//	    somfyprotect.WithTokenUpdater(func(tok somfyprotect.Token) {
//	        save(tok)
//	    }),
//	)
//
// FileTokenStore and MemoryTokenStore implement TokenStore and plug in with
// WithTokenStore.
//
// A token is used until its ExpiresAt, which is computed with ExpiryMargin
// subtracted from the lifetime the server grants. If the API still rejects
// a token with 401, the client refreshes it and retries the request once.
//
// # Basic Usage
//
// List sites and arm the first one:
//
//	sites, err := client.ListSites(ctx)
//	ack, err := client.SetSecurityLevel(ctx, sites[0].SiteID, somfyprotect.SecurityLevelArmed)
//	fmt.Println("task:", ack.TaskID())
//
// List the IntelliTags of a site:
//
//	tags, err := client.ListDevicesByCategory(ctx, siteID, somfyprotect.CategoryIntelliTag)
//
// # Error Handling
//
// Errors are typed and match sentinels with errors.Is:
//
//	_, err := client.GetDevice(ctx, siteID, deviceID)
//	switch {
//	case somfyprotect.IsUnauthorized(err):
//	    // *AuthError: credentials or refresh token rejected
//	case somfyprotect.IsNotFound(err):
//	    // *NotFoundError
//	case somfyprotect.IsValidation(err):
//	    // *ValidationError, no request was sent
//	case somfyprotect.IsMalformedResponse(err):
//	    // *APIError: the response did not match the API contract
//	}
//
// The client does not retry transient failures, cache responses or batch
// requests.
package somfyprotect
