package somfyprotect

import "context"

// ProtectClient defines the interface for Somfy Protect API operations.
// Client implements it; depend on the interface to substitute a fake in tests.
type ProtectClient interface {
	// Token lifecycle
	RequestToken(ctx context.Context) (*Token, error)
	RefreshToken(ctx context.Context, tok *Token) (*Token, error)
	EnsureValidToken(ctx context.Context) error
	Token() *Token
	SetToken(tok *Token)

	// Sites
	ListSites(ctx context.Context) ([]Site, error)
	GetSite(ctx context.Context, siteID string) (*Site, error)
	SetSecurityLevel(ctx context.Context, siteID string, level SecurityLevel) (Acknowledgement, error)

	// Devices
	ListDevices(ctx context.Context, siteID string) ([]Device, error)
	ListDevicesByCategory(ctx context.Context, siteID string, category Category) ([]Device, error)
	GetDevice(ctx context.Context, siteID, deviceID string) (*Device, error)
	UpdateDevice(ctx context.Context, siteID, deviceID, label string, settings Settings) (Acknowledgement, error)
}

var _ ProtectClient = (*Client)(nil)
