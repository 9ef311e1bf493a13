package somfyprotect

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
)

func sitePath(siteID string) string {
	return "/site/" + url.PathEscape(siteID)
}

// ListSites returns every site of the account, in API order.
func (c *Client) ListSites(ctx context.Context) ([]Site, error) {
	data, err := c.get(ctx, "/site")
	if err != nil {
		return nil, err
	}

	var resp listResponse[Site]
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, malformed("site list", data, err)
	}
	if resp.Items == nil {
		return nil, malformed("site list", data, errors.New(`missing "items"`))
	}

	return *resp.Items, nil
}

// GetSite returns a single site by ID.
func (c *Client) GetSite(ctx context.Context, siteID string) (*Site, error) {
	if siteID == "" {
		return nil, ErrEmptySiteID
	}

	data, err := c.get(ctx, sitePath(siteID))
	if err != nil {
		return nil, err
	}

	var site Site
	if err := json.Unmarshal(data, &site); err != nil {
		return nil, malformed("site", data, err)
	}
	if site.SiteID == "" {
		return nil, malformed("site", data, errors.New(`missing "site_id"`))
	}

	return &site, nil
}

// SetSecurityLevel arms, partially arms or disarms a site.
func (c *Client) SetSecurityLevel(ctx context.Context, siteID string, level SecurityLevel) (Acknowledgement, error) {
	if siteID == "" {
		return nil, ErrEmptySiteID
	}
	level, err := ParseSecurityLevel(string(level))
	if err != nil {
		return nil, err
	}

	body := map[string]string{"status": string(level)}
	data, err := c.put(ctx, sitePath(siteID)+"/security", body)
	if err != nil {
		return nil, err
	}

	return decodeAcknowledgement("security level acknowledgement", data)
}

// decodeAcknowledgement decodes a write response. An empty body is a
// valid, empty acknowledgement.
func decodeAcknowledgement(what string, data []byte) (Acknowledgement, error) {
	ack := Acknowledgement{}
	if len(data) == 0 {
		return ack, nil
	}
	if err := json.Unmarshal(data, &ack); err != nil {
		return nil, malformed(what, data, err)
	}
	return ack, nil
}
