package client

import "strings"

// UploadURL resolves a media path returned by the API (e.g.
// /uploads/complaints/x.jpg) against the API origin. Empty stays empty.
func (c *Client) UploadURL(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.origin + path
}
