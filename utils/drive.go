package utils

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultItemImage is shown for catalog rows without an image
const DefaultItemImage = "/assets/logo.png"

var driveFilePath = regexp.MustCompile(`/d/([^/]+)/view`)

// DriveFileID extracts the file id from Google Drive share and thumbnail links:
// .../file/d/{id}/view, ...?id={id} on drive.google.com hosts.
func DriveFileID(raw string) (string, bool) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "@")
	if m := driveFilePath.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}

	u, err := url.Parse(raw)
	if err != nil || !strings.HasSuffix(u.Hostname(), "drive.google.com") {
		return "", false
	}
	if id := u.Query().Get("id"); id != "" {
		return id, true
	}
	return "", false
}

// DriveThumbnailURL is the public thumbnail endpoint for a Drive file
func DriveThumbnailURL(fileID string) string {
	return "https://drive.google.com/thumbnail?id=" + url.QueryEscape(fileID) + "&sz=w1000"
}

// NormalizeImageURL maps Drive share links to thumbnails and blanks to the default image
func NormalizeImageURL(raw string) string {
	if id, ok := DriveFileID(raw); ok && driveFilePath.MatchString(raw) {
		return DriveThumbnailURL(id)
	}
	if strings.TrimSpace(raw) == "" {
		return DefaultItemImage
	}
	return strings.TrimSpace(raw)
}
