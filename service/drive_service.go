package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// maxDriveImageBytes bounds a single download
const maxDriveImageBytes = 32 << 20

// DriveService downloads catalog images stored in Google Drive
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a DriveService using a Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	return NewDriveServiceWithOptions(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(drive.DriveReadonlyScope))
}

// NewDriveServiceWithOptions creates a DriveService from explicit client options
func NewDriveServiceWithOptions(ctx context.Context, opts ...option.ClientOption) (*DriveService, error) {
	client, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: client}, nil
}

// DownloadImage returns the raw bytes of an image file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drive returned status %d for file %s", resp.StatusCode, fileID)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "application/octet-stream") {
		return nil, fmt.Errorf("drive file %s is not an image (content type %s)", fileID, ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read drive file %s: %w", fileID, err)
	}
	if len(data) > maxDriveImageBytes {
		return nil, fmt.Errorf("drive file %s exceeds %d bytes", fileID, maxDriveImageBytes)
	}
	return data, nil
}
