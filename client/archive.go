package client

import (
	"context"

	"github.com/jonwraymond/opentok/request"
)

// StartArchive begins recording sessionID.
func (c *Client) StartArchive(ctx context.Context, sessionID string, opts request.ArchiveOptions) (Archive, error) {
	req, err := request.StartArchive(c.creds.APIKey(), sessionID, opts)
	if err != nil {
		return Archive{}, err
	}
	var a Archive
	err = c.send(ctx, call{operation: "start", resource: "archive"}, req, &a)
	return a, err
}

// StopArchive stops a running archive.
func (c *Client) StopArchive(ctx context.Context, archiveID string) (Archive, error) {
	req, err := request.StopArchive(c.creds.APIKey(), archiveID)
	if err != nil {
		return Archive{}, err
	}
	var a Archive
	err = c.send(ctx, call{operation: "stop", resource: "archive"}, req, &a)
	return a, err
}

// GetArchive fetches one archive.
func (c *Client) GetArchive(ctx context.Context, archiveID string) (Archive, error) {
	req, err := request.GetArchive(c.creds.APIKey(), archiveID)
	if err != nil {
		return Archive{}, err
	}
	var a Archive
	err = c.send(ctx, call{operation: "get", resource: "archive"}, req, &a)
	return a, err
}

// ListArchives fetches a page of archives.
func (c *Client) ListArchives(ctx context.Context, q request.ArchiveQuery) (ArchiveList, error) {
	req, err := request.ListArchives(c.creds.APIKey(), q)
	if err != nil {
		return ArchiveList{}, err
	}
	var list ArchiveList
	err = c.send(ctx, call{operation: "list", resource: "archive"}, req, &list)
	return list, err
}

// DeleteArchive deletes an archive's recording.
func (c *Client) DeleteArchive(ctx context.Context, archiveID string) error {
	req, err := request.DeleteArchive(c.creds.APIKey(), archiveID)
	if err != nil {
		return err
	}
	return c.send(ctx, call{operation: "delete", resource: "archive"}, req, nil)
}

// SetArchiveLayout changes the layout of a composed archive.
func (c *Client) SetArchiveLayout(ctx context.Context, archiveID string, layout request.Layout) error {
	req, err := request.SetArchiveLayout(c.creds.APIKey(), archiveID, layout)
	if err != nil {
		return err
	}
	return c.send(ctx, call{operation: "set_layout", resource: "archive"}, req, nil)
}
