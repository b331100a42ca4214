package storage

import (
	"context"
	"io"
)

// Unavailable returns a DriveClient that fails every call with err.
// Services use it when the real client could not be built at startup, so the
// configuration problem is reported on each request instead of preventing boot.
func Unavailable(err error) DriveClient {
	return unavailableClient{err: err}
}

type unavailableClient struct {
	err error
}

func (u unavailableClient) GetFile(context.Context, string) (*FileInfo, error) {
	return nil, u.err
}

func (u unavailableClient) FindFolders(context.Context, string, string, string) ([]FileInfo, error) {
	return nil, u.err
}

func (u unavailableClient) CreateFolder(context.Context, string, string) (*FileInfo, error) {
	return nil, u.err
}

func (u unavailableClient) FindFileByName(context.Context, string, string) (*FileInfo, error) {
	return nil, u.err
}

func (u unavailableClient) UploadFile(context.Context, UploadRequest) (*FileInfo, error) {
	return nil, u.err
}

func (u unavailableClient) UpdateFileContent(context.Context, string, string, io.Reader) (*FileInfo, error) {
	return nil, u.err
}
