package filesystem

import (
	"fmt"
	"os"

	"github.com/pkg/sftp"
)

// SFTPFileSystem implements FileSystem over an SFTP session.
// A single client is shared by every scanner it opens; the SFTP protocol
// multiplexes requests, and a search only issues one at a time.
type SFTPFileSystem struct {
	client *sftp.Client
	conn   *SFTPConnection
}

// NewSFTPFileSystem creates a new SFTP filesystem using an established connection.
func NewSFTPFileSystem(conn *SFTPConnection) *SFTPFileSystem {
	return &SFTPFileSystem{
		client: conn.Client(),
		conn:   conn,
	}
}

// NewSFTPFileSystemFromClient wraps an already open SFTP client.
// Close does not close the client; its owner does.
func NewSFTPFileSystemFromClient(client *sftp.Client) *SFTPFileSystem {
	return &SFTPFileSystem{
		client: client,
	}
}

// Close closes the underlying connection, if this filesystem owns one.
func (fs *SFTPFileSystem) Close() error {
	if fs.conn == nil {
		return nil
	}

	return fs.conn.Close()
}

// OpenDir lists a remote directory.
func (fs *SFTPFileSystem) OpenDir(path string) (DirScanner, error) {
	return openSFTPDirScanner(fs.client, path)
}

// Stat returns file information for a remote file.
func (fs *SFTPFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := fs.client.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote file %s: %w", path, err)
	}

	return info, nil
}
