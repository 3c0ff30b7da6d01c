package filesystem

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Exported constants.
const (
	// DefaultSFTPPort is used when an sftp:// URL names no port.
	DefaultSFTPPort = 22
)

// ParsedPath represents a search root: either a local path or an SFTP URL.
type ParsedPath struct {
	IsRemote bool

	// For local paths
	LocalPath string

	// For SFTP paths
	Host string
	Port int
	User string
	Path string // Remote path
}

// String renders the root for log lines and error messages.
func (p *ParsedPath) String() string {
	if !p.IsRemote {
		return p.LocalPath
	}

	return fmt.Sprintf("sftp://%s@%s:%d/%s", p.User, p.Host, p.Port, p.Path)
}

// ParsePath parses a search root, detecting whether it's a local path or SFTP URL.
// SFTP URLs have the format: sftp://user@host:port/path/to/dir
// Port is optional (defaults to 22)
// Examples:
//   - sftp://joe@myserver.com/home/joe/data
//   - sftp://joe@myserver.com:2222/backups
//   - /local/path/to/files (local path)
func ParsePath(path string) (*ParsedPath, error) {
	// Check if it's an SFTP URL
	if strings.HasPrefix(path, "sftp://") {
		return parseSFTPURL(path)
	}

	// Otherwise it's a local path
	return &ParsedPath{
		IsRemote:  false,
		LocalPath: path,
	}, nil
}

// unexported constants.
const (
	maxPort = 65535
)

// parseSFTPURL parses an SFTP URL into its components.
//
//nolint:cyclop // Complexity from comprehensive SFTP URL validation (scheme, user, host, port, path)
func parseSFTPURL(sftpURL string) (*ParsedPath, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.Scheme != "sftp" {
		return nil, fmt.Errorf("expected sftp:// scheme, got %s://", u.Scheme) //nolint:err113,lll // URL validation with actual scheme
	}

	// Extract user
	if u.User == nil || u.User.Username() == "" {
		return nil, fmt.Errorf("SFTP URL must include username (sftp://user@host/path)") //nolint:err113,perfsprint,lll // URL validation with format guidance
	}
	user := u.User.Username()

	// Extract host
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("SFTP URL must include host") //nolint:err113,perfsprint // URL validation error
	}

	port := DefaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}

		if p < 1 || p > maxPort {
			return nil, fmt.Errorf("port %d out of range 1-%d", p, maxPort) //nolint:err113 // Validation with actual value
		}

		port = p
	}

	// Extract path
	// SFTP path convention:
	//   sftp://user@host/path  → relative to home directory (strip leading /)
	//   sftp://user@host//path → absolute path /path (strip one /)
	//   sftp://user@host       → home directory (.)
	remotePath := u.Path
	//nolint:gocritic // if-else chain is clearer than switch for mixed conditions (OR, prefix check, fallthrough)
	if remotePath == "" || remotePath == "/" {
		remotePath = "."
	} else if strings.HasPrefix(remotePath, "//") {
		// Absolute path: strip one /
		remotePath = remotePath[1:]
	} else {
		// Relative to home: strip leading /
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     user,
		Path:     remotePath,
	}, nil
}
