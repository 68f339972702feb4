package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jlaffaye/ftp"
)

const (
	ftpDefaultPort = "21"
	ftpTimeout     = 30 * time.Second
)

// FTPFetcher downloads dataset files from FTP servers, such as the open
// data mirrors published by state agriculture departments.
type FTPFetcher struct {
	timeout        time.Duration
	maxElapsedTime time.Duration
}

func NewFTPFetcher() *FTPFetcher {
	return &FTPFetcher{
		timeout:        ftpTimeout,
		maxElapsedTime: 2 * time.Minute,
	}
}

// Fetch retrieves the file named by an ftp:// URL. Connection failures are
// retried with exponential backoff; login failures and missing files are not.
func (f *FTPFetcher) Fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	if u.Scheme != "ftp" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), ftpDefaultPort)
	}
	user, pass := "anonymous", "anonymous"
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}

	var body []byte
	operation := func() error {
		conn, err := ftp.Dial(addr, ftp.DialWithTimeout(f.timeout), ftp.DialWithContext(ctx))
		if err != nil {
			return fmt.Errorf("ftp dial: %w", err)
		}
		defer conn.Quit()

		if err := conn.Login(user, pass); err != nil {
			return backoff.Permanent(fmt.Errorf("ftp login: %w", err))
		}

		resp, err := conn.Retr(u.Path)
		if err != nil {
			var tpErr *textproto.Error
			if errors.As(err, &tpErr) && tpErr.Code == ftp.StatusFileUnavailable {
				return backoff.Permanent(fmt.Errorf("ftp retr %s: %w", u.Path, err))
			}
			return fmt.Errorf("ftp retr: %w", err)
		}
		defer resp.Close()

		body, err = io.ReadAll(resp)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = f.maxElapsedTime
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
