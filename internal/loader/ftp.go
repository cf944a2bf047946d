package loader

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/url"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FTPOptions configures the FTP data source.
type FTPOptions struct {
	User     string
	Password string
	Timeout  time.Duration
}

// FTPSource serves study documents from a directory on an FTP server,
// connecting per file. The base URL has the form ftp://host[:port]/dir.
type FTPSource struct {
	host string
	dir  string
	opts FTPOptions
}

// NewFTPSource creates a source for the given ftp:// base URL. Credentials
// default to anonymous.
func NewFTPSource(baseURL string, opts FTPOptions) (*FTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, eris.Wrap(err, "ftp source: parse base url")
	}
	if u.Scheme != "ftp" {
		return nil, eris.Errorf("ftp source: expected ftp scheme, got %q", u.Scheme)
	}

	host := u.Host
	if _, _, splitErr := net.SplitHostPort(host); splitErr != nil {
		host = net.JoinHostPort(host, "21")
	}

	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.User == "" {
		opts.User = "anonymous"
		opts.Password = "anonymous@"
	}

	return &FTPSource{host: host, dir: u.Path, opts: opts}, nil
}

// ftpConnReader ties the FTP response to its connection so that closing
// the reader also disconnects from the server.
type ftpConnReader struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpConnReader) Read(p []byte) (int, error) {
	return r.resp.Read(p)
}

func (r *ftpConnReader) Close() error {
	respErr := r.resp.Close()
	quitErr := r.conn.Quit()
	if respErr != nil {
		return eris.Wrap(respErr, "ftp source: close response")
	}
	if quitErr != nil {
		return eris.Wrap(quitErr, "ftp source: quit connection")
	}
	return nil
}

func (s *FTPSource) retrieve(ctx context.Context, name string) (io.ReadCloser, error) {
	target := path.Join(s.dir, path.Base(name))
	zap.L().Debug("ftp source: connecting",
		zap.String("host", s.host),
		zap.String("path", target),
	)

	conn, err := ftp.Dial(s.host, ftp.DialWithTimeout(s.opts.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, eris.Wrap(err, "ftp source: dial")
	}
	if err := conn.Login(s.opts.User, s.opts.Password); err != nil {
		_ = conn.Quit()
		return nil, eris.Wrap(err, "ftp source: login")
	}

	resp, err := conn.Retr(target)
	if err != nil {
		_ = conn.Quit()
		return nil, eris.Wrapf(err, "ftp source: retrieve %s", target)
	}
	return &ftpConnReader{resp: resp, conn: conn}, nil
}

// Manifest fetches and decodes the manifest resource.
func (s *FTPSource) Manifest(ctx context.Context) (Manifest, error) {
	body, err := s.retrieve(ctx, ManifestName)
	if err != nil {
		return Manifest{}, err
	}
	defer body.Close() //nolint:errcheck

	var m Manifest
	if err := json.NewDecoder(body).Decode(&m); err != nil {
		return Manifest{}, eris.Wrap(err, "ftp source: decode manifest")
	}
	return m, nil
}

// Record fetches one study document.
func (s *FTPSource) Record(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.retrieve(ctx, name)
}
