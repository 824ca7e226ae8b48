package album

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	appsync "github.com/wanderlens/backend/internal/application/sync"
	"github.com/wanderlens/backend/internal/infrastructure/config"
)

const (
	defaultUserAgent        = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	defaultValidateTimeout  = 15 * time.Second
	defaultDownloadTimeout  = 60 * time.Second
	defaultMaxDownloadBytes = 50 << 20
)

// ErrInvalidShareLink indicates the link is not a recognized shared-album URL
var ErrInvalidShareLink = errors.New("album: not a valid shared album link")

var (
	shareLinkPattern = regexp.MustCompile(`^https://(photos\.app\.goo\.gl/[A-Za-z0-9_-]+|photos\.google\.com/share/[A-Za-z0-9_-]+.*)$`)
	titlePattern     = regexp.MustCompile(`<title>([^<]*)</title>`)
	locatorPattern   = regexp.MustCompile(`https://lh3\.googleusercontent\.com/[A-Za-z0-9_/\-]+`)
)

// Ensure GooglePhotosLister implements the sync port
var _ appsync.AlbumLister = (*GooglePhotosLister)(nil)

// GooglePhotosLister resolves a public Google Photos shared-album link by
// fetching the share page and scraping image locators out of its markup.
// No API key is involved; only albums shared as public links are readable.
type GooglePhotosLister struct {
	userAgent        string
	maxDownloadBytes int64
	pageClient       *http.Client
	downloadClient   *http.Client
	logger           *zap.Logger
}

// GooglePhotosListerOption is a functional option for configuring the lister
type GooglePhotosListerOption func(*GooglePhotosLister)

// WithLogger sets the logger for the lister
func WithLogger(logger *zap.Logger) GooglePhotosListerOption {
	return func(l *GooglePhotosLister) {
		l.logger = logger
	}
}

// WithHTTPClients overrides both HTTP clients, useful for tests
func WithHTTPClients(page, download *http.Client) GooglePhotosListerOption {
	return func(l *GooglePhotosLister) {
		l.pageClient = page
		l.downloadClient = download
	}
}

// NewGooglePhotosLister creates a lister from configuration
func NewGooglePhotosLister(cfg *config.AlbumConfig, opts ...GooglePhotosListerOption) *GooglePhotosLister {
	userAgent := defaultUserAgent
	validateTimeout := defaultValidateTimeout
	downloadTimeout := defaultDownloadTimeout
	maxBytes := int64(defaultMaxDownloadBytes)

	if cfg != nil {
		if cfg.UserAgent != "" {
			userAgent = cfg.UserAgent
		}
		if cfg.ValidateTimeout > 0 {
			validateTimeout = cfg.ValidateTimeout
		}
		if cfg.DownloadTimeout > 0 {
			downloadTimeout = cfg.DownloadTimeout
		}
		if cfg.MaxDownloadBytes > 0 {
			maxBytes = cfg.MaxDownloadBytes
		}
	}

	l := &GooglePhotosLister{
		userAgent:        userAgent,
		maxDownloadBytes: maxBytes,
		pageClient:       &http.Client{Timeout: validateTimeout},
		downloadClient:   &http.Client{Timeout: downloadTimeout},
		logger:           zap.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Validate checks the link shape, fetches the share page, and extracts the
// album title when present.
func (l *GooglePhotosLister) Validate(ctx context.Context, shareLink string) (*appsync.AlbumInfo, error) {
	if !shareLinkPattern.MatchString(strings.TrimSpace(shareLink)) {
		return nil, ErrInvalidShareLink
	}

	page, err := l.fetchPage(ctx, shareLink)
	if err != nil {
		return nil, err
	}

	info := &appsync.AlbumInfo{}
	if m := titlePattern.FindSubmatch(page); m != nil {
		title := html.UnescapeString(strings.TrimSpace(string(m[1])))
		title = strings.TrimSuffix(title, " - Google Photos")
		info.Title = title
	}

	return info, nil
}

// ListItems scrapes image locators from the share page, preserving page
// order and dropping exact duplicates.
func (l *GooglePhotosLister) ListItems(ctx context.Context, shareLink string) ([]string, error) {
	if !shareLinkPattern.MatchString(strings.TrimSpace(shareLink)) {
		return nil, ErrInvalidShareLink
	}

	page, err := l.fetchPage(ctx, shareLink)
	if err != nil {
		return nil, err
	}

	matches := locatorPattern.FindAllString(string(page), -1)
	seen := make(map[string]struct{}, len(matches))
	locators := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		locators = append(locators, m)
	}

	l.logger.Debug("listed album items",
		zap.Int("matches", len(matches)),
		zap.Int("unique", len(locators)))

	return locators, nil
}

// Download fetches the full-size bytes for one locator. The "=d" suffix
// asks the CDN for the original file instead of a resized preview.
func (l *GooglePhotosLister) Download(ctx context.Context, locator string) ([]byte, error) {
	if !strings.HasPrefix(locator, "https://") {
		return nil, fmt.Errorf("album: invalid locator %q", locator)
	}

	fullSize := locator
	if !strings.Contains(locator, "=") {
		fullSize = locator + "=d"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullSize, nil)
	if err != nil {
		return nil, fmt.Errorf("album: failed to build download request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("album: download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("album: download returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("album: failed to read download: %w", err)
	}
	if int64(len(data)) > l.maxDownloadBytes {
		return nil, fmt.Errorf("album: item exceeds download limit of %d bytes", l.maxDownloadBytes)
	}

	return data, nil
}

func (l *GooglePhotosLister) fetchPage(ctx context.Context, shareLink string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shareLink, nil)
	if err != nil {
		return nil, fmt.Errorf("album: failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := l.pageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("album: failed to fetch share page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("album: share page returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("album: failed to read share page: %w", err)
	}
	return body, nil
}
