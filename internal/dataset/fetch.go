package dataset

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ufabox/InfoViz-25W-A3/internal/logger"
)

var httpClient = &http.Client{
	Timeout: 12 * time.Second,
}

const maxFetchTime = 30 * time.Second

func isRemote(path string) bool {
	l := strings.ToLower(path)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// fetch downloads a remote dataset to a temp file, retrying transient
// failures with exponential backoff. Client errors (4xx) are permanent.
// The caller must invoke cleanup once done with the returned path.
func fetch(url string) (string, func(), error) {
	log := logger.New().WithComponent("dataset.fetch").WithField("url", url)

	tmp, err := os.CreateTemp("", "casualties-*"+filepath.Ext(url))
	if err != nil {
		return "", nil, fmt.Errorf("temp file: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	var lastErr error
	op := func() error {
		resp, err := httpClient.Get(url)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			lastErr = fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
			return backoff.Permanent(lastErr)
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
			return lastErr
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		if err := tmp.Truncate(0); err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		if _, err := io.Copy(tmp, resp.Body); err != nil {
			lastErr = err
			return err
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxFetchTime

	if err := backoff.Retry(op, b); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("download failed: %w", lastErr)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	log.WithField("tmp", tmp.Name()).Info("dataset downloaded")
	return tmp.Name(), cleanup, nil
}
