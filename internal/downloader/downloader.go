// Package downloader performs idempotent streamed downloads of installer
// artifacts. Re-running against an existing destination is a no-op unless
// force is set.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"vmforge/internal/errors"
	"vmforge/internal/util"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
)

// Status reports how a download concluded.
type Status string

const (
	// Downloaded means the artifact was fetched over the network.
	Downloaded Status = "downloaded"
	// AlreadyPresent means the destination already existed and no network
	// call was made.
	AlreadyPresent Status = "already present"
)

// Outcome describes the result of a download.
type Outcome struct {
	Path   string
	Status Status
	Detail string
}

const chunkSize = 32 * 1024

// No client-level timeout: an ISO download over a slow link can legitimately
// take a long time. Cancellation comes from the request context.
var httpClient = &http.Client{}

// Download fetches url into dest. With force set, any pre-existing file at
// dest is deleted first; without it, an existing file short-circuits the
// transfer. The body is streamed in fixed-size chunks through a progress bar
// into a temp file that is renamed into place on completion.
var Download = func(ctx context.Context, url, dest string, force bool) (Outcome, error) {
	if force {
		if err := util.RemoveIfExists(dest); err != nil {
			return Outcome{}, errors.E("download", errors.DownloadFailed,
				fmt.Errorf("failed to remove existing file %s: %w", dest, err))
		}
	} else if util.FileExists(dest) {
		return Outcome{
			Path:   dest,
			Status: AlreadyPresent,
			Detail: fmt.Sprintf("file '%s' already exists", dest),
		}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{}, errors.E("download", errors.DownloadFailed, err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return Outcome{}, errors.E("download", errors.DownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{}, errors.E("download", errors.DownloadFailed,
			fmt.Errorf("failed to download %s: %s", url, resp.Status))
	}

	if err := writeBody(resp, dest); err != nil {
		return Outcome{}, err
	}

	// The rename just succeeded, so absence here is a fatal inconsistency.
	if !util.FileExists(dest) {
		return Outcome{}, errors.E("download", errors.DownloadFailed,
			fmt.Errorf("file '%s' is missing after a completed download", dest))
	}

	return Outcome{
		Path:   dest,
		Status: Downloaded,
		Detail: fmt.Sprintf("file '%s' downloaded", dest),
	}, nil
}

func writeBody(resp *http.Response, dest string) error {
	tmp := filepath.Join(filepath.Dir(dest),
		fmt.Sprintf(".%s.partial-%.8s", filepath.Base(dest), uuid.NewString()))

	out, err := os.Create(tmp)
	if err != nil {
		return errors.E("download", errors.DownloadFailed, err)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	bar := pb.New64(total).Set(pb.Bytes, true)
	bar.Start()
	defer bar.Finish()

	_, err = io.CopyBuffer(out, bar.NewProxyReader(resp.Body), make([]byte, chunkSize))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return errors.E("download", errors.DownloadFailed, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return errors.E("download", errors.DownloadFailed, err)
	}
	return nil
}
