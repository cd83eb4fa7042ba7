package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

func WriteBytes(data []byte, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeAndClose(out, data)
}

// writeAndClose reports a failed Close, since that can be where a write
// actually fails.
func writeAndClose(out io.WriteCloser, data []byte) error {
	_, err := out.Write(data)
	closeErr := out.Close()
	if err != nil {
		return err
	}
	return closeErr
}

func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Load reads a demo from a path or URL.
func Load(ctx context.Context, path string) ([]byte, error) {
	if IsURL(path) {
		return DownloadBytes(ctx, path)
	}
	return os.ReadFile(path)
}
