package source

import (
	"fmt"
	"time"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/service"
)

// New picks a fetcher: a local directory wins over a base URL.
func New(baseURL, dir string, timeout time.Duration) (service.Fetcher, error) {
	if dir != "" {
		return NewDirFetcher(dir)
	}
	if baseURL != "" {
		return NewHTTPFetcher(baseURL, WithTimeout(timeout))
	}
	return nil, fmt.Errorf("%w: set source.base_url or source.dir", common.ErrMissingConfig)
}
