package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/service"
)

// DirFetcher reads {dir}/{week}.json from the local filesystem.
type DirFetcher struct {
	dir string
}

// NewDirFetcher creates a fetcher over dir, which must exist.
func NewDirFetcher(dir string) (*DirFetcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: source directory: %w", common.ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", common.ErrInvalidConfig, dir)
	}
	return &DirFetcher{dir: dir}, nil
}

// FetchWeek implements service.Fetcher. NoCache has no effect on files.
func (d *DirFetcher) FetchWeek(ctx context.Context, week int, _ service.FetchOptions) (*model.WeekPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(d.dir, strconv.Itoa(week)+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: week %d", common.ErrWeekNotFound, week)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: week %d: %w", common.ErrNetwork, week, err)
	}
	defer func() { _ = f.Close() }()

	return decode(f, week)
}
