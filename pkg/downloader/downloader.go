/*
Copyright The Ametrine Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package downloader turns a resolved version and its asset index into a
complete local file set.

It enumerates every required remote artifact, skips those already present
on disk, runs the rest through a bounded worker pool and persists the asset
index document alongside the downloaded objects. A file that exists locally
is trusted as-is; presence is the entire caching policy, content is never
re-verified. Failed tasks are recorded, never retried, and never abort their
siblings.
*/
package downloader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"rinici.de/ametrine/internal/fileutil"
	"rinici.de/ametrine/pkg/assets"
	"rinici.de/ametrine/pkg/gamepath"
	"rinici.de/ametrine/pkg/getter"
	"rinici.de/ametrine/pkg/version"
)

const (
	// DefaultLibrariesURL is the endpoint library relative paths resolve against.
	DefaultLibrariesURL = "https://libraries.minecraft.net/"

	// DefaultResourcesURL is the endpoint asset object hashes resolve against.
	DefaultResourcesURL = "https://resources.download.minecraft.net/"

	// DefaultConcurrency bounds in-flight downloads. Asset indexes list
	// thousands of objects; starting them all at once runs the process out
	// of sockets.
	DefaultConcurrency = 16

	// DefaultTaskTimeout bounds a single artifact download so one stuck
	// transfer cannot wedge the whole run.
	DefaultTaskTimeout = 2 * time.Minute

	lockRetryInterval = 250 * time.Millisecond
)

// Task is one remote-artifact-to-local-path download unit.
type Task struct {
	URL  string
	Path string
}

// TaskFailure records a task that did not complete. Failures are terminal:
// there is no retry.
type TaskFailure struct {
	Task Task
	Err  error
}

// Error implements the error interface.
func (f *TaskFailure) Error() string {
	return errors.Wrapf(f.Err, "download %s", f.Task.URL).Error()
}

// Unwrap returns the underlying cause.
func (f *TaskFailure) Unwrap() error { return f.Err }

// PersistenceError reports a local write that failed after its download
// succeeded, or a failed index persistence.
type PersistenceError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return errors.Wrapf(e.Err, "write %s", e.Path).Error()
}

// Unwrap returns the underlying cause.
func (e *PersistenceError) Unwrap() error { return e.Err }

// Report describes the outcome of one orchestration run.
type Report struct {
	// Scheduled counts tasks actually dispatched.
	Scheduled int
	// Skipped counts tasks dropped because their destination already existed.
	Skipped int
	// Succeeded counts dispatched tasks that completed and were written out.
	Succeeded int
	// Failures holds every task that did not complete, with its identity.
	Failures []*TaskFailure
}

// Err aggregates the run's failures, or nil if every task completed.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, f := range r.Failures {
		result = multierror.Append(result, f)
	}
	return result.ErrorOrNil()
}

// Downloader orchestrates artifact downloads for a version.
type Downloader struct {
	Getter getter.Getter

	// LibrariesURL and ResourcesURL override the default endpoints.
	LibrariesURL string
	ResourcesURL string

	// Concurrency bounds the worker pool. Zero means DefaultConcurrency.
	Concurrency int

	// TaskTimeout bounds each artifact download. Zero means DefaultTaskTimeout.
	TaskTimeout time.Duration

	// Log receives per-task progress. Nil disables progress logging.
	Log logrus.FieldLogger
}

// Run downloads every artifact the version requires that is not already
// present under the layout, then persists the asset index document verbatim.
//
// Individual task failures land in the report and do not halt the run; the
// returned error is non-nil only when the run as a whole could not proceed
// (lock contention, context cancellation, index persistence failure).
func (d *Downloader) Run(ctx context.Context, v *version.Info, idx *assets.Index, layout gamepath.Layout) (*Report, error) {
	if err := os.MkdirAll(layout.Data, 0755); err != nil {
		return nil, &PersistenceError{Path: layout.Data, Err: err}
	}

	// Hold a file lock for the duration of the run so two launcher
	// processes do not orchestrate into the same tree at once.
	fileLock := flock.New(layout.LockPath())
	locked, err := fileLock.TryLockContext(ctx, lockRetryInterval)
	if err == nil && !locked {
		err = errors.New("lock not acquired")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to lock %s", layout.LockPath())
	}
	defer fileLock.Unlock()

	report := &Report{}
	tasks := d.buildTasks(v, idx, layout, report)
	report.Scheduled = len(tasks)

	var mu sync.Mutex
	remaining := len(tasks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency())
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			// A canceled run stops dispatching; an individual failure
			// must not cancel the group.
			if err := gctx.Err(); err != nil {
				return err
			}

			err := d.fetchOne(gctx, t)

			mu.Lock()
			remaining--
			left := remaining
			if err != nil {
				report.Failures = append(report.Failures, &TaskFailure{Task: t, Err: err})
			} else {
				report.Succeeded++
			}
			mu.Unlock()

			if d.Log != nil {
				if err != nil {
					d.Log.WithError(err).Warnf("failed %s", t.URL)
				}
				d.Log.Debugf("%s (%d left)", t.Path, left)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	// The index is rewritten on every run, even when nothing was scheduled,
	// byte for byte as it was fetched.
	indexPath := layout.AssetIndexPath(v.AssetsID)
	if err := os.MkdirAll(filepath.Dir(indexPath), 0755); err != nil {
		return report, &PersistenceError{Path: indexPath, Err: err}
	}
	if err := fileutil.AtomicWriteFile(indexPath, bytes.NewReader(idx.Raw()), 0644); err != nil {
		return report, &PersistenceError{Path: indexPath, Err: err}
	}

	return report, nil
}

// buildTasks enumerates the version's remote artifacts: one task per
// library, one per asset object, one for the client binary. At most one task
// exists per distinct destination path, and destinations that already exist
// on disk are counted as skipped instead of scheduled.
func (d *Downloader) buildTasks(v *version.Info, idx *assets.Index, layout gamepath.Layout, report *Report) []Task {
	librariesURL := strings.TrimSuffix(stringOr(d.LibrariesURL, DefaultLibrariesURL), "/")
	resourcesURL := strings.TrimSuffix(stringOr(d.ResourcesURL, DefaultResourcesURL), "/")

	var tasks []Task
	seen := make(map[string]bool)
	add := func(t Task) {
		if seen[t.Path] {
			return
		}
		seen[t.Path] = true
		if _, err := os.Stat(t.Path); err == nil {
			report.Skipped++
			return
		}
		tasks = append(tasks, t)
	}

	for _, lib := range v.Libraries {
		add(Task{
			URL:  librariesURL + "/" + lib,
			Path: layout.LibraryPath(lib),
		})
	}

	for _, obj := range idx.Objects {
		if len(obj.Hash) < 2 {
			continue
		}
		add(Task{
			URL:  resourcesURL + "/" + obj.Hash[:2] + "/" + obj.Hash,
			Path: layout.AssetObjectPath(obj.Hash),
		})
	}

	add(Task{
		URL:  v.ClientJarURL,
		Path: layout.ClientJarPath(v.ID),
	})

	return tasks
}

func (d *Downloader) fetchOne(ctx context.Context, t Task) error {
	// The request timeout bounds the single transfer; ctx still carries
	// run-level cancellation.
	body, err := d.Getter.Get(ctx, t.URL, getter.WithTimeout(d.taskTimeout()))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(t.Path), 0755); err != nil {
		return &PersistenceError{Path: t.Path, Err: err}
	}
	if err := fileutil.AtomicWriteFile(t.Path, body, 0644); err != nil {
		return &PersistenceError{Path: t.Path, Err: err}
	}
	return nil
}

func (d *Downloader) concurrency() int {
	if d.Concurrency > 0 {
		return d.Concurrency
	}
	return DefaultConcurrency
}

func (d *Downloader) taskTimeout() time.Duration {
	if d.TaskTimeout > 0 {
		return d.TaskTimeout
	}
	return DefaultTaskTimeout
}

func stringOr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
