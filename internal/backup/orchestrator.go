package backup

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	logger "github.com/sirupsen/logrus"
)

// Syncer syncs a single item. *Engine is the production implementation.
type Syncer interface {
	Sync(ctx context.Context, item RemoteItem, dest Destination, opts SyncOptions) Outcome
}

// RunOptions controls a batch run.
type RunOptions struct {
	Quiet      bool
	Mirror     bool
	Categories []Category // empty means every category
}

// Job is one planned sync.
type Job struct {
	Category    Category
	Item        RemoteItem
	Destination Destination
}

// Report aggregates the outcomes of a batch run.
type Report struct {
	Outcomes []Outcome
	Duration time.Duration
}

// Cloned returns the number of newly cloned items.
func (r Report) Cloned() int { return r.count(StatusCloned) }

// Updated returns the number of updated items.
func (r Report) Updated() int { return r.count(StatusUpdated) }

// Failed returns the number of failed items.
func (r Report) Failed() int { return r.count(StatusFailed) }

// Failures returns the failed outcomes in run order.
func (r Report) Failures() []Outcome {
	return lo.Filter(r.Outcomes, func(o Outcome, _ int) bool { return o.Status == StatusFailed })
}

func (r Report) count(s Status) int {
	return lo.CountBy(r.Outcomes, func(o Outcome) bool { return o.Status == s })
}

// Orchestrator drives the engine over a classified set.
type Orchestrator struct {
	syncer Syncer
}

// NewOrchestrator creates an Orchestrator backed by syncer.
func NewOrchestrator(syncer Syncer) *Orchestrator {
	return &Orchestrator{syncer: syncer}
}

// Plan lists the jobs for a run: categories in lexicographic order, items in
// the order they were listed. templates must already be bound to the run's
// backup directory and username.
func Plan(set ClassifiedSet, templates Templates, opts RunOptions) []Job {
	var jobs []Job
	for _, category := range set.Categories() {
		if len(opts.Categories) > 0 && !lo.Contains(opts.Categories, category) {
			continue
		}
		dir := templates.Dir(category)
		for _, item := range set[category] {
			jobs = append(jobs, Job{
				Category: category,
				Item:     item,
				Destination: Destination{
					Path:   itemPath(dir, category, item),
					Mirror: opts.Mirror,
				},
			})
		}
	}
	return jobs
}

// itemPath joins the item's directory name onto dir. Watched and starred items
// come from many owners, so they get an owner directory to keep same-named
// repositories apart.
func itemPath(dir string, category Category, item RemoteItem) string {
	if category.ForeignOwners() && item.Owner != "" {
		return filepath.Join(dir, item.Owner, item.Name)
	}
	return filepath.Join(dir, item.Name)
}

// CheckCollisions returns an error naming every destination that more than
// one job resolves to.
func CheckCollisions(jobs []Job) error {
	seen := make(map[string]Job, len(jobs))
	var clashes []string
	for _, job := range jobs {
		path := filepath.Clean(job.Destination.Effective())
		if first, ok := seen[path]; ok {
			clashes = append(clashes, fmt.Sprintf("%s (%s and %s)", path, first.Item.DisplayName, job.Item.DisplayName))
			continue
		}
		seen[path] = job
	}
	if len(clashes) == 0 {
		return nil
	}
	sort.Strings(clashes)
	return fmt.Errorf("destination collision: %s", strings.Join(clashes, "; "))
}

// Run syncs every planned job in order. A failed item is recorded and the run
// moves on; callers inspect Report.Failed for the exit status.
func (o *Orchestrator) Run(ctx context.Context, set ClassifiedSet, templates Templates, opts RunOptions) Report {
	start := time.Now()
	jobs := Plan(set, templates, opts)

	logger.Debugf("Syncing %d items across %d categories", len(jobs), len(set.Categories()))

	report := Report{Outcomes: make([]Outcome, 0, len(jobs))}
	syncOpts := SyncOptions{Quiet: opts.Quiet, Mirror: opts.Mirror}

	for _, job := range jobs {
		outcome := o.syncer.Sync(ctx, job.Item, job.Destination, syncOpts)
		outcome.Category = job.Category

		logger.WithField("duration", outcome.Duration).Debugf("%s %s", outcome.Status, job.Item.DisplayName)
		if outcome.Status == StatusFailed && !opts.Quiet {
			logger.WithFields(logger.Fields{
				"category": job.Category,
				"path":     outcome.Path,
			}).Errorf("Failed to back up %s: %v", job.Item.DisplayName, outcome.Err)
		}

		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.Duration = time.Since(start)
	return report
}
