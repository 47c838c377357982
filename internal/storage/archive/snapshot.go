package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/newthinker/tradejournal/internal/analytics"
	"github.com/newthinker/tradejournal/internal/core"
	"go.uber.org/zap"
)

const reportsRoot = "reports"

var snapshotName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Snapshot is an archived analytics report with the window it covers.
type Snapshot struct {
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"createdAt"`
	From      time.Time        `json:"from,omitempty"`
	To        time.Time        `json:"to,omitempty"`
	Report    analytics.Report `json:"report"`
}

// Recorder receives one status per archive write. *metrics.Registry satisfies it.
type Recorder interface {
	RecordArchive(status string)
}

// ReportArchiver writes report snapshots as indented JSON under
// reports/YYYY/MM/<name>.json.
type ReportArchiver struct {
	storage  Storage
	log      *zap.Logger
	recorder Recorder
	now      func() time.Time
}

// NewReportArchiver creates an archiver over storage. log and recorder may be nil.
func NewReportArchiver(storage Storage, log *zap.Logger, recorder Recorder) *ReportArchiver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportArchiver{
		storage:  storage,
		log:      log,
		recorder: recorder,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SnapshotPath returns the storage path for a snapshot named name created at ts.
func SnapshotPath(name string, ts time.Time) string {
	ts = ts.UTC()
	return path.Join(reportsRoot, ts.Format("2006"), ts.Format("01"), name+".json")
}

// Save archives report under name and returns the path written.
func (a *ReportArchiver) Save(ctx context.Context, name string, from, to time.Time, report analytics.Report) (string, error) {
	if !snapshotName.MatchString(name) {
		a.record("invalid")
		return "", core.WrapError(core.ErrArchiveFailed, fmt.Errorf("invalid snapshot name %q", name))
	}

	snap := Snapshot{
		Name:      name,
		CreatedAt: a.now(),
		From:      from,
		To:        to,
		Report:    report,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		a.record("error")
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}

	p := SnapshotPath(name, snap.CreatedAt)
	if err := a.storage.Write(ctx, p, data); err != nil {
		a.record("error")
		a.log.Error("report archive failed", zap.String("path", p), zap.Error(err))
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}

	a.record("success")
	a.log.Info("report archived",
		zap.String("path", p),
		zap.Int("trades", report.Summary.TotalTrades),
	)
	return p, nil
}

// Load reads the snapshot stored at p.
func (a *ReportArchiver) Load(ctx context.Context, p string) (*Snapshot, error) {
	data, err := a.storage.Read(ctx, p)
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, fmt.Errorf("decode %s: %w", p, err))
	}
	return &snap, nil
}

// List returns snapshot paths, newest month first and by name within a month.
func (a *ReportArchiver) List(ctx context.Context) ([]string, error) {
	paths, err := a.storage.List(ctx, reportsRoot)
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasSuffix(p, ".json") {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := path.Dir(out[i]), path.Dir(out[j])
		if di != dj {
			return di > dj
		}
		return out[i] < out[j]
	})
	return out, nil
}

func (a *ReportArchiver) record(status string) {
	if a.recorder != nil {
		a.recorder.RecordArchive(status)
	}
}
