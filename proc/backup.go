package proc

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/robfig/cron/v3"
)

var backupRunning int32

func init() {
	sys.RegisterDaemon(sys.LogBackup, StartBackup)
}

// StartBackup runs periodic JSON snapshots of the guild data store on the
// configured cron schedule. The sqlite file is the source of truth; the
// snapshots are a recovery convenience, so every failure here is logged and
// swallowed.
func StartBackup(parentCtx context.Context) (bool, func(), func()) {
	if !atomic.CompareAndSwapInt32(&backupRunning, 0, 1) {
		return false, nil, nil
	}

	cfg := sys.GlobalConfig
	schedule, err := cron.ParseStandard(cfg.BackupCron)
	if err != nil {
		// Validated at config load; unreachable in practice.
		sys.LogBackup(sys.MsgConfigBadCron, cfg.BackupCron, err)
		return false, nil, nil
	}

	ctx, cancel := context.WithCancel(parentCtx)

	run := func() {
		for {
			next := schedule.Next(time.Now())
			sys.LogBackup(sys.MsgBackupNextRun, next.Format("2006-01-02 15:04"))

			timer := time.NewTimer(time.Until(next))
			select {
			case <-timer.C:
				writeSnapshot(sys.Data, cfg.BackupDir)
				pruneSnapshots(cfg.BackupDir, cfg.BackupKeep)
			case <-ctx.Done():
				timer.Stop()
				return
			}
		}
	}

	return true, run, cancel
}

func writeSnapshot(store *sys.Store, dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		sys.LogBackup(sys.MsgBackupWriteFail, err)
		return
	}

	var buf bytes.Buffer
	if err := store.ExportJSON(&buf); err != nil {
		sys.LogBackup(sys.MsgBackupWriteFail, err)
		return
	}

	name := filepath.Join(dir, "utool-"+time.Now().Format("20060102-1504")+".json")
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		sys.LogBackup(sys.MsgBackupWriteFail, err)
		return
	}

	sys.LogBackup(sys.MsgBackupWritten, name, buf.Len())
}

func pruneSnapshots(dir string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		sys.LogBackup(sys.MsgBackupPruneFail, err)
		return
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "utool-") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			sys.LogBackup(sys.MsgBackupPruneFail, err)
			continue
		}
		sys.LogBackup(sys.MsgBackupPruned, name)
	}
}
