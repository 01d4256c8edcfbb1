package archive

import (
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"pkg.jsn.cam/landdeeds/internal/deed"
)

var (
	runsBucket  = []byte("runs")
	deedsBucket = []byte("deeds") // holds one nested bucket per run ID
)

// BboltArchive implements Archive using bbolt
type BboltArchive struct {
	db  *bolt.DB
	log *zap.Logger
}

// NewBboltArchive opens (or creates) the archive database at dbPath
func NewBboltArchive(dbPath string, log *zap.Logger) (*BboltArchive, error) {
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{runsBucket, deedsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("bbolt archive initialized", zap.String("path", dbPath))
	return &BboltArchive{db: db, log: log}, nil
}

func (a *BboltArchive) Close() error {
	return a.db.Close()
}

func (a *BboltArchive) SaveRun(run Run, records []deed.Record) error {
	return a.db.Update(func(tx *bolt.Tx) error {
		data, err := encodeJSON(run)
		if err != nil {
			return err
		}
		if err := tx.Bucket(runsBucket).Put([]byte(run.ID), data); err != nil {
			return err
		}

		parent := tx.Bucket(deedsBucket)
		if parent.Bucket([]byte(run.ID)) != nil {
			if err := parent.DeleteBucket([]byte(run.ID)); err != nil {
				return err
			}
		}
		b, err := parent.CreateBucket([]byte(run.ID))
		if err != nil {
			return fmt.Errorf("failed to create deeds bucket for run %s: %w", run.ID, err)
		}
		for i, rec := range records {
			data, err := encodeJSON(rec)
			if err != nil {
				return err
			}
			if err := b.Put(recordKey(i), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *BboltArchive) LoadRun(id string) (Run, error) {
	var run Run
	err := a.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(runsBucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		if err := decodeJSON(data, &run); err != nil {
			return err
		}
		return checkRun(run)
	})
	return run, err
}

func (a *BboltArchive) Runs() ([]Run, error) {
	var runs []Run
	err := a.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(k, v []byte) error {
			var run Run
			if err := decodeJSON(v, &run); err != nil {
				a.log.Warn("skipping corrupted run", zap.ByteString("run_id", k), zap.Error(err))
				return nil
			}
			runs = append(runs, run)
			return nil
		})
	})
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, err
}

func (a *BboltArchive) Records(runID string) ([]deed.Record, error) {
	var records []deed.Record
	err := a.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(runsBucket).Get([]byte(runID))
		b := tx.Bucket(deedsBucket).Bucket([]byte(runID))
		if data == nil || b == nil {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		var run Run
		if err := decodeJSON(data, &run); err != nil {
			return err
		}
		if err := checkRun(run); err != nil {
			return err
		}
		return b.ForEach(func(_, v []byte) error {
			var rec deed.Record
			if err := decodeJSON(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	return records, err
}

func (a *BboltArchive) DeleteRun(id string) error {
	return a.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(runsBucket).Delete([]byte(id)); err != nil {
			return err
		}
		err := tx.Bucket(deedsBucket).DeleteBucket([]byte(id))
		if err == bolt.ErrBucketNotFound {
			return nil // Idempotent
		}
		return err
	})
}
