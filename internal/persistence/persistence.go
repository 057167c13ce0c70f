package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketHistory = "history"
)

// Record is the persisted outcome of one evaluation cycle
type Record struct {
	Time        time.Time          `json:"time"`
	Cycle       uint64             `json:"cycle"`
	Inputs      map[string]int     `json:"inputs"`
	Outputs     map[string]int     `json:"outputs"`
	Diagnostics []fuzzy.Diagnostic `json:"diagnostics,omitempty"`
}

// NewRecord captures the input and output values of result,
// outputs that have not been written are left out.
func NewRecord(t time.Time, result fuzzy.Result) Record {
	record := Record{
		Time:        t,
		Cycle:       result.Cycle,
		Inputs:      map[string]int{},
		Outputs:     map[string]int{},
		Diagnostics: result.Diagnostics,
	}
	for _, input := range result.Inputs {
		record.Inputs[input.Name] = input.Value
	}
	for _, output := range result.Outputs {
		if output.Valid {
			record.Outputs[output.Name] = output.Value
		}
	}
	return record
}

type Persistence interface {
	Init() error

	// SaveRecord appends a record to the history of a system,
	// dropping the oldest records beyond the configured size
	SaveRecord(systemId string, record Record) error
	// LoadRecords returns up to limit of the most recent records in chronological order,
	// limit <= 0 returns all of them
	LoadRecords(systemId string, limit int) ([]Record, error)
	DeleteRecords(systemId string) error
	// SystemIds lists all systems with a history
	SystemIds() ([]string, error)
}

type persistence struct {
	dbPath      string
	historySize int
}

func NewPersistence(dbPath string, historySize int) Persistence {
	return &persistence{
		dbPath:      dbPath,
		historySize: historySize,
	}
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func sequenceKey(sequence uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sequence)
	return key
}

func (p persistence) SaveRecord(systemId string, record Record) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists([]byte(BucketHistory))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		b, err := root.CreateBucketIfNotExists([]byte(systemId))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		sequence, err := b.NextSequence()
		if err != nil {
			return err
		}
		err = b.Put(sequenceKey(sequence), data)
		if err != nil {
			return err
		}

		if p.historySize <= 0 {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.First() {
			count := sequence - binary.BigEndian.Uint64(k) + 1
			if count <= uint64(p.historySize) {
				break
			}
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p persistence) LoadRecords(systemId string, limit int) ([]Record, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var records []Record
	err = db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketHistory))
		if root == nil {
			return os.ErrNotExist
		}
		b := root.Bucket([]byte(systemId))
		if b == nil {
			return os.ErrNotExist
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				ui.Warning("Unable to unmarshal history record %d of %s: %v", binary.BigEndian.Uint64(k), systemId, err)
				continue
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// chronological order
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (p persistence) DeleteRecords(systemId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketHistory))
		if root == nil || root.Bucket([]byte(systemId)) == nil {
			// nothing recorded yet
			return nil
		}
		return root.DeleteBucket([]byte(systemId))
	})
}

func (p persistence) SystemIds() ([]string, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []string
	err = db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketHistory))
		if root == nil {
			return nil
		}
		return root.ForEach(func(k, v []byte) error {
			if v == nil {
				result = append(result, string(k))
			}
			return nil
		})
	})
	return result, err
}
