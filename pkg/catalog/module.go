// Package catalog indexes archived demos in sqlite.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/psydoom/ticksync/pkg/demo"
	"github.com/psydoom/ticksync/pkg/ruleset"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("demo not in catalog")

type Entity struct {
	ID uint `gorm:"primaryKey"`
}

type Entry struct {
	Entity

	// Archive key of the demo
	Key string `gorm:"column:demo_key;unique;not null;size:16"`
	// Where the demo was archived from
	Source string

	FormatVersion  uint32
	RulesetVersion int32
	Skill          int32
	Map            int32 `gorm:"index"`
	GameType       int32
	PlayerIndex    int32
	MapHash        string `gorm:"size:32"`
	Ticks          int

	Created time.Time
}

// NewEntry describes an archived demo.
func NewEntry(key, source string, header *demo.Header, ticks int) Entry {
	rulesVersion, _ := ruleset.ForDemoFormat(header.FormatVersion)
	return Entry{
		Key:            key,
		Source:         source,
		FormatVersion:  header.FormatVersion,
		RulesetVersion: int32(rulesVersion),
		Skill:          int32(header.Skill),
		Map:            header.Map,
		GameType:       int32(header.GameType),
		PlayerIndex:    header.PlayerIndex,
		MapHash:        header.MapHash.String(),
		Ticks:          ticks,
		Created:        time.Now().UTC(),
	}
}

type Catalog struct {
	db *gorm.DB
}

func Open(path string) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&Entry{})
	if err != nil {
		return nil, err
	}

	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	db, err := c.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// Add records a demo. Adding a key again replaces the earlier entry.
func (c *Catalog) Add(ctx context.Context, entry *Entry) error {
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "demo_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"source", "ticks", "created"}),
		}).
		Create(entry).Error
}

func (c *Catalog) Get(ctx context.Context, key string) (*Entry, error) {
	var entry Entry
	err := c.db.WithContext(ctx).Where("demo_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ByMap lists the demos recorded on a map, oldest first. A map number of
// zero lists every demo.
func (c *Catalog) ByMap(ctx context.Context, mapNumber int32) ([]Entry, error) {
	query := c.db.WithContext(ctx).Order("created, id")
	if mapNumber != 0 {
		query = query.Where("map = ?", mapNumber)
	}

	var entries []Entry
	err := query.Find(&entries).Error
	return entries, err
}
