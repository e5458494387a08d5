// Package sqlitecatalog is a skin.Catalog backed by a SQLite table of
// named scene objects (bodies, materials), modeled on
// jvkabum-FortressVision's MaterialStore/MaterialModel persistence
// pattern: a gorm.DB handle plus an in-memory name->id cache populated
// once at open time and kept in sync on writes.
package sqlitecatalog

import (
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Faultbox/meshcompile/internal/skin"
)

// BodyModel is a named body row, keyed by Name so repeated compiles of
// the same scene resolve to a stable id.
type BodyModel struct {
	Name string `gorm:"primaryKey"`
	ID   int32  `gorm:"uniqueIndex"`
}

// MaterialModel is a named material row, the material-table counterpart
// to BodyModel.
type MaterialModel struct {
	Name string `gorm:"primaryKey"`
	ID   int32  `gorm:"uniqueIndex"`
}

// Catalog is a SQLite-backed skin.Catalog. Zero value is not usable;
// construct with Open.
type Catalog struct {
	db *gorm.DB

	mu        sync.RWMutex
	bodies    map[string]int32
	materials map[string]int32
}

// Open opens (or creates) the SQLite database at path, migrates its
// schema, and preloads the name->id caches. Use ":memory:" for a
// throwaway catalog in tests.
func Open(path string) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlitecatalog: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&BodyModel{}, &MaterialModel{}); err != nil {
		return nil, fmt.Errorf("sqlitecatalog: migrate: %w", err)
	}

	c := &Catalog{
		db:        db,
		bodies:    make(map[string]int32),
		materials: make(map[string]int32),
	}
	if err := c.loadFromDB(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) loadFromDB() error {
	var bodies []BodyModel
	if err := c.db.Find(&bodies).Error; err != nil {
		return fmt.Errorf("sqlitecatalog: load bodies: %w", err)
	}
	var materials []MaterialModel
	if err := c.db.Find(&materials).Error; err != nil {
		return fmt.Errorf("sqlitecatalog: load materials: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range bodies {
		c.bodies[b.Name] = b.ID
	}
	for _, m := range materials {
		c.materials[m.Name] = m.ID
	}
	return nil
}

// RegisterBody assigns id to a named body and persists it, overwriting
// any prior id for the same name.
func (c *Catalog) RegisterBody(name string, id int32) error {
	return c.register(&c.bodies, BodyModel{Name: name, ID: id}, name, id)
}

// RegisterMaterial assigns id to a named material and persists it.
func (c *Catalog) RegisterMaterial(name string, id int32) error {
	return c.register(&c.materials, MaterialModel{Name: name, ID: id}, name, id)
}

func (c *Catalog) register(cache *map[string]int32, model any, name string, id int32) error {
	if err := c.db.Save(model).Error; err != nil {
		return fmt.Errorf("sqlitecatalog: save %q: %w", name, err)
	}
	c.mu.Lock()
	(*cache)[name] = id
	c.mu.Unlock()
	return nil
}

// FindObject implements skin.Catalog.
func (c *Catalog) FindObject(kind skin.ObjectKind, name string) (int32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var m map[string]int32
	switch kind {
	case skin.ObjectBody:
		m = c.bodies
	case skin.ObjectMaterial:
		m = c.materials
	default:
		return 0, false
	}
	id, ok := m[name]
	return id, ok
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
