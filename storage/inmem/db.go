// Package inmemdb is the process-local storage used by tests and by `STORAGE=memory`.
package inmemdb

import (
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/comment"
	"github.com/vecindario/barrios/core/neighborhood"
	"github.com/vecindario/barrios/core/place"
	"github.com/vecindario/barrios/core/recommend"
	"github.com/vecindario/barrios/core/user"
)

type (
	DB struct {
		user         *userTable
		neighborhood *neighborhoodTable
		comment      *commentTable
		place        *placeTable
		counter      *counterTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	neighborhoodTable struct {
		sync.RWMutex
		table map[string]*neighborhood.Neighborhood
	}

	commentTable struct {
		sync.RWMutex
		table map[string]*comment.Comment
	}

	placeTable struct {
		sync.RWMutex
		table map[place.Kind]map[string]*place.Place
	}

	counterTable struct {
		sync.Mutex
		counter *recommend.Counter
	}
)

func Open() *DB {
	places := make(map[place.Kind]map[string]*place.Place, len(place.Kinds))
	for _, kind := range place.Kinds {
		places[kind] = make(map[string]*place.Place)
	}
	return &DB{
		user:         &userTable{table: make(map[string]*user.User)},
		neighborhood: &neighborhoodTable{table: make(map[string]*neighborhood.Neighborhood)},
		comment:      &commentTable{table: make(map[string]*comment.Comment)},
		place:        &placeTable{table: places},
		counter:      &counterTable{},
	}
}

// Reset empties every table.
func (db *DB) Reset() {
	fresh := Open()
	db.user.Lock()
	db.user.table = fresh.user.table
	db.user.Unlock()

	db.neighborhood.Lock()
	db.neighborhood.table = fresh.neighborhood.table
	db.neighborhood.Unlock()

	db.comment.Lock()
	db.comment.table = fresh.comment.table
	db.comment.Unlock()

	db.place.Lock()
	db.place.table = fresh.place.table
	db.place.Unlock()

	db.counter.Lock()
	db.counter.counter = nil
	db.counter.Unlock()
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func copyStrings(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}

type compareFunc[T any] func(a, b T) int

// sortBy orders `items` by `orderings`, ignoring fields missing from `fields`.
// Ties keep id order, which follows insertion order.
func sortBy[T any](items []T, orderings []core.DBOrdering, fields map[string]compareFunc[T], id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		for _, ord := range orderings {
			cmp, ok := fields[ord.Field]
			if !ok {
				continue
			}
			if c := cmp(items[i], items[j]); c != 0 {
				if ord.Ascending {
					return c < 0
				}
				return c > 0
			}
		}
		return id(items[i]) < id(items[j])
	})
}

func compareStrings(a, b string) int {
	return strings.Compare(a, b)
}
