package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/encoding/protowire"

	"travelmate/domain/travel"
	"travelmate/errors"
)

const (
	profileFieldID protowire.Number = iota + 1
	profileFieldName
	profileFieldBio
	profileFieldLanguage
	profileFieldLat
	profileFieldLng
	profileFieldCity
	profileFieldState
)

const (
	indexFieldCity     = "city"
	indexFieldState    = "state"
	indexFieldLocation = "location"
	idField            = "_id"
)

// ProfileRepository keeps traveler profiles in badger and a bluge index of
// their published location, so discovery never scans the whole user base.
type ProfileRepository struct {
	db         *badger.DB
	index      *bluge.Writer
	log        *slog.Logger
	maxResults int
}

func NewProfileRepository(db *badger.DB, index *bluge.Writer, log *slog.Logger, maxResults int) *ProfileRepository {
	return &ProfileRepository{db: db, index: index, log: log, maxResults: maxResults}
}

func profileKey(id string) []byte { return []byte("profile:" + id) }

// normalizePlace makes "Seoul " and "seoul" land on the same term.
func normalizePlace(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (p *ProfileRepository) Upsert(ctx context.Context, profile travel.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(profile.ID), encodeProfile(profile))
	})
	if err != nil {
		return storeError(err)
	}

	doc := bluge.NewDocument(profile.ID).
		AddField(bluge.NewKeywordField(indexFieldCity, normalizePlace(profile.Location.City))).
		AddField(bluge.NewKeywordField(indexFieldState, normalizePlace(profile.Location.State)))
	if profile.Location.HasCoordinates() {
		doc.AddField(bluge.NewGeoPointField(indexFieldLocation, profile.Location.Lng, profile.Location.Lat))
	}
	if err := p.index.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("profile index update failed: %w", err)
	}
	return nil
}

func (p *ProfileRepository) Get(ctx context.Context, userID string) (travel.Profile, error) {
	if err := ctx.Err(); err != nil {
		return travel.Profile{}, err
	}
	var profile travel.Profile
	err := p.db.View(func(txn *badger.Txn) error {
		var err error
		profile, err = getProfile(txn, userID)
		return err
	})
	if err != nil {
		return travel.Profile{}, storeError(err)
	}
	return profile, nil
}

// FindInCity returns the profiles published in the query's city and state,
// without the caller and the excluded travelers. With a radius and an origin that has coordinates, only
// travelers within that distance are kept.
func (p *ProfileRepository) FindInCity(ctx context.Context, query travel.NearbyQuery, origin *travel.Location) ([]travel.Profile, error) {
	ids, err := p.search(ctx, query, origin)
	if err != nil {
		return nil, err
	}

	var profiles []travel.Profile
	err = p.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if id == query.CallerID {
				continue
			}
			profile, err := getProfile(txn, id)
			if errors.Is(err, badger.ErrKeyNotFound) {
				p.log.Warn("Indexed profile missing from store", "user_id", id)
				continue
			}
			if err != nil {
				return err
			}
			profiles = append(profiles, profile)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return profiles, nil
}

func (p *ProfileRepository) search(ctx context.Context, query travel.NearbyQuery, origin *travel.Location) ([]string, error) {
	reader, err := p.index.Reader()
	if err != nil {
		return nil, fmt.Errorf("profile index reader failed: %w", err)
	}
	defer reader.Close()

	q := bluge.NewBooleanQuery().AddMust(
		bluge.NewTermQuery(normalizePlace(query.City)).SetField(indexFieldCity),
		bluge.NewTermQuery(normalizePlace(query.State)).SetField(indexFieldState),
	)
	if query.RadiusKm > 0 && origin != nil && origin.HasCoordinates() {
		q.AddMust(bluge.NewGeoDistanceQuery(origin.Lng, origin.Lat, fmt.Sprintf("%fkm", query.RadiusKm)).
			SetField(indexFieldLocation))
	}
	for _, id := range append([]string{query.CallerID}, query.Exclude...) {
		q.AddMustNot(bluge.NewTermQuery(id).SetField(idField))
	}

	matches, err := reader.Search(ctx, bluge.NewTopNSearch(p.maxResults, q))
	if err != nil {
		return nil, fmt.Errorf("profile search failed: %w", err)
	}
	var ids []string
	match, err := matches.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == idField {
				ids = append(ids, string(value))
			}
			return true
		})
		if err != nil {
			break
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("profile search iteration failed: %w", err)
	}
	return ids, nil
}

func getProfile(txn *badger.Txn, id string) (travel.Profile, error) {
	item, err := txn.Get(profileKey(id))
	if err != nil {
		return travel.Profile{}, err
	}
	var profile travel.Profile
	err = item.Value(func(value []byte) error {
		profile, err = decodeProfile(value)
		return err
	})
	return profile, err
}

func encodeProfile(profile travel.Profile) []byte {
	var w recordWriter
	w.text(profileFieldID, profile.ID)
	w.text(profileFieldName, profile.Name)
	w.text(profileFieldBio, profile.Bio)
	for _, language := range profile.Languages {
		w.text(profileFieldLanguage, language)
	}
	w.double(profileFieldLat, profile.Location.Lat)
	w.double(profileFieldLng, profile.Location.Lng)
	w.text(profileFieldCity, profile.Location.City)
	w.text(profileFieldState, profile.Location.State)
	return w.bytes()
}

func decodeProfile(b []byte) (travel.Profile, error) {
	var profile travel.Profile
	err := decodeRecord(b, func(f wireField) {
		switch f.num {
		case profileFieldID:
			profile.ID = f.text()
		case profileFieldName:
			profile.Name = f.text()
		case profileFieldBio:
			profile.Bio = f.text()
		case profileFieldLanguage:
			profile.Languages = append(profile.Languages, f.text())
		case profileFieldLat:
			profile.Location.Lat = f.double()
		case profileFieldLng:
			profile.Location.Lng = f.double()
		case profileFieldCity:
			profile.Location.City = f.text()
		case profileFieldState:
			profile.Location.State = f.text()
		}
	})
	return profile, err
}
