package infrastructure

import (
	"context"

	"github.com/Toston-App/lake-sub000/internal/domain/place"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type PlaceRepository struct {
	DB *gorm.DB
}

var _ place.Repository = (*PlaceRepository)(nil)

func toDomainPlace(pdb *placeDB) (*place.Place, error) {
	ids, err := parseIDs(pdb.Id, pdb.UserId)
	if err != nil {
		return nil, err
	}
	return &place.Place{
		Id:        ids[0],
		UserId:    ids[1],
		Name:      pdb.Name,
		CreatedAt: pdb.CreatedAt,
		UpdatedAt: pdb.UpdatedAt,
	}, nil
}

func (r *PlaceRepository) Create(ctx context.Context, p *place.Place) error {
	return conn(ctx, r.DB).Create(&placeDB{
		Id:        p.Id.String(),
		UserId:    p.UserId.String(),
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}).Error
}

func (r *PlaceRepository) GetByID(ctx context.Context, placeID, userID ulid.ULID) (*place.Place, error) {
	var pdb placeDB
	if err := conn(ctx, r.DB).Where("id = ? AND user_id = ?", placeID.String(), userID.String()).First(&pdb).Error; err != nil {
		return nil, err
	}
	return toDomainPlace(&pdb)
}

func (r *PlaceRepository) Exists(ctx context.Context, placeID, userID ulid.ULID) (bool, error) {
	return query.New[placeDB](conn(ctx, r.DB), "places").
		Context(ctx).
		Where("id = ? AND user_id = ?", placeID.String(), userID.String()).
		Exists()
}

func (r *PlaceRepository) ListByUser(ctx context.Context, userID ulid.ULID, search string) ([]*place.Place, error) {
	q := query.New[placeDB](conn(ctx, r.DB), "places").
		Context(ctx).
		Where("user_id = ?", userID.String()).
		Search("name", search).
		Order("name")
	return query.ExecuteAll(q, toDomainPlace)
}
