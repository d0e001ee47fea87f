package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"critterkeep/internal/adapter/repo/gorm/model"
	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"

	"gorm.io/gorm"
)

type PetRepo struct {
	db *gorm.DB
}

func NewPetRepo(db *gorm.DB) PetRepo {
	return PetRepo{db: db}
}

func (r PetRepo) GetByID(ctx context.Context, petID string) (pet.Pet, error) {
	var row model.Pet
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", petID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.Pet{}, ports.ErrNotFound
		}
		return pet.Pet{}, err
	}
	return petFromRow(row)
}

func (r PetRepo) GetByIDs(ctx context.Context, petIDs []string) ([]pet.Pet, error) {
	if len(petIDs) == 0 {
		return nil, nil
	}
	rows := []model.Pet{}
	if err := getDBFromCtx(ctx, r.db).Where("id IN ?", petIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return petsFromRows(rows)
}

func (r PetRepo) ListByOwnerCoinsDesc(ctx context.Context, ownerID string) ([]pet.Pet, error) {
	rows := []model.Pet{}
	err := getDBFromCtx(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("coins DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return petsFromRows(rows)
}

func (r PetRepo) Create(ctx context.Context, p pet.Pet) error {
	row, err := petToRow(p)
	if err != nil {
		return err
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r PetRepo) SaveWithVersion(ctx context.Context, p pet.Pet, expectedVersion int64) error {
	row, err := petToRow(p)
	if err != nil {
		return err
	}

	res := getDBFromCtx(ctx, r.db).Model(&model.Pet{}).
		Where("id = ? AND version = ?", p.ID, expectedVersion).
		Updates(map[string]any{
			"owner_id":            row.OwnerID,
			"owner_nickname":      row.OwnerNickname,
			"name":                row.Name,
			"species":             row.Species,
			"breed":               row.Breed,
			"hunger":              row.Hunger,
			"happiness":           row.Happiness,
			"cleanliness":         row.Cleanliness,
			"energy":              row.Energy,
			"thirst":              row.Thirst,
			"level":               row.Level,
			"xp":                  row.Xp,
			"coins":               row.Coins,
			"hat_emoji":           row.HatEmoji,
			"toy_emoji":           row.ToyEmoji,
			"eyewear_emoji":       row.EyewearEmoji,
			"last_fed":            row.LastFed,
			"last_played":         row.LastPlayed,
			"last_cleaned":        row.LastCleaned,
			"last_toy_played":     row.LastToyPlayed,
			"toy_play_count":      row.ToyPlayCount,
			"last_mutation_check": row.LastMutationCheck,
			"last_activity":       row.LastActivity,
			"current_event":       row.CurrentEvent,
			"event_started_at":    row.EventStartedAt,
			"sleeping":            row.Sleeping,
			"sleep_started_at":    row.SleepStartedAt,
			"sleep_ends_at":       row.SleepEndsAt,
			"version":             row.Version,
			"updated_at":          row.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r PetRepo) Delete(ctx context.Context, petID string) error {
	return getDBFromCtx(ctx, r.db).Where("id = ?", petID).Delete(&model.Pet{}).Error
}

func (r PetRepo) NicknameTaken(ctx context.Context, nickname, exceptOwnerID string) (bool, error) {
	var count int64
	err := getDBFromCtx(ctx, r.db).Model(&model.Pet{}).
		Where("owner_nickname = ? AND owner_id <> ?", nickname, exceptOwnerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r PetRepo) TransferOwner(ctx context.Context, petID, newOwnerID string) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Pet{}).
		Where("id = ?", petID).
		Updates(map[string]any{"owner_id": newOwnerID, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func petToRow(p pet.Pet) (model.Pet, error) {
	var lastActivity []byte
	if len(p.LastActivity) > 0 {
		b, err := json.Marshal(p.LastActivity)
		if err != nil {
			return model.Pet{}, err
		}
		lastActivity = b
	}
	return model.Pet{
		ID:                p.ID,
		OwnerID:           p.OwnerID,
		OwnerNickname:     p.OwnerNickname,
		Name:              p.Name,
		Species:           string(p.Species),
		Breed:             p.Breed,
		Hunger:            int32(p.Vitals.Hunger),
		Happiness:         int32(p.Vitals.Happiness),
		Cleanliness:       int32(p.Vitals.Cleanliness),
		Energy:            int32(p.Vitals.Energy),
		Thirst:            int32(p.Vitals.Thirst),
		Level:             int32(p.Level),
		Xp:                int32(p.XP),
		Coins:             int32(p.Coins),
		HatEmoji:          p.Accessories.Hat,
		ToyEmoji:          p.Accessories.Toy,
		EyewearEmoji:      p.Accessories.Eyewear,
		LastFed:           p.LastFed,
		LastPlayed:        p.LastPlayed,
		LastCleaned:       p.LastCleaned,
		LastToyPlayed:     timePtr(p.LastToyPlayed),
		ToyPlayCount:      int32(p.ToyPlayCount),
		LastMutationCheck: p.LastMutationCheck,
		LastActivity:      lastActivity,
		CurrentEvent:      string(p.CurrentEvent),
		EventStartedAt:    timePtr(p.EventStartedAt),
		Sleeping:          p.Sleeping,
		SleepStartedAt:    timePtr(p.SleepStartedAt),
		SleepEndsAt:       timePtr(p.SleepEndsAt),
		Version:           p.Version,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}, nil
}

func petFromRow(row model.Pet) (pet.Pet, error) {
	var lastActivity map[pet.ActivityType]time.Time
	if len(row.LastActivity) > 0 {
		if err := json.Unmarshal(row.LastActivity, &lastActivity); err != nil {
			return pet.Pet{}, err
		}
	}
	return pet.Pet{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		OwnerNickname: row.OwnerNickname,
		Name:          row.Name,
		Species:       pet.Species(row.Species),
		Breed:         row.Breed,
		Vitals: pet.Vitals{
			Hunger:      int(row.Hunger),
			Happiness:   int(row.Happiness),
			Cleanliness: int(row.Cleanliness),
			Energy:      int(row.Energy),
			Thirst:      int(row.Thirst),
		},
		Level: int(row.Level),
		XP:    int(row.Xp),
		Coins: int(row.Coins),
		Accessories: pet.Accessories{
			Hat:     row.HatEmoji,
			Toy:     row.ToyEmoji,
			Eyewear: row.EyewearEmoji,
		},
		LastFed:           row.LastFed,
		LastPlayed:        row.LastPlayed,
		LastCleaned:       row.LastCleaned,
		LastToyPlayed:     timeVal(row.LastToyPlayed),
		ToyPlayCount:      int(row.ToyPlayCount),
		LastMutationCheck: row.LastMutationCheck,
		LastActivity:      lastActivity,
		CurrentEvent:      pet.EventType(row.CurrentEvent),
		EventStartedAt:    timeVal(row.EventStartedAt),
		Sleeping:          row.Sleeping,
		SleepStartedAt:    timeVal(row.SleepStartedAt),
		SleepEndsAt:       timeVal(row.SleepEndsAt),
		Version:           row.Version,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}, nil
}

func petsFromRows(rows []model.Pet) ([]pet.Pet, error) {
	out := make([]pet.Pet, 0, len(rows))
	for _, row := range rows {
		p, err := petFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeVal(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
