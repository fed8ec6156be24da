package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/seanazu/value-hunter/customerrors"
	"github.com/seanazu/value-hunter/model"
	"github.com/seanazu/value-hunter/util"
)

// PresetRepository is the persistence the preset service needs
type PresetRepository interface {
	Save(ctx context.Context, preset model.Preset) error
	FindAll(ctx context.Context) ([]model.Preset, error)
	DeleteById(ctx context.Context, name string) error
}

type PresetService interface {
	Enabled() bool
	ReloadAllPresets(ctx context.Context) error
	GetAllPresets() []model.PresetDto
	GetAllPresetsAdmin() []model.PresetDto
	GetPreset(name string) (model.PresetDto, error)
	CreatePreset(ctx context.Context, request model.PresetDto) (model.PresetDto, error)
	UpdatePreset(ctx context.Context, request model.PresetDto) (model.PresetDto, error)
	DeletePreset(ctx context.Context, id string) error
	SeedFromCSV(ctx context.Context, r io.Reader) (int, error)
	ApplyPreset(form ScreenerFormController, name string) error
}

type PresetServiceImpl struct {
	repo  PresetRepository
	store *cache.Cache
}

// NewPresetService loads every stored preset once. A nil repo disables presets.
func NewPresetService(repo PresetRepository, store *cache.Cache) PresetService {
	s := &PresetServiceImpl{
		repo:  repo,
		store: store,
	}

	if repo != nil {
		if err := s.ReloadAllPresets(context.Background()); err != nil {
			log.Warn().Err(err).Msg("initial preset load failed")
		}
	}

	return s
}

func (s *PresetServiceImpl) Enabled() bool {
	return s.repo != nil
}

func (s *PresetServiceImpl) ReloadAllPresets(ctx context.Context) error {
	if s.repo == nil {
		return customerrors.ErrPresetsDisabled
	}

	presets, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	// replace in place so readers never see an empty store mid-reload
	loaded := make(map[string]bool, len(presets))
	for _, preset := range presets {
		s.store.Set(preset.Name, preset.ToDto(), cache.NoExpiration)
		loaded[preset.Name] = true
	}
	for name := range s.store.Items() {
		if !loaded[name] {
			s.store.Delete(name)
		}
	}

	return nil
}

func (s *PresetServiceImpl) GetAllPresets() []model.PresetDto {
	return s.filterPresets(false)
}

func (s *PresetServiceImpl) GetAllPresetsAdmin() []model.PresetDto {
	return s.filterPresets(true)
}

func (s *PresetServiceImpl) GetPreset(name string) (model.PresetDto, error) {
	if v, found := s.store.Get(strings.ToUpper(name)); found {
		if dto, ok := v.(model.PresetDto); ok {
			return dto, nil
		}
	}
	return model.PresetDto{}, customerrors.ErrPresetNotFound
}

func (s *PresetServiceImpl) CreatePreset(ctx context.Context, request model.PresetDto) (model.PresetDto, error) {
	if s.repo == nil {
		return model.PresetDto{}, customerrors.ErrPresetsDisabled
	}

	entity := request.ToEntity()
	if entity.Name == "" {
		return model.PresetDto{}, fmt.Errorf("%w: name is required", customerrors.ErrInvalidPreset)
	}
	if ex := entity.Filters.Exchange; ex != nil && *ex != "" && !ex.Valid() {
		return model.PresetDto{}, fmt.Errorf("%w: unknown exchange %q", customerrors.ErrInvalidPreset, string(*ex))
	}
	if err := s.repo.Save(ctx, entity); err != nil {
		return model.PresetDto{}, err
	}

	dto := entity.ToDto()
	s.store.Set(dto.Name, dto, cache.NoExpiration)

	go s.backgroundReload()

	return dto, nil
}

func (s *PresetServiceImpl) UpdatePreset(ctx context.Context, request model.PresetDto) (model.PresetDto, error) {
	return s.CreatePreset(ctx, request)
}

func (s *PresetServiceImpl) DeletePreset(ctx context.Context, id string) error {
	if s.repo == nil {
		return customerrors.ErrPresetsDisabled
	}

	name := strings.ToUpper(id)
	if err := s.repo.DeleteById(ctx, name); err != nil {
		return err
	}

	s.store.Delete(name)

	return nil
}

// SeedFromCSV stores every preset row of r and returns how many were saved.
func (s *PresetServiceImpl) SeedFromCSV(ctx context.Context, r io.Reader) (int, error) {
	if s.repo == nil {
		return 0, customerrors.ErrPresetsDisabled
	}

	presets, err := util.ReadPresets(r)
	if err != nil {
		return 0, err
	}

	for i, dto := range presets {
		entity := dto.ToEntity()
		if err := s.repo.Save(ctx, entity); err != nil {
			return i, fmt.Errorf("failed to save preset %s: %w", entity.Name, err)
		}
		s.store.Set(entity.Name, entity.ToDto(), cache.NoExpiration)
	}

	return len(presets), nil
}

// ApplyPreset writes every filter of the preset into the form, clearing the ones it leaves absent.
func (s *PresetServiceImpl) ApplyPreset(form ScreenerFormController, name string) error {
	preset, err := s.GetPreset(name)
	if err != nil {
		return err
	}

	for _, field := range model.FieldOrder {
		value, err := preset.Filters.Get(field)
		if err != nil {
			return err
		}
		if err := form.UpdateField(field, value); err != nil {
			return err
		}
	}

	return nil
}

func (s *PresetServiceImpl) filterPresets(includeInactive bool) []model.PresetDto {
	items := s.store.Items()
	list := make([]model.PresetDto, 0, len(items))

	for _, item := range items {
		if preset, ok := item.Object.(model.PresetDto); ok {
			if includeInactive || preset.Active {
				list = append(list, preset)
			}
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func (s *PresetServiceImpl) backgroundReload() {
	bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = s.ReloadAllPresets(bgCtx)
}
