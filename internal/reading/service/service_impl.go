package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/dormos/dormos/internal/clock"
	readingdomain "github.com/dormos/dormos/internal/reading/domain"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     readingdomain.Repository
	RoomRepo roomdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     readingdomain.Repository
	roomRepo roomdomain.Repository
	genID    *snowflake.Node
	clock    clock.Clock
}

func New(p Params) readingdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("reading.service"),
		repo:     p.Repo,
		roomRepo: p.RoomRepo,
		genID:    p.GenID,
		clock:    p.Clock,
	}
}

// Upsert records the meter state for a room and period. A second submission
// for the same period overwrites the first; the unique index plus
// ON CONFLICT update makes concurrent submissions last-writer-wins without
// ever duplicating a reading. A value below the prior period's reading is
// accepted as-is (meter replacement is the recorder's call).
func (s *Service) Upsert(ctx context.Context, req readingdomain.UpsertRequest) (*readingdomain.Response, error) {
	roomID, err := roomdomain.ParseID(strings.TrimSpace(req.RoomID))
	if err != nil {
		return nil, readingdomain.ErrInvalidRoom
	}
	if !readingdomain.ValidPeriod(req.Year, req.Month) {
		return nil, readingdomain.ErrInvalidPeriod
	}
	if req.Electricity < 0 || req.Water < 0 {
		return nil, readingdomain.ErrNegativeValue
	}

	room, err := s.roomRepo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, readingdomain.ErrInvalidRoom
	}

	now := s.clock.Now()
	readAt := req.ReadAt
	if readAt.IsZero() {
		readAt = now
	}

	reading := &readingdomain.MeterReading{
		ID:          s.genID.Generate(),
		RoomID:      roomID,
		PeriodYear:  req.Year,
		PeriodMonth: req.Month,
		Electricity: req.Electricity,
		Water:       req.Water,
		ReadAt:      readAt.UTC(),
		RecordedBy:  strings.TrimSpace(req.RecordedBy),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Upsert(ctx, s.db, reading); err != nil {
		return nil, err
	}

	// On conflict the stored row keeps its original id, so read back the
	// canonical record.
	stored, err := s.repo.FindByPeriod(ctx, s.db, roomID, req.Year, req.Month)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, readingdomain.ErrNotFound
	}

	return s.toResponse(stored), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	readingID, err := readingdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return readingdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, readingID)
	if err != nil {
		return err
	}
	if item == nil {
		return readingdomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, readingID)
}

func (s *Service) ListForPeriod(ctx context.Context, req readingdomain.ListRequest) ([]readingdomain.PeriodEntry, error) {
	if !readingdomain.ValidPeriod(req.Year, req.Month) {
		return nil, readingdomain.ErrInvalidPeriod
	}

	rooms, err := s.roomRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	if trimmed := strings.TrimSpace(req.RoomID); trimmed != "" {
		roomID, err := roomdomain.ParseID(trimmed)
		if err != nil {
			return nil, readingdomain.ErrInvalidRoom
		}
		filtered := rooms[:0]
		for i := range rooms {
			if rooms[i].ID == roomID {
				filtered = append(filtered, rooms[i])
			}
		}
		if len(filtered) == 0 {
			return nil, readingdomain.ErrInvalidRoom
		}
		rooms = filtered
	}

	readings, err := s.repo.ListByPeriod(ctx, s.db, req.Year, req.Month)
	if err != nil {
		return nil, err
	}
	byRoom := make(map[snowflake.ID]*readingdomain.MeterReading, len(readings))
	for i := range readings {
		byRoom[readings[i].RoomID] = &readings[i]
	}

	entries := make([]readingdomain.PeriodEntry, 0, len(rooms))
	for i := range rooms {
		entry := readingdomain.PeriodEntry{
			RoomID:     rooms[i].ID.String(),
			RoomNumber: rooms[i].Number,
		}
		if reading, ok := byRoom[rooms[i].ID]; ok {
			entry.Reading = s.toResponse(reading)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Consumption derives unit counts for the period against the most recent
// earlier reading by reading date. The counts are clamped at zero: with no
// prior baseline or a meter that went backwards it reports zero, never a
// negative number. Invoice computation deliberately does not share this
// clamp.
func (s *Service) Consumption(ctx context.Context, roomID string, year, month int) (*readingdomain.ConsumptionResponse, error) {
	parsed, err := roomdomain.ParseID(strings.TrimSpace(roomID))
	if err != nil {
		return nil, readingdomain.ErrInvalidRoom
	}
	if !readingdomain.ValidPeriod(year, month) {
		return nil, readingdomain.ErrInvalidPeriod
	}

	current, err := s.repo.FindByPeriod(ctx, s.db, parsed, year, month)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, readingdomain.ErrNotFound
	}

	electricity, water, err := s.consumptionUnits(ctx, current)
	if err != nil {
		return nil, err
	}

	return &readingdomain.ConsumptionResponse{
		RoomID:           parsed.String(),
		Year:             year,
		Month:            month,
		ElectricityUnits: electricity,
		WaterUnits:       water,
	}, nil
}

func (s *Service) Summary(ctx context.Context, year, month int) (*readingdomain.SummaryResponse, error) {
	if !readingdomain.ValidPeriod(year, month) {
		return nil, readingdomain.ErrInvalidPeriod
	}

	totalRooms, err := s.repo.CountRooms(ctx, s.db)
	if err != nil {
		return nil, err
	}
	occupied, err := s.repo.CountOccupiedRooms(ctx, s.db)
	if err != nil {
		return nil, err
	}

	readings, err := s.repo.ListByPeriod(ctx, s.db, year, month)
	if err != nil {
		return nil, err
	}

	var totalElectricity, totalWater int64
	for i := range readings {
		electricity, water, err := s.consumptionUnits(ctx, &readings[i])
		if err != nil {
			return nil, err
		}
		totalElectricity += electricity
		totalWater += water
	}

	// Vacant rooms may still be metered, so recorded can exceed occupied;
	// pending never goes negative.
	recorded := int64(len(readings))
	pending := occupied - recorded
	if pending < 0 {
		pending = 0
	}

	return &readingdomain.SummaryResponse{
		Year:             year,
		Month:            month,
		TotalRooms:       totalRooms,
		OccupiedRooms:    occupied,
		RecordedRooms:    recorded,
		PendingRooms:     pending,
		TotalElectricity: totalElectricity,
		TotalWater:       totalWater,
	}, nil
}

func (s *Service) History(ctx context.Context, roomID string, limit int) ([]readingdomain.Response, error) {
	parsed, err := roomdomain.ParseID(strings.TrimSpace(roomID))
	if err != nil {
		return nil, readingdomain.ErrInvalidRoom
	}
	if limit < 0 {
		return nil, readingdomain.ErrInvalidLimit
	}
	if limit == 0 {
		limit = readingdomain.DefaultHistoryLimit
	}

	items, err := s.repo.History(ctx, s.db, parsed, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]readingdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) consumptionUnits(ctx context.Context, current *readingdomain.MeterReading) (int64, int64, error) {
	prev, err := s.repo.FindLatestBefore(ctx, s.db, current.RoomID, current.ReadAt)
	if err != nil {
		return 0, 0, err
	}
	if prev == nil {
		// No baseline: prior state is unknown, so report zero rather
		// than the raw meter value.
		return 0, 0, nil
	}
	return clampUnits(current.Electricity - prev.Electricity), clampUnits(current.Water - prev.Water), nil
}

func clampUnits(delta int64) int64 {
	if delta < 0 {
		return 0
	}
	return delta
}

func (s *Service) toResponse(m *readingdomain.MeterReading) *readingdomain.Response {
	return &readingdomain.Response{
		ID:          m.ID.String(),
		RoomID:      m.RoomID.String(),
		Year:        m.PeriodYear,
		Month:       m.PeriodMonth,
		Electricity: m.Electricity,
		Water:       m.Water,
		ReadAt:      m.ReadAt,
		RecordedBy:  m.RecordedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
