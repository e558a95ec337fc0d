package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/mapper"
	"travelmate-be/internal/model"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/specification"
)

type BookingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookingMapper
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &BookingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookingMapper(),
	}
}

func (r *BookingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *entity.Booking) error {
	m := r.mapper.ToModel(booking)
	if err := r.db.WithContext(ctx).Omit("Participants").Create(m).Error; err != nil {
		return err
	}
	booking.Id = m.Id
	booking.CreatedAt = m.CreatedAt
	booking.UpdatedAt = m.UpdatedAt

	if len(booking.Participants) == 0 {
		return nil
	}
	rows := make([]*model.BookingParticipant, 0, len(booking.Participants))
	for i := range booking.Participants {
		rows = append(rows, r.mapper.ParticipantToModel(m.Id, &booking.Participants[i]))
	}
	if err := r.db.WithContext(ctx).Create(rows).Error; err != nil {
		return err
	}
	for i, row := range rows {
		booking.Participants[i].Id = row.Id
	}
	return nil
}

func (r *BookingRepositoryImpl) Update(ctx context.Context, booking *entity.Booking) error {
	m := r.mapper.ToModel(booking)
	if err := r.db.WithContext(ctx).Omit("Participants").Save(m).Error; err != nil {
		return err
	}
	booking.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var m model.Booking
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Participants"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BookingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var models []*model.Booking
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Participants"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	bookings := make([]*entity.Booking, 0, len(models))
	for _, m := range models {
		bookings = append(bookings, r.mapper.ToEntity(m))
	}
	return bookings, nil
}

func (r *BookingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Booking{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingRepositoryImpl) StampParticipants(ctx context.Context, bookingId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.BookingParticipant{}).
		Where("booking_id = ?", bookingId).
		Update("stamped_booking_id", bookingId).Error
}

func (r *BookingRepositoryImpl) AddParticipants(ctx context.Context, bookingId uuid.UUID, participants []entity.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	rows := make([]*model.BookingParticipant, 0, len(participants))
	for i := range participants {
		row := r.mapper.ParticipantToModel(bookingId, &participants[i])
		row.StampedBookingId = &bookingId
		rows = append(rows, row)
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

func (r *BookingRepositoryImpl) RemoveParticipant(ctx context.Context, bookingId uuid.UUID, phone string) error {
	return r.db.WithContext(ctx).
		Where("booking_id = ? AND phone = ?", bookingId, phone).
		Delete(&model.BookingParticipant{}).Error
}

func (r *BookingRepositoryImpl) CancelAllByTravel(ctx context.Context, travelId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("travel_id = ?", travelId).
		Where("booking_status = ?", string(entity.BookingStatusBooked)).
		Update("booking_status", string(entity.BookingStatusCancelled))
	return res.RowsAffected, res.Error
}
