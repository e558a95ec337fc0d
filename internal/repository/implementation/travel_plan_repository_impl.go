package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/mapper"
	"travelmate-be/internal/model"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/specification"
)

type TravelPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TravelPlanMapper
}

func NewTravelPlanRepository(db *gorm.DB) contract.TravelPlanRepository {
	return &TravelPlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewTravelPlanMapper(),
	}
}

func (r *TravelPlanRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TravelPlanRepositoryImpl) Create(ctx context.Context, plan *entity.TravelPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Omit("Participants").Create(m).Error; err != nil {
		return err
	}
	plan.Id = m.Id
	plan.CreatedAt = m.CreatedAt
	plan.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TravelPlanRepositoryImpl) Update(ctx context.Context, plan *entity.TravelPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Omit("Participants").Save(m).Error; err != nil {
		return err
	}
	plan.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TravelPlanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TravelPlan{}, id).Error
}

func (r *TravelPlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TravelPlan, error) {
	var m model.TravelPlan
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Participants"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TravelPlanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TravelPlan, error) {
	var models []*model.TravelPlan
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Participants"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	plans := make([]*entity.TravelPlan, 0, len(models))
	for _, m := range models {
		plans = append(plans, r.mapper.ToEntity(m))
	}
	return plans, nil
}

func (r *TravelPlanRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.TravelPlan{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TravelPlanRepositoryImpl) AddParticipants(ctx context.Context, planId uuid.UUID, participants []entity.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	rows := make([]*model.Participant, 0, len(participants))
	for i := range participants {
		rows = append(rows, r.mapper.ParticipantToModel(planId, &participants[i]))
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

func (r *TravelPlanRepositoryImpl) RemoveParticipant(ctx context.Context, planId uuid.UUID, phone string) error {
	return r.db.WithContext(ctx).
		Where("travel_plan_id = ? AND phone = ?", planId, phone).
		Delete(&model.Participant{}).Error
}

func (r *TravelPlanRepositoryImpl) RemoveParticipantsByBooking(ctx context.Context, planId uuid.UUID, bookingId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("travel_plan_id = ? AND booking_id = ?", planId, bookingId).
		Delete(&model.Participant{}).Error
}

func (r *TravelPlanRepositoryImpl) MarkOngoing(ctx context.Context, startBefore time.Time, endOnOrAfter time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.TravelPlan{}).
		Where("status = ?", string(entity.TravelStatusUpcoming)).
		Where("is_approved = ?", string(entity.TravelApprovalApproved)).
		Where("start_date < ?", startBefore).
		Where("end_date >= ?", endOnOrAfter).
		Update("status", string(entity.TravelStatusOngoing))
	return res.RowsAffected, res.Error
}

func (r *TravelPlanRepositoryImpl) MarkCompleted(ctx context.Context, endBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.TravelPlan{}).
		Where("status IN ?", []string{string(entity.TravelStatusUpcoming), string(entity.TravelStatusOngoing)}).
		Where("end_date < ?", endBefore).
		Update("status", string(entity.TravelStatusCompleted))
	return res.RowsAffected, res.Error
}

func (r *TravelPlanRepositoryImpl) PopularDestinations(ctx context.Context, limit int) ([]entity.DestinationCount, error) {
	var rows []struct {
		DestinationCity    string
		DestinationCountry string
		Total              int64
	}
	err := r.db.WithContext(ctx).Model(&model.TravelPlan{}).
		Select("destination_city, destination_country, COUNT(*) AS total").
		Where("is_approved = ?", string(entity.TravelApprovalApproved)).
		Where("status <> ?", string(entity.TravelStatusCancelled)).
		Group("destination_city, destination_country").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.DestinationCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.DestinationCount{
			City:    row.DestinationCity,
			Country: row.DestinationCountry,
			Plans:   row.Total,
		})
	}
	return out, nil
}
