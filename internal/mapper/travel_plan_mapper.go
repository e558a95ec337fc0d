package mapper

import (
	"github.com/google/uuid"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/model"
)

type TravelPlanMapper struct{}

func NewTravelPlanMapper() *TravelPlanMapper {
	return &TravelPlanMapper{}
}

func (m *TravelPlanMapper) ToEntity(p *model.TravelPlan) *entity.TravelPlan {
	if p == nil {
		return nil
	}
	participants := make([]entity.Participant, 0, len(p.Participants))
	for _, row := range p.Participants {
		participants = append(participants, *m.ParticipantToEntity(row))
	}
	return &entity.TravelPlan{
		Id:                 p.Id,
		HostId:             p.HostId,
		Title:              p.Title,
		Slug:               p.Slug,
		Description:        p.Description,
		Image:              p.Image,
		Budget:             p.Budget,
		DestinationCity:    p.DestinationCity,
		DestinationCountry: p.DestinationCountry,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		MaxGuest:           p.MaxGuest,
		MinAge:             p.MinAge,
		Status:             entity.TravelStatus(p.Status),
		IsApproved:         entity.TravelApproval(p.IsApproved),
		Participants:       entity.NewRoster(participants),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ToModel maps the scalar plan fields. Roster rows travel through the
// dedicated participant repository methods, not through plan saves.
func (m *TravelPlanMapper) ToModel(p *entity.TravelPlan) *model.TravelPlan {
	if p == nil {
		return nil
	}
	return &model.TravelPlan{
		Id:                 p.Id,
		HostId:             p.HostId,
		Title:              p.Title,
		Slug:               p.Slug,
		Description:        p.Description,
		Image:              p.Image,
		Budget:             p.Budget,
		DestinationCity:    p.DestinationCity,
		DestinationCountry: p.DestinationCountry,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		MaxGuest:           p.MaxGuest,
		MinAge:             p.MinAge,
		Status:             string(p.Status),
		IsApproved:         string(p.IsApproved),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (m *TravelPlanMapper) ParticipantToEntity(row *model.Participant) *entity.Participant {
	if row == nil {
		return nil
	}
	return &entity.Participant{
		Id:        row.Id,
		UserId:    row.UserId,
		BookingId: row.BookingId,
		Name:      row.Name,
		Phone:     row.Phone,
		Gender:    entity.UserGender(row.Gender),
		Age:       row.Age,
	}
}

func (m *TravelPlanMapper) ParticipantToModel(planId uuid.UUID, p *entity.Participant) *model.Participant {
	if p == nil {
		return nil
	}
	return &model.Participant{
		Id:           p.Id,
		TravelPlanId: planId,
		UserId:       p.UserId,
		BookingId:    p.BookingId,
		Name:         p.Name,
		Phone:        p.Phone,
		Gender:       string(p.Gender),
		Age:          p.Age,
	}
}
